package service

import (
	"context"
	"errors"
	"time"

	"freelance-market-api/internal/common"
	"freelance-market-api/internal/entity"
	"freelance-market-api/internal/repo"
	"freelance-market-api/internal/repo/repo_errors"

	"github.com/sirupsen/logrus"
)

type PaymentService struct {
	paymentRepo    repo.Payment
	invoiceRepo    repo.Invoice
	invoiceService *InvoiceService
	tm             repo.Transactor
	log            *logrus.Logger
}

func NewPaymentService(repos *repo.Repositories, tm repo.Transactor, invoiceService *InvoiceService, log *logrus.Logger) *PaymentService {
	return &PaymentService{
		paymentRepo:    repos.Payment,
		invoiceRepo:    repos.Invoice,
		invoiceService: invoiceService,
		tm:             tm,
		log:            log,
	}
}

// CreatePayment records a pending payment against an invoice. The amount is
// copied from the invoice; nothing is marked paid until the payment itself
// moves to PAID.
func (s *PaymentService) CreatePayment(ctx context.Context, invoiceId string, notes string) (*entity.PaymentOutputModel, error) {
	var out *entity.PaymentOutputModel

	err := s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		invoice, err := s.invoiceRepo.GetInvoiceById(ctx, invoiceId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrInvoiceNotFound
			}

			return err
		}

		if invoice.PaymentId != nil {
			return ErrInvoiceHasPayment
		}
		if invoice.Status == common.InvoicePaid {
			return ErrInvoiceAlreadyPaid
		}

		id, err := s.paymentRepo.CreatePayment(ctx, &entity.CreatePaymentInput{
			InvoiceId: invoice.Id,
			Amount:    invoice.Amount,
			Notes:     notes,
			Status:    common.PaymentRecordPending,
		})
		if err != nil {
			return err
		}

		err = s.invoiceRepo.UpdateInvoice(ctx, invoice.Id, &entity.InvoicePatch{PaymentId: &id})
		if err != nil {
			return err
		}

		payment, err := s.paymentRepo.GetPaymentById(ctx, id.String())
		if err != nil {
			return err
		}
		out = mapPayment(payment)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (s *PaymentService) GetPaymentByInvoiceId(ctx context.Context, invoiceId string) (*entity.PaymentOutputModel, error) {
	payment, err := s.paymentRepo.GetPaymentByInvoiceId(ctx, invoiceId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}

		return nil, err
	}

	return mapPayment(payment), nil
}

// UpdatePaymentStatusById settles a payment. Going PAID stamps paidAt and
// drives the owning invoice to PAID, which runs the full settlement cascade.
func (s *PaymentService) UpdatePaymentStatusById(ctx context.Context, paymentId string, newStatus common.PaymentRecordStatus) (*entity.PaymentOutputModel, error) {
	var out *entity.PaymentOutputModel

	err := s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		payment, err := s.paymentRepo.GetPaymentById(ctx, paymentId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrPaymentNotFound
			}

			return err
		}

		action, changed, err := lookupTransition(KindPayment, string(payment.Status), string(newStatus))
		if err != nil {
			return err
		}
		if !changed {
			out = mapPayment(payment)

			return nil
		}

		var paidAt *time.Time
		if newStatus == common.PaymentRecordPaid {
			now := time.Now().UTC()
			paidAt = &now
		}

		if err := s.paymentRepo.UpdatePaymentStatusById(ctx, payment.Id, newStatus, paidAt); err != nil {
			return err
		}

		if action == cascadePaymentPaid {
			_, err = s.invoiceService.UpdateInvoiceStatusById(ctx, payment.InvoiceId.String(), common.InvoicePaid)
			if err != nil {
				return err
			}

			s.log.WithFields(logrus.Fields{
				"paymentId": payment.Id,
				"invoiceId": payment.InvoiceId,
				"amount":    payment.Amount,
			}).Info("payment settled")
		}

		payment, err = s.paymentRepo.GetPaymentById(ctx, paymentId)
		if err != nil {
			return err
		}
		out = mapPayment(payment)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// DeletePaymentById removes the payment and detaches it from its invoice,
// reverting the invoice to PENDING so any settlement it caused is undone.
func (s *PaymentService) DeletePaymentById(ctx context.Context, paymentId string) error {
	return s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		payment, err := s.paymentRepo.GetPaymentById(ctx, paymentId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrPaymentNotFound
			}

			return err
		}

		if err := s.paymentRepo.DeletePaymentById(ctx, payment.Id); err != nil {
			return err
		}

		pending := common.InvoicePending
		_, err = s.invoiceService.UpdateInvoiceById(ctx, payment.InvoiceId.String(), &entity.InvoicePatch{
			Status:       &pending,
			ClearPayment: true,
		})

		return err
	})
}
