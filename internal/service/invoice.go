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

const invoiceDueDays = 30

type InvoiceService struct {
	invoiceRepo      repo.Invoice
	milestoneRepo    repo.Milestone
	contractRepo     repo.Contract
	paymentRepo      repo.Payment
	milestoneService *MilestoneService
	contractService  *ContractService
	tm               repo.Transactor
	log              *logrus.Logger
}

func NewInvoiceService(repos *repo.Repositories, tm repo.Transactor, milestoneService *MilestoneService, contractService *ContractService, log *logrus.Logger) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:      repos.Invoice,
		milestoneRepo:    repos.Milestone,
		contractRepo:     repos.Contract,
		paymentRepo:      repos.Payment,
		milestoneService: milestoneService,
		contractService:  contractService,
		tm:               tm,
		log:              log,
	}
}

// CreateInvoice issues a bill against a contract. With a milestone id the
// invoice bills that milestone and takes its amount; without one it bills the
// whole contract. The due date is thirty days after issue.
func (s *InvoiceService) CreateInvoice(ctx context.Context, contractId string, milestoneId string) (*entity.InvoiceOutputModel, error) {
	var out *entity.InvoiceOutputModel

	err := s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		contract, err := s.contractRepo.GetContractById(ctx, contractId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrContractNotFound
			}

			return err
		}

		if contract.Status == common.ContractCancelled || contract.Status == common.ContractTerminated {
			return ErrContractClosed
		}

		amount := contract.Amount
		if milestoneId != "" {
			milestone, err := s.milestoneRepo.GetMilestoneById(ctx, milestoneId)
			if err != nil {
				if errors.Is(err, repo_errors.ErrNotFound) {
					return ErrMilestoneNotFound
				}

				return err
			}
			if milestone.ContractId != contract.Id {
				return ErrMilestoneNotOnContract
			}
			amount = milestone.Amount
		}

		issuedAt := time.Now().UTC()
		id, err := s.invoiceRepo.CreateInvoice(ctx, &entity.CreateInvoiceInput{
			ContractId:  contract.Id.String(),
			MilestoneId: milestoneId,
			Amount:      amount,
			IssuedAt:    issuedAt,
			DueDate:     issuedAt.AddDate(0, 0, invoiceDueDays),
			Status:      common.InvoicePending,
		})
		if err != nil {
			return err
		}

		invoice, err := s.invoiceRepo.GetInvoiceById(ctx, id.String())
		if err != nil {
			return err
		}
		out = mapInvoice(invoice)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (s *InvoiceService) GetInvoiceById(ctx context.Context, invoiceId string) (*entity.InvoiceOutputModel, error) {
	invoice, err := s.invoiceRepo.GetInvoiceById(ctx, invoiceId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrInvoiceNotFound
		}

		return nil, err
	}

	return mapInvoice(invoice), nil
}

func (s *InvoiceService) GetInvoicesByCustomerId(ctx context.Context, customerId string, pg *entity.PaginationInput) ([]entity.InvoiceOutputModel, error) {
	invoices, err := s.invoiceRepo.GetInvoicesByCustomerId(ctx, customerId, pg)
	if err != nil {
		return nil, err
	}

	return mapInvoices(invoices), nil
}

func (s *InvoiceService) GetInvoicesByFreelancerId(ctx context.Context, freelancerId string, pg *entity.PaginationInput) ([]entity.InvoiceOutputModel, error) {
	invoices, err := s.invoiceRepo.GetInvoicesByFreelancerId(ctx, freelancerId, pg)
	if err != nil {
		return nil, err
	}

	return mapInvoices(invoices), nil
}

// UpdateInvoiceStatusById is the hub of the payment cascade. An invoice going
// PAID settles its milestone (or the whole contract) and bumps the contract's
// totals; leaving PAID undoes exactly that.
func (s *InvoiceService) UpdateInvoiceStatusById(ctx context.Context, invoiceId string, newStatus common.InvoiceStatus) (*entity.InvoiceOutputModel, error) {
	var out *entity.InvoiceOutputModel

	err := s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		invoice, err := s.invoiceRepo.GetInvoiceById(ctx, invoiceId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrInvoiceNotFound
			}

			return err
		}

		if err := s.applyInvoiceStatus(ctx, invoice, newStatus); err != nil {
			return err
		}

		invoice, err = s.invoiceRepo.GetInvoiceById(ctx, invoiceId)
		if err != nil {
			return err
		}
		out = mapInvoice(invoice)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// applyInvoiceStatus validates the transition, runs its cascade and persists
// the new status. Callers hold the transaction.
func (s *InvoiceService) applyInvoiceStatus(ctx context.Context, invoice *entity.Invoice, newStatus common.InvoiceStatus) error {
	action, changed, err := lookupTransition(KindInvoice, string(invoice.Status), string(newStatus))
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	switch action {
	case cascadeInvoicePaid:
		if err := s.markPaid(ctx, invoice); err != nil {
			return err
		}
	case cascadeInvoiceReverted:
		if err := s.revert(ctx, invoice); err != nil {
			return err
		}
	}

	return s.invoiceRepo.UpdateInvoiceStatusById(ctx, invoice.Id, newStatus)
}

// markPaid settles what the invoice bills. A milestone invoice moves its
// milestone to PAID, which runs the sibling completion check; the contract
// then stays COMPLETED if that check closed it, otherwise it is forced
// ACTIVE. A contract invoice completes the contract outright.
func (s *InvoiceService) markPaid(ctx context.Context, invoice *entity.Invoice) error {
	contract, err := s.contractRepo.GetContractById(ctx, invoice.ContractId.String())
	if err != nil {
		return err
	}

	patch := &entity.ContractPatch{}

	if invoice.MilestoneId != nil {
		milestone, err := s.milestoneRepo.GetMilestoneById(ctx, invoice.MilestoneId.String())
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrMilestoneNotFound
			}

			return err
		}

		paid := common.PaymentPaid
		if err := s.milestoneService.setStatus(ctx, milestone, common.MilestonePaid, &paid); err != nil {
			return err
		}

		// the completion check may have closed the contract; read it back
		// before deciding whether to force it active
		contract, err = s.contractRepo.GetContractById(ctx, invoice.ContractId.String())
		if err != nil {
			return err
		}
		if contract.Status != common.ContractCompleted {
			if err := s.contractService.applyContractStatus(ctx, contract, common.ContractActive); err != nil {
				return err
			}
		}

		contractPayment, err := s.contractPaymentStatus(ctx, contract)
		if err != nil {
			return err
		}
		totalPaid := contract.TotalPaid.Add(invoice.Amount)
		patch.PaymentStatus = &contractPayment
		patch.TotalPaid = &totalPaid
	} else {
		if err := s.contractService.applyContractStatus(ctx, contract, common.ContractCompleted); err != nil {
			return err
		}

		paid := common.PaymentPaid
		patch.PaymentStatus = &paid
		patch.TotalPaid = &invoice.Amount
	}

	if err := s.contractRepo.UpdateContract(ctx, contract.Id, patch); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"invoiceId":  invoice.Id,
		"contractId": contract.Id,
		"amount":     invoice.Amount,
	}).Info("invoice paid")

	return nil
}

// revert undoes a paid invoice. Reverting an invoice that never reached PAID
// changes nothing beyond its own status.
func (s *InvoiceService) revert(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.Status != common.InvoicePaid {
		return nil
	}

	contract, err := s.contractRepo.GetContractById(ctx, invoice.ContractId.String())
	if err != nil {
		return err
	}

	patch := &entity.ContractPatch{}
	totalPaid := contract.TotalPaid.Sub(invoice.Amount)
	patch.TotalPaid = &totalPaid

	if invoice.MilestoneId != nil {
		milestone, err := s.milestoneRepo.GetMilestoneById(ctx, invoice.MilestoneId.String())
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrMilestoneNotFound
			}

			return err
		}

		pending := common.PaymentPending
		if err := s.milestoneService.setStatus(ctx, milestone, common.MilestonePending, &pending); err != nil {
			return err
		}

		contract, err = s.contractRepo.GetContractById(ctx, invoice.ContractId.String())
		if err != nil {
			return err
		}

		contractPayment, err := s.contractPaymentStatus(ctx, contract)
		if err != nil {
			return err
		}
		patch.PaymentStatus = &contractPayment
	} else {
		if err := s.contractService.applyContractStatus(ctx, contract, common.ContractActive); err != nil {
			return err
		}

		pending := common.PaymentPending
		patch.PaymentStatus = &pending
	}

	if err := s.contractRepo.UpdateContract(ctx, contract.Id, patch); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"invoiceId":  invoice.Id,
		"contractId": contract.Id,
		"amount":     invoice.Amount,
	}).Info("invoice payment reverted")

	return nil
}

// contractPaymentStatus derives the contract-level payment progress from the
// fresh milestone set: PAID when every milestone is paid, PARTIALLY_PAID when
// some are, PENDING when none.
func (s *InvoiceService) contractPaymentStatus(ctx context.Context, contract *entity.Contract) (common.PaymentStatus, error) {
	milestones, err := s.milestoneRepo.GetMilestonesByContractId(ctx, contract.Id)
	if err != nil {
		return common.PaymentPending, err
	}

	paid := 0
	for _, m := range milestones {
		if m.PaymentStatus == common.PaymentPaid {
			paid++
		}
	}

	switch {
	case len(milestones) > 0 && paid == len(milestones):
		return common.PaymentPaid, nil
	case paid > 0:
		return common.PaymentPartiallyPaid, nil
	default:
		return common.PaymentPending, nil
	}
}

// UpdateInvoiceById applies a partial update. Attaching a payment is
// append-only: an invoice already holding one refuses a second. A status in
// the patch goes through the same cascade as the status endpoint.
func (s *InvoiceService) UpdateInvoiceById(ctx context.Context, invoiceId string, patch *entity.InvoicePatch) (*entity.InvoiceOutputModel, error) {
	var out *entity.InvoiceOutputModel

	err := s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		invoice, err := s.invoiceRepo.GetInvoiceById(ctx, invoiceId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrInvoiceNotFound
			}

			return err
		}

		if patch.PaymentId != nil {
			if invoice.PaymentId != nil && *invoice.PaymentId != *patch.PaymentId {
				return ErrInvoiceHasPayment
			}
			_, err := s.paymentRepo.GetPaymentById(ctx, patch.PaymentId.String())
			if err != nil {
				if errors.Is(err, repo_errors.ErrNotFound) {
					return ErrPaymentNotFound
				}

				return err
			}
		}

		if patch.Status != nil {
			if err := s.applyInvoiceStatus(ctx, invoice, *patch.Status); err != nil {
				return err
			}
		}

		rest := &entity.InvoicePatch{
			PaymentId:    patch.PaymentId,
			DueDate:      patch.DueDate,
			ClearPayment: patch.ClearPayment,
		}
		if rest.PaymentId != nil || rest.DueDate != nil || rest.ClearPayment {
			if err := s.invoiceRepo.UpdateInvoice(ctx, invoice.Id, rest); err != nil {
				return err
			}
		}

		invoice, err = s.invoiceRepo.GetInvoiceById(ctx, invoiceId)
		if err != nil {
			return err
		}
		out = mapInvoice(invoice)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// DeleteInvoiceById removes an invoice with no payment attached, reverting
// its cascade first if it was paid.
func (s *InvoiceService) DeleteInvoiceById(ctx context.Context, invoiceId string) error {
	return s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
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
			if err := s.revert(ctx, invoice); err != nil {
				return err
			}
		}

		return s.invoiceRepo.DeleteInvoiceById(ctx, invoice.Id)
	})
}
