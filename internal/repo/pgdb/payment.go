package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"freelance-market-api/internal/common"
	"freelance-market-api/internal/entity"
	"freelance-market-api/internal/repo/repo_errors"
	"freelance-market-api/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

const paymentColumns = "id, invoice_id, status, amount, paid_at, notes, created_at"

type PaymentRepo struct {
	*postgres.Postgres
}

func NewPaymentRepo(pgdb *postgres.Postgres) *PaymentRepo {
	return &PaymentRepo{pgdb}
}

func scanPayment(row squirrel.RowScanner) (*entity.Payment, error) {
	var payment entity.Payment
	var createdAt time.Time
	err := row.Scan(&payment.Id, &payment.InvoiceId, &payment.Status, &payment.Amount,
		&payment.PaidAt, &payment.Notes, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}
	payment.CreatedAt = createdAt.Format(time.RFC3339)

	return &payment, nil
}

func (r *PaymentRepo) CreatePayment(ctx context.Context, input *entity.CreatePaymentInput) (uuid.UUID, error) {
	createPaymentReq, args, _ := r.SqlBuilder.
		Insert("payment").
		Columns("invoice_id", "status", "amount", "notes").
		Values(input.InvoiceId, input.Status, input.Amount, input.Notes).
		Suffix("RETURNING id").
		ToSql()

	var paymentId uuid.UUID
	if err := r.Runner(ctx).QueryRowContext(ctx, createPaymentReq, args...).Scan(&paymentId); err != nil {
		return uuid.Nil, err
	}

	return paymentId, nil
}

func (r *PaymentRepo) GetPaymentById(ctx context.Context, id string) (*entity.Payment, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getPaymentReq, args, _ := r.SqlBuilder.
		Select(paymentColumns).
		From("payment").
		Where("id = ?", uuidForm).
		ToSql()

	return scanPayment(r.Runner(ctx).QueryRowContext(ctx, getPaymentReq, args...))
}

func (r *PaymentRepo) GetPaymentByInvoiceId(ctx context.Context, invoiceId string) (*entity.Payment, error) {
	uuidForm, err := uuid.Parse(invoiceId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getPaymentReq, args, _ := r.SqlBuilder.
		Select(paymentColumns).
		From("payment").
		Where("invoice_id = ?", uuidForm).
		ToSql()

	return scanPayment(r.Runner(ctx).QueryRowContext(ctx, getPaymentReq, args...))
}

func (r *PaymentRepo) UpdatePaymentStatusById(ctx context.Context, id uuid.UUID, newStatus common.PaymentRecordStatus, paidAt *time.Time) error {
	query := r.SqlBuilder.
		Update("payment").
		Set("status", newStatus).
		Where("id = ?", id)

	if paidAt != nil {
		query = query.Set("paid_at", *paidAt)
	}

	updateStatusReq, args, _ := query.ToSql()

	if _, err := r.Runner(ctx).ExecContext(ctx, updateStatusReq, args...); err != nil {
		return err
	}

	return nil
}

func (r *PaymentRepo) DeletePaymentById(ctx context.Context, id uuid.UUID) error {
	deletePaymentReq, args, _ := r.SqlBuilder.
		Delete("payment").
		Where("id = ?", id).
		ToSql()

	if _, err := r.Runner(ctx).ExecContext(ctx, deletePaymentReq, args...); err != nil {
		return err
	}

	return nil
}
