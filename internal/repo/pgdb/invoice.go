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

const invoiceColumns = "invoice.id, invoice.contract_id, invoice.milestone_id, invoice.payment_id, invoice.status, invoice.amount, invoice.issued_at, invoice.due_date, invoice.created_at"

type InvoiceRepo struct {
	*postgres.Postgres
}

func NewInvoiceRepo(pgdb *postgres.Postgres) *InvoiceRepo {
	return &InvoiceRepo{pgdb}
}

func scanInvoice(row squirrel.RowScanner) (*entity.Invoice, error) {
	var invoice entity.Invoice
	var createdAt time.Time
	err := row.Scan(&invoice.Id, &invoice.ContractId, &invoice.MilestoneId, &invoice.PaymentId,
		&invoice.Status, &invoice.Amount, &invoice.IssuedAt, &invoice.DueDate, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}
	invoice.CreatedAt = createdAt.Format(time.RFC3339)

	return &invoice, nil
}

func (r *InvoiceRepo) CreateInvoice(ctx context.Context, input *entity.CreateInvoiceInput) (uuid.UUID, error) {
	contractId, err := uuid.Parse(input.ContractId)
	if err != nil {
		return uuid.Nil, err
	}

	var milestoneId *uuid.UUID
	if input.MilestoneId != "" {
		parsed, err := uuid.Parse(input.MilestoneId)
		if err != nil {
			return uuid.Nil, err
		}
		milestoneId = &parsed
	}

	createInvoiceReq, args, _ := r.SqlBuilder.
		Insert("invoice").
		Columns("contract_id", "milestone_id", "status", "amount", "issued_at", "due_date").
		Values(contractId, milestoneId, input.Status, input.Amount, input.IssuedAt, input.DueDate).
		Suffix("RETURNING id").
		ToSql()

	var invoiceId uuid.UUID
	if err := r.Runner(ctx).QueryRowContext(ctx, createInvoiceReq, args...).Scan(&invoiceId); err != nil {
		return uuid.Nil, err
	}

	return invoiceId, nil
}

func (r *InvoiceRepo) GetInvoiceById(ctx context.Context, id string) (*entity.Invoice, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getInvoiceReq, args, _ := r.SqlBuilder.
		Select(invoiceColumns).
		From("invoice").
		Where("invoice.id = ?", uuidForm).
		ToSql()

	return scanInvoice(r.Runner(ctx).QueryRowContext(ctx, getInvoiceReq, args...))
}

func (r *InvoiceRepo) GetInvoicesByContractId(ctx context.Context, contractId uuid.UUID) ([]entity.Invoice, error) {
	getInvoicesReq, args, _ := r.SqlBuilder.
		Select(invoiceColumns).
		From("invoice").
		Where("invoice.contract_id = ?", contractId).
		OrderBy("invoice.issued_at ASC").
		ToSql()

	return r.queryInvoices(ctx, getInvoicesReq, args)
}

func (r *InvoiceRepo) getInvoicesThroughContract(ctx context.Context, column string, id string, pg *entity.PaginationInput) ([]entity.Invoice, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getInvoicesReq, args, _ := r.SqlBuilder.
		Select(invoiceColumns).
		From("invoice").
		InnerJoin("contract on contract.id = invoice.contract_id").
		Where("contract."+column+" = ?", uuidForm).
		OrderBy("invoice.issued_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	return r.queryInvoices(ctx, getInvoicesReq, args)
}

func (r *InvoiceRepo) GetInvoicesByCustomerId(ctx context.Context, customerId string, pg *entity.PaginationInput) ([]entity.Invoice, error) {
	return r.getInvoicesThroughContract(ctx, "customer_id", customerId, pg)
}

func (r *InvoiceRepo) GetInvoicesByFreelancerId(ctx context.Context, freelancerId string, pg *entity.PaginationInput) ([]entity.Invoice, error) {
	return r.getInvoicesThroughContract(ctx, "freelancer_id", freelancerId, pg)
}

func (r *InvoiceRepo) queryInvoices(ctx context.Context, query string, args []interface{}) ([]entity.Invoice, error) {
	rows, err := r.Runner(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := make([]entity.Invoice, 0)
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return invoices, err
		}
		invoices = append(invoices, *invoice)
	}
	if err = rows.Err(); err != nil {
		return invoices, err
	}

	return invoices, nil
}

func (r *InvoiceRepo) UpdateInvoiceStatusById(ctx context.Context, id uuid.UUID, newStatus common.InvoiceStatus) error {
	updateStatusReq, args, _ := r.SqlBuilder.
		Update("invoice").
		Set("status", newStatus).
		Where("id = ?", id).
		ToSql()

	if _, err := r.Runner(ctx).ExecContext(ctx, updateStatusReq, args...); err != nil {
		return err
	}

	return nil
}

func (r *InvoiceRepo) UpdateInvoice(ctx context.Context, id uuid.UUID, patch *entity.InvoicePatch) error {
	query := r.SqlBuilder.
		Update("invoice").
		Where("id = ?", id)

	hasSet := false
	if patch.Status != nil {
		query = query.Set("status", *patch.Status)
		hasSet = true
	}
	if patch.PaymentId != nil {
		query = query.Set("payment_id", *patch.PaymentId)
		hasSet = true
	} else if patch.ClearPayment {
		query = query.Set("payment_id", nil)
		hasSet = true
	}
	if patch.DueDate != nil {
		query = query.Set("due_date", *patch.DueDate)
		hasSet = true
	}
	if !hasSet {
		return nil
	}

	updateInvoiceReq, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.Runner(ctx).ExecContext(ctx, updateInvoiceReq, args...); err != nil {
		return err
	}

	return nil
}

func (r *InvoiceRepo) DeleteInvoiceById(ctx context.Context, id uuid.UUID) error {
	deleteInvoiceReq, args, _ := r.SqlBuilder.
		Delete("invoice").
		Where("id = ?", id).
		ToSql()

	if _, err := r.Runner(ctx).ExecContext(ctx, deleteInvoiceReq, args...); err != nil {
		return err
	}

	return nil
}
