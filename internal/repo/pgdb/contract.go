package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"freelance-market-api/internal/entity"
	"freelance-market-api/internal/repo/repo_errors"
	"freelance-market-api/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

const contractColumns = "contract.id, contract.project_id, contract.proposal_id, contract.customer_id, contract.freelancer_id, contract.status, contract.amount, contract.total_paid, contract.remaining_balance, contract.payment_status, contract.payment_type, contract.start_date, contract.end_date, contract.completed_at, contract.terminated_at, contract.created_at"

type ContractRepo struct {
	*postgres.Postgres
}

func NewContractRepo(pgdb *postgres.Postgres) *ContractRepo {
	return &ContractRepo{pgdb}
}

func scanContract(row squirrel.RowScanner) (*entity.Contract, error) {
	var contract entity.Contract
	var createdAt time.Time
	err := row.Scan(&contract.Id, &contract.ProjectId, &contract.ProposalId, &contract.CustomerId,
		&contract.FreelancerId, &contract.Status, &contract.Amount, &contract.TotalPaid,
		&contract.RemainingBalance, &contract.PaymentStatus, &contract.PaymentType,
		&contract.StartDate, &contract.EndDate, &contract.CompletedAt, &contract.TerminatedAt, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}
	contract.CreatedAt = createdAt.Format(time.RFC3339)

	return &contract, nil
}

func (r *ContractRepo) CreateContract(ctx context.Context, input *entity.CreateContractInput) (uuid.UUID, error) {
	createContractReq, args, _ := r.SqlBuilder.
		Insert("contract").
		Columns("project_id", "proposal_id", "customer_id", "freelancer_id", "status",
			"amount", "total_paid", "remaining_balance", "payment_status", "payment_type",
			"start_date", "end_date").
		Values(input.ProjectId, input.ProposalId, input.CustomerId, input.FreelancerId, input.Status,
			input.Amount, 0, input.Amount, "PENDING", input.PaymentType,
			input.StartDate, input.EndDate).
		Suffix("RETURNING id").
		ToSql()

	var contractId uuid.UUID
	if err := r.Runner(ctx).QueryRowContext(ctx, createContractReq, args...).Scan(&contractId); err != nil {
		return uuid.Nil, err
	}

	return contractId, nil
}

func (r *ContractRepo) GetContractById(ctx context.Context, id string) (*entity.Contract, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getContractReq, args, _ := r.SqlBuilder.
		Select(contractColumns).
		From("contract").
		Where("contract.id = ?", uuidForm).
		ToSql()

	return scanContract(r.Runner(ctx).QueryRowContext(ctx, getContractReq, args...))
}

func (r *ContractRepo) GetContractByProjectId(ctx context.Context, projectId string) (*entity.Contract, error) {
	uuidForm, err := uuid.Parse(projectId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getContractReq, args, _ := r.SqlBuilder.
		Select(contractColumns).
		From("contract").
		Where("contract.project_id = ?", uuidForm).
		ToSql()

	return scanContract(r.Runner(ctx).QueryRowContext(ctx, getContractReq, args...))
}

func (r *ContractRepo) GetContractByProposalId(ctx context.Context, proposalId uuid.UUID) (*entity.Contract, error) {
	getContractReq, args, _ := r.SqlBuilder.
		Select(contractColumns).
		From("contract").
		Where("contract.proposal_id = ?", proposalId).
		ToSql()

	return scanContract(r.Runner(ctx).QueryRowContext(ctx, getContractReq, args...))
}

func (r *ContractRepo) GetContracts(ctx context.Context, filter *entity.ContractFilter, pg *entity.PaginationInput) ([]entity.Contract, error) {
	query := r.SqlBuilder.
		Select(contractColumns).
		From("contract").
		InnerJoin("users customer on customer.id = contract.customer_id").
		InnerJoin("users freelancer on freelancer.id = contract.freelancer_id").
		InnerJoin("project on project.id = contract.project_id")

	if filter.CustomerName != "" {
		query = query.Where("customer.name ILIKE ?", "%"+filter.CustomerName+"%")
	}
	if filter.FreelancerName != "" {
		query = query.Where("freelancer.name ILIKE ?", "%"+filter.FreelancerName+"%")
	}
	if filter.Status != "" {
		query = query.Where("contract.status = ?", filter.Status)
	}
	if filter.SearchTerm != "" {
		query = query.Where("(project.title ILIKE ? OR customer.name ILIKE ? OR freelancer.name ILIKE ?)",
			"%"+filter.SearchTerm+"%", "%"+filter.SearchTerm+"%", "%"+filter.SearchTerm+"%")
	}

	getContractsReq, args, _ := query.
		OrderBy("contract.created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	rows, err := r.Runner(ctx).QueryContext(ctx, getContractsReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contracts := make([]entity.Contract, 0)
	for rows.Next() {
		contract, err := scanContract(rows)
		if err != nil {
			return contracts, err
		}
		contracts = append(contracts, *contract)
	}
	if err = rows.Err(); err != nil {
		return contracts, err
	}

	return contracts, nil
}

func (r *ContractRepo) UpdateContract(ctx context.Context, id uuid.UUID, patch *entity.ContractPatch) error {
	query := r.SqlBuilder.
		Update("contract").
		Where("id = ?", id)

	// InvoiceId and PaymentId on the patch are validation inputs for the
	// service layer; the contract row itself carries no such columns.
	hasSet := false

	if patch.Status != nil {
		query = query.Set("status", *patch.Status)
		hasSet = true
	}
	if patch.TotalPaid != nil {
		// remaining balance is recomputed together with every totalPaid write
		query = query.Set("total_paid", *patch.TotalPaid).
			Set("remaining_balance", squirrel.Expr("amount - ?", *patch.TotalPaid))
		hasSet = true
	}
	if patch.PaymentStatus != nil {
		query = query.Set("payment_status", *patch.PaymentStatus)
		hasSet = true
	}
	if patch.CompletedAt != nil {
		query = query.Set("completed_at", *patch.CompletedAt)
		hasSet = true
	} else if patch.ClearCompletedAt {
		query = query.Set("completed_at", nil)
		hasSet = true
	}
	if patch.TerminatedAt != nil {
		query = query.Set("terminated_at", *patch.TerminatedAt)
		hasSet = true
	}

	if !hasSet {
		return nil
	}

	updateContractReq, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.Runner(ctx).ExecContext(ctx, updateContractReq, args...); err != nil {
		return err
	}

	return nil
}

func (r *ContractRepo) DeleteContractById(ctx context.Context, id uuid.UUID) error {
	deleteContractReq, args, _ := r.SqlBuilder.
		Delete("contract").
		Where("id = ?", id).
		ToSql()

	if _, err := r.Runner(ctx).ExecContext(ctx, deleteContractReq, args...); err != nil {
		return err
	}

	return nil
}
