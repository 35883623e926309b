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

const milestoneColumns = "id, contract_id, title, status, payment_status, amount, penalty_amount, bonus_amount, planned_start_date, planned_end_date, actual_start_date, actual_end_date, created_at"

type MilestoneRepo struct {
	*postgres.Postgres
}

func NewMilestoneRepo(pgdb *postgres.Postgres) *MilestoneRepo {
	return &MilestoneRepo{pgdb}
}

func scanMilestone(row squirrel.RowScanner) (*entity.Milestone, error) {
	var milestone entity.Milestone
	var createdAt time.Time
	err := row.Scan(&milestone.Id, &milestone.ContractId, &milestone.Title, &milestone.Status,
		&milestone.PaymentStatus, &milestone.Amount, &milestone.PenaltyAmount, &milestone.BonusAmount,
		&milestone.PlannedStartDate, &milestone.PlannedEndDate,
		&milestone.ActualStartDate, &milestone.ActualEndDate, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}
	milestone.CreatedAt = createdAt.Format(time.RFC3339)

	return &milestone, nil
}

func (r *MilestoneRepo) CreateMilestone(ctx context.Context, input *entity.CreateMilestoneInput) (uuid.UUID, error) {
	contractId, err := uuid.Parse(input.ContractId)
	if err != nil {
		return uuid.Nil, err
	}

	createMilestoneReq, args, _ := r.SqlBuilder.
		Insert("milestone").
		Columns("contract_id", "title", "status", "payment_status", "amount",
			"penalty_amount", "bonus_amount", "planned_start_date", "planned_end_date").
		Values(contractId, input.Title, input.Status, common.PaymentPending, input.Amount,
			input.PenaltyAmount, input.BonusAmount, input.PlannedStartDate, input.PlannedEndDate).
		Suffix("RETURNING id").
		ToSql()

	var milestoneId uuid.UUID
	if err := r.Runner(ctx).QueryRowContext(ctx, createMilestoneReq, args...).Scan(&milestoneId); err != nil {
		return uuid.Nil, err
	}

	return milestoneId, nil
}

func (r *MilestoneRepo) GetMilestoneById(ctx context.Context, id string) (*entity.Milestone, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getMilestoneReq, args, _ := r.SqlBuilder.
		Select(milestoneColumns).
		From("milestone").
		Where("id = ?", uuidForm).
		ToSql()

	return scanMilestone(r.Runner(ctx).QueryRowContext(ctx, getMilestoneReq, args...))
}

func (r *MilestoneRepo) GetMilestonesByContractId(ctx context.Context, contractId uuid.UUID) ([]entity.Milestone, error) {
	getMilestonesReq, args, _ := r.SqlBuilder.
		Select(milestoneColumns).
		From("milestone").
		Where("contract_id = ?", contractId).
		OrderBy("planned_start_date ASC").
		ToSql()

	rows, err := r.Runner(ctx).QueryContext(ctx, getMilestonesReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	milestones := make([]entity.Milestone, 0)
	for rows.Next() {
		milestone, err := scanMilestone(rows)
		if err != nil {
			return milestones, err
		}
		milestones = append(milestones, *milestone)
	}
	if err = rows.Err(); err != nil {
		return milestones, err
	}

	return milestones, nil
}

func (r *MilestoneRepo) UpdateMilestoneStatusById(ctx context.Context, id uuid.UUID, newStatus common.MilestoneStatus, paymentStatus *common.PaymentStatus) error {
	query := r.SqlBuilder.
		Update("milestone").
		Set("status", newStatus).
		Where("id = ?", id)

	if paymentStatus != nil {
		query = query.Set("payment_status", *paymentStatus)
	}

	updateStatusReq, args, _ := query.ToSql()

	if _, err := r.Runner(ctx).ExecContext(ctx, updateStatusReq, args...); err != nil {
		return err
	}

	return nil
}

func (r *MilestoneRepo) UpdateMilestone(ctx context.Context, id uuid.UUID, patch *entity.MilestonePatch) error {
	query := r.SqlBuilder.
		Update("milestone").
		Where("id = ?", id)

	hasSet := false
	if patch.Title != nil {
		query = query.Set("title", *patch.Title)
		hasSet = true
	}
	if patch.Amount != nil {
		query = query.Set("amount", *patch.Amount)
		hasSet = true
	}
	if patch.PenaltyAmount != nil {
		query = query.Set("penalty_amount", *patch.PenaltyAmount)
		hasSet = true
	}
	if patch.BonusAmount != nil {
		query = query.Set("bonus_amount", *patch.BonusAmount)
		hasSet = true
	}
	if patch.PlannedStartDate != nil {
		query = query.Set("planned_start_date", *patch.PlannedStartDate)
		hasSet = true
	}
	if patch.PlannedEndDate != nil {
		query = query.Set("planned_end_date", *patch.PlannedEndDate)
		hasSet = true
	}
	if patch.ActualStartDate != nil {
		query = query.Set("actual_start_date", *patch.ActualStartDate)
		hasSet = true
	}
	if patch.ActualEndDate != nil {
		query = query.Set("actual_end_date", *patch.ActualEndDate)
		hasSet = true
	}
	if !hasSet {
		return nil
	}

	updateMilestoneReq, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.Runner(ctx).ExecContext(ctx, updateMilestoneReq, args...); err != nil {
		return err
	}

	return nil
}

func (r *MilestoneRepo) DeleteMilestoneById(ctx context.Context, id uuid.UUID) error {
	deleteMilestoneReq, args, _ := r.SqlBuilder.
		Delete("milestone").
		Where("id = ?", id).
		ToSql()

	if _, err := r.Runner(ctx).ExecContext(ctx, deleteMilestoneReq, args...); err != nil {
		return err
	}

	return nil
}
