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

const proposalColumns = "id, project_id, freelancer_id, status, amount, cover_letter, planned_start_date, planned_end_date, actual_start_date, actual_end_date, estimated_duration_days, created_at"

type ProposalRepo struct {
	*postgres.Postgres
}

func NewProposalRepo(pgdb *postgres.Postgres) *ProposalRepo {
	return &ProposalRepo{pgdb}
}

func scanProposal(row squirrel.RowScanner) (*entity.Proposal, error) {
	var proposal entity.Proposal
	var createdAt time.Time
	err := row.Scan(&proposal.Id, &proposal.ProjectId, &proposal.FreelancerId, &proposal.Status,
		&proposal.Amount, &proposal.CoverLetter, &proposal.PlannedStartDate, &proposal.PlannedEndDate,
		&proposal.ActualStartDate, &proposal.ActualEndDate, &proposal.EstimatedDurationDays, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}
	proposal.CreatedAt = createdAt.Format(time.RFC3339)

	return &proposal, nil
}

func (r *ProposalRepo) CreateProposal(ctx context.Context, input *entity.CreateProposalInput) (uuid.UUID, error) {
	projectId, err := uuid.Parse(input.ProjectId)
	if err != nil {
		return uuid.Nil, err
	}
	freelancerId, err := uuid.Parse(input.FreelancerId)
	if err != nil {
		return uuid.Nil, err
	}

	createProposalReq, args, _ := r.SqlBuilder.
		Insert("proposal").
		Columns("project_id", "freelancer_id", "status", "amount", "cover_letter",
			"planned_start_date", "planned_end_date", "estimated_duration_days").
		Values(projectId, freelancerId, input.Status, input.Amount, input.CoverLetter,
			input.PlannedStartDate, input.PlannedEndDate, input.EstimatedDurationDays).
		Suffix("RETURNING id").
		ToSql()

	var proposalId uuid.UUID
	if err := r.Runner(ctx).QueryRowContext(ctx, createProposalReq, args...).Scan(&proposalId); err != nil {
		return uuid.Nil, err
	}

	for _, m := range input.Milestones {
		createMilestoneReq, args, _ := r.SqlBuilder.
			Insert("proposal_milestone").
			Columns("proposal_id", "title", "amount", "planned_start_date", "planned_end_date").
			Values(proposalId, m.Title, m.Amount, m.PlannedStartDate, m.PlannedEndDate).
			ToSql()

		if _, err := r.Runner(ctx).ExecContext(ctx, createMilestoneReq, args...); err != nil {
			return uuid.Nil, err
		}
	}

	return proposalId, nil
}

func (r *ProposalRepo) GetProposalById(ctx context.Context, id string) (*entity.Proposal, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getProposalReq, args, _ := r.SqlBuilder.
		Select(proposalColumns).
		From("proposal").
		Where("id = ?", uuidForm).
		ToSql()

	return scanProposal(r.Runner(ctx).QueryRowContext(ctx, getProposalReq, args...))
}

func (r *ProposalRepo) getProposals(ctx context.Context, column string, id string, pg *entity.PaginationInput) ([]entity.Proposal, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getProposalsReq, args, _ := r.SqlBuilder.
		Select(proposalColumns).
		From("proposal").
		Where(column+" = ?", uuidForm).
		OrderBy("created_at ASC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	rows, err := r.Runner(ctx).QueryContext(ctx, getProposalsReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	proposals := make([]entity.Proposal, 0)
	for rows.Next() {
		proposal, err := scanProposal(rows)
		if err != nil {
			return proposals, err
		}
		proposals = append(proposals, *proposal)
	}
	if err = rows.Err(); err != nil {
		return proposals, err
	}

	return proposals, nil
}

func (r *ProposalRepo) GetProposalsByProjectId(ctx context.Context, projectId string, pg *entity.PaginationInput) ([]entity.Proposal, error) {
	return r.getProposals(ctx, "project_id", projectId, pg)
}

func (r *ProposalRepo) GetProposalsByFreelancerId(ctx context.Context, freelancerId string, pg *entity.PaginationInput) ([]entity.Proposal, error) {
	return r.getProposals(ctx, "freelancer_id", freelancerId, pg)
}

func (r *ProposalRepo) GetProposalMilestones(ctx context.Context, proposalId uuid.UUID) ([]entity.ProposalMilestone, error) {
	getMilestonesReq, args, _ := r.SqlBuilder.
		Select("id, proposal_id, title, amount, planned_start_date, planned_end_date").
		From("proposal_milestone").
		Where("proposal_id = ?", proposalId).
		OrderBy("planned_start_date ASC").
		ToSql()

	rows, err := r.Runner(ctx).QueryContext(ctx, getMilestonesReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	milestones := make([]entity.ProposalMilestone, 0)
	for rows.Next() {
		var m entity.ProposalMilestone
		if err := rows.Scan(&m.Id, &m.ProposalId, &m.Title, &m.Amount, &m.PlannedStartDate, &m.PlannedEndDate); err != nil {
			return milestones, err
		}
		milestones = append(milestones, m)
	}
	if err = rows.Err(); err != nil {
		return milestones, err
	}

	return milestones, nil
}

func (r *ProposalRepo) ExistsProposalForProjectAndFreelancer(ctx context.Context, projectId uuid.UUID, freelancerId uuid.UUID) (bool, error) {
	existsReq, args, _ := r.SqlBuilder.
		Select("id").
		From("proposal").
		Where("project_id = ?", projectId).
		Where("freelancer_id = ?", freelancerId).
		ToSql()

	var id uuid.UUID
	err := r.Runner(ctx).QueryRowContext(ctx, existsReq, args...).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (r *ProposalRepo) UpdateProposalStatusById(ctx context.Context, id uuid.UUID, newStatus common.ProposalStatus) error {
	updateStatusReq, args, _ := r.SqlBuilder.
		Update("proposal").
		Set("status", newStatus).
		Where("id = ?", id).
		ToSql()

	if _, err := r.Runner(ctx).ExecContext(ctx, updateStatusReq, args...); err != nil {
		return err
	}

	return nil
}

func (r *ProposalRepo) UpdateProposal(ctx context.Context, id uuid.UUID, patch *entity.ProposalPatch) error {
	query := r.SqlBuilder.
		Update("proposal").
		Where("id = ?", id)

	hasSet := false
	if patch.Amount != nil {
		query = query.Set("amount", *patch.Amount)
		hasSet = true
	}
	if patch.CoverLetter != nil {
		query = query.Set("cover_letter", *patch.CoverLetter)
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
	if !hasSet {
		return nil
	}

	updateProposalReq, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.Runner(ctx).ExecContext(ctx, updateProposalReq, args...); err != nil {
		return err
	}

	return nil
}

// RejectPendingProposalsByProjectId flips every still-PENDING sibling to
// REJECTED in one statement; the accepted proposal is excluded by id.
func (r *ProposalRepo) RejectPendingProposalsByProjectId(ctx context.Context, projectId uuid.UUID, exceptId uuid.UUID) error {
	rejectReq, args, _ := r.SqlBuilder.
		Update("proposal").
		Set("status", common.ProposalRejected).
		Where("project_id = ?", projectId).
		Where("status = ?", common.ProposalPending).
		Where("id <> ?", exceptId).
		ToSql()

	if _, err := r.Runner(ctx).ExecContext(ctx, rejectReq, args...); err != nil {
		return err
	}

	return nil
}

// ResetProposalsByProjectId reverts a project's proposals to the pre-contract
// state: everything back to PENDING except the proposal the deleted contract
// was spawned from, which becomes REJECTED.
func (r *ProposalRepo) ResetProposalsByProjectId(ctx context.Context, projectId uuid.UUID, rejectedId uuid.UUID) error {
	resetReq, args, _ := r.SqlBuilder.
		Update("proposal").
		Set("status", common.ProposalPending).
		Where("project_id = ?", projectId).
		Where("id <> ?", rejectedId).
		ToSql()

	if _, err := r.Runner(ctx).ExecContext(ctx, resetReq, args...); err != nil {
		return err
	}

	rejectReq, args, _ := r.SqlBuilder.
		Update("proposal").
		Set("status", common.ProposalRejected).
		Where("id = ?", rejectedId).
		ToSql()

	if _, err := r.Runner(ctx).ExecContext(ctx, rejectReq, args...); err != nil {
		return err
	}

	return nil
}

func (r *ProposalRepo) DeleteProposalById(ctx context.Context, id uuid.UUID) error {
	deleteMilestonesReq, args, _ := r.SqlBuilder.
		Delete("proposal_milestone").
		Where("proposal_id = ?", id).
		ToSql()

	if _, err := r.Runner(ctx).ExecContext(ctx, deleteMilestonesReq, args...); err != nil {
		return err
	}

	deleteProposalReq, args, _ := r.SqlBuilder.
		Delete("proposal").
		Where("id = ?", id).
		ToSql()

	if _, err := r.Runner(ctx).ExecContext(ctx, deleteProposalReq, args...); err != nil {
		return err
	}

	return nil
}
