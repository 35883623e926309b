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

const projectColumns = "id, customer_id, title, description, status, budget, payment_type, deadline, freelancer_id, accepted_proposal_id, contract_id, created_at"

type ProjectRepo struct {
	*postgres.Postgres
}

func NewProjectRepo(pgdb *postgres.Postgres) *ProjectRepo {
	return &ProjectRepo{pgdb}
}

func scanProject(row squirrel.RowScanner) (*entity.Project, error) {
	var project entity.Project
	var createdAt time.Time
	err := row.Scan(&project.Id, &project.CustomerId, &project.Title, &project.Description,
		&project.Status, &project.Budget, &project.PaymentType, &project.Deadline,
		&project.FreelancerId, &project.AcceptedProposalId, &project.ContractId, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}
	project.CreatedAt = createdAt.Format(time.RFC3339)

	return &project, nil
}

func (r *ProjectRepo) CreateProject(ctx context.Context, input *entity.CreateProjectInput) (uuid.UUID, error) {
	customerId, err := uuid.Parse(input.CustomerId)
	if err != nil {
		return uuid.Nil, err
	}

	createProjectReq, args, _ := r.SqlBuilder.
		Insert("project").
		Columns("customer_id", "title", "description", "status", "budget", "payment_type", "deadline").
		Values(customerId, input.Title, input.Description, input.Status, input.Budget, input.PaymentType, input.Deadline).
		Suffix("RETURNING id").
		ToSql()

	var projectId uuid.UUID
	if err := r.Runner(ctx).QueryRowContext(ctx, createProjectReq, args...).Scan(&projectId); err != nil {
		return uuid.Nil, err
	}

	return projectId, nil
}

func (r *ProjectRepo) GetProjectById(ctx context.Context, id string) (*entity.Project, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getProjectReq, args, _ := r.SqlBuilder.
		Select(projectColumns).
		From("project").
		Where("id = ?", uuidForm).
		ToSql()

	return scanProject(r.Runner(ctx).QueryRowContext(ctx, getProjectReq, args...))
}

func (r *ProjectRepo) GetProjects(ctx context.Context, filter *entity.ProjectFilter, pg *entity.PaginationInput) ([]entity.Project, error) {
	query := r.SqlBuilder.
		Select(projectColumns).
		From("project")

	if filter.CustomerId != "" {
		customerId, err := uuid.Parse(filter.CustomerId)
		if err != nil {
			return nil, repo_errors.ErrNotFound
		}
		query = query.Where("customer_id = ?", customerId)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.SearchTerm != "" {
		query = query.Where("(title ILIKE ? OR description ILIKE ?)", "%"+filter.SearchTerm+"%", "%"+filter.SearchTerm+"%")
	}

	getProjectsReq, args, _ := query.
		OrderBy("created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	rows, err := r.Runner(ctx).QueryContext(ctx, getProjectsReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]entity.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return projects, err
		}
		projects = append(projects, *project)
	}
	if err = rows.Err(); err != nil {
		return projects, err
	}

	return projects, nil
}

func (r *ProjectRepo) UpdateProject(ctx context.Context, id uuid.UUID, patch *entity.ProjectPatch) error {
	query := r.SqlBuilder.
		Update("project").
		Where("id = ?", id)

	if patch.Status != nil {
		query = query.Set("status", *patch.Status)
	}
	if patch.FreelancerId != nil {
		query = query.Set("freelancer_id", *patch.FreelancerId)
	} else if patch.ClearFreelancer {
		query = query.Set("freelancer_id", nil)
	}
	if patch.AcceptedProposalId != nil {
		query = query.Set("accepted_proposal_id", *patch.AcceptedProposalId)
	} else if patch.ClearProposal {
		query = query.Set("accepted_proposal_id", nil)
	}
	if patch.ContractId != nil {
		query = query.Set("contract_id", *patch.ContractId)
	} else if patch.ClearContract {
		query = query.Set("contract_id", nil)
	}

	updateProjectReq, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.Runner(ctx).ExecContext(ctx, updateProjectReq, args...); err != nil {
		return err
	}

	return nil
}

func (r *ProjectRepo) DeleteProjectById(ctx context.Context, id uuid.UUID) error {
	deleteProjectReq, args, _ := r.SqlBuilder.
		Delete("project").
		Where("id = ?", id).
		ToSql()

	if _, err := r.Runner(ctx).ExecContext(ctx, deleteProjectReq, args...); err != nil {
		return err
	}

	return nil
}
