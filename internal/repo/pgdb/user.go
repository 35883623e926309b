package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"freelance-market-api/internal/entity"
	"freelance-market-api/internal/repo/repo_errors"
	"freelance-market-api/pkg/postgres"

	"github.com/google/uuid"
)

type UserRepo struct {
	*postgres.Postgres
}

func NewUserRepo(pgdb *postgres.Postgres) *UserRepo {
	return &UserRepo{pgdb}
}

func (r *UserRepo) GetUserById(ctx context.Context, id string) (*entity.User, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getUserReq, args, _ := r.SqlBuilder.
		Select("id, name, email, role, created_at").
		From("users").
		Where("id = ?", uuidForm).
		ToSql()

	var user entity.User
	var createdAt time.Time
	row := r.Runner(ctx).QueryRowContext(ctx, getUserReq, args...)
	if err := row.Scan(&user.Id, &user.Name, &user.Email, &user.Role, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}
	user.CreatedAt = createdAt.Format(time.RFC3339)

	return &user, nil
}
