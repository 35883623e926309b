package pgdb

import (
	"freelance-market-api/pkg/postgres"
)

type DiagnosticsRepo struct {
	*postgres.Postgres
}

func NewDiagnosticsRepo(pgdb *postgres.Postgres) *DiagnosticsRepo {
	return &DiagnosticsRepo{pgdb}
}

func (r *DiagnosticsRepo) Ping() error {
	return r.Database.Ping()
}
