package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
)

// Queryer is the subset of *sql.DB and *sql.Tx the repositories need.
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

type Postgres struct {
	Database   *sql.DB
	SqlBuilder squirrel.StatementBuilderType
}

func NewDB(url string) (*Postgres, error) {
	driver := "postgres"
	db, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("error while opening database with driver `%s` and url `%s`. %w", driver, url, err)
	}

	return &Postgres{
		Database:   db,
		SqlBuilder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// WithinTransaction runs fn inside a single transaction. The transaction is
// injected into the context, so every repository call made by fn shares it;
// a nested call reuses the transaction already in flight. Any error from fn
// rolls the whole unit back, so a failed cascade step never leaves a
// partially-cascaded graph.
func (p *Postgres) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := p.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	return tx.Commit()
}

// Runner resolves the executor for the current context: the in-flight
// transaction when one exists, the pooled database otherwise.
func (p *Postgres) Runner(ctx context.Context) Queryer {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}

	return p.Database
}

func (p *Postgres) Close() error {
	if p.Database != nil {
		err := p.Database.Close()
		if err != nil {
			return err
		}

		return nil
	}

	return nil
}
