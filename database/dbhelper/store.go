package dbhelper

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/ray-remotestate/bistro/database"
	"github.com/ray-remotestate/bistro/models"
)

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// PostgresStore implements database.Store on top of a *sql.DB opened with lib/pq.
type PostgresStore struct {
	db *sql.DB
}

var _ database.Store = (*PostgresStore)(nil)

func New(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, database.ErrInvalidID
	}
	return parsed, nil
}

func updateResult(res sql.Result) (models.UpdateResult, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return models.UpdateResult{}, err
	}
	return models.UpdateResult{Acknowledged: true, MatchedCount: n, ModifiedCount: n}, nil
}

func deleteResult(res sql.Result) (models.DeleteResult, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return models.DeleteResult{}, err
	}
	return models.DeleteResult{Acknowledged: true, DeletedCount: n}, nil
}

func insertResult(id uuid.UUID) models.InsertResult {
	return models.InsertResult{Acknowledged: true, InsertedID: id.String()}
}
