package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/MrJamesThe3rd/gofinances/internal/database"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

// Store keeps each user's transactions as one JSON array in the kv_store table.
type Store struct {
	db        *sql.DB
	driver    string
	namespace string
	now       func() time.Time
}

func New(db *sql.DB, driver, namespace string) *Store {
	return &Store{
		db:        db,
		driver:    driver,
		namespace: namespace,
		now:       time.Now,
	}
}

// Key returns the storage key holding userID's transactions.
func Key(namespace, userID string) string {
	return namespace + "transactions_user:" + userID
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) read(ctx context.Context, q querier, key string) (string, bool, error) {
	query := database.Rebind(s.driver, `SELECT payload FROM kv_store WHERE storage_key = ?`)

	var payload string

	err := q.QueryRowContext(ctx, query, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}

		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}

	return payload, true, nil
}

// Load returns the user's records. A missing key is an empty list.
func (s *Store) Load(ctx context.Context, userID string) ([]transaction.Record, error) {
	payload, found, err := s.read(ctx, s.db, Key(s.namespace, userID))
	if err != nil {
		return nil, err
	}

	if !found {
		return []transaction.Record{}, nil
	}

	var records []transaction.Record
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, fmt.Errorf("%w: %w", transaction.ErrCorrupt, err)
	}

	if records == nil {
		records = []transaction.Record{}
	}

	return records, nil
}

// begin opens a database transaction holding the key's lock on postgres.
// SQLite serialises writers on its own.
func (s *Store) begin(ctx context.Context, key string) (*sql.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	if s.driver == database.DriverPostgres {
		if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey(key)); err != nil {
			dbTx.Rollback()
			return nil, fmt.Errorf("acquiring key lock: %w", err)
		}
	}

	return dbTx, nil
}

// Append adds records to the end of the user's list. Existing elements are kept
// byte-for-byte; the read and the write happen in one database transaction.
func (s *Store) Append(ctx context.Context, userID string, records ...transaction.Record) error {
	if len(records) == 0 {
		return nil
	}

	key := Key(s.namespace, userID)

	dbTx, err := s.begin(ctx, key)
	if err != nil {
		return err
	}
	defer dbTx.Rollback()

	payload, found, err := s.read(ctx, dbTx, key)
	if err != nil {
		return err
	}

	var current []json.RawMessage

	if found {
		if err := json.Unmarshal([]byte(payload), &current); err != nil {
			return fmt.Errorf("%w: %w", transaction.ErrCorrupt, err)
		}
	}

	for _, r := range records {
		b, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encoding record %s: %w", r.ID, err)
		}

		current = append(current, b)
	}

	updated, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}

	if err := s.write(ctx, dbTx, key, string(updated)); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) write(ctx context.Context, q querier, key, payload string) error {
	query := database.Rebind(s.driver, `
		INSERT INTO kv_store (storage_key, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (storage_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`)

	if _, err := q.ExecContext(ctx, query, key, payload, s.now().UTC()); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}

	return nil
}

// Replace swaps the user's whole list for records in one database transaction.
// If anything fails the previous list is left untouched. No records removes the key.
func (s *Store) Replace(ctx context.Context, userID string, records ...transaction.Record) error {
	key := Key(s.namespace, userID)

	dbTx, err := s.begin(ctx, key)
	if err != nil {
		return err
	}
	defer dbTx.Rollback()

	if len(records) == 0 {
		query := database.Rebind(s.driver, `DELETE FROM kv_store WHERE storage_key = ?`)
		if _, err := dbTx.ExecContext(ctx, query, key); err != nil {
			return fmt.Errorf("clearing transactions: %w", err)
		}
	} else {
		payload, err := json.Marshal(records)
		if err != nil {
			return fmt.Errorf("encoding records: %w", err)
		}

		if err := s.write(ctx, dbTx, key, string(payload)); err != nil {
			return err
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func lockKey(key string) int64 {
	h := fnv.New64a()
	h.Write([]byte(key))

	return int64(h.Sum64())
}
