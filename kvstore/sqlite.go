package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"punctuator/dataset"
)

// rowsPerStatement keeps multi-row inserts below SQLite's bound parameter limit.
const rowsPerStatement = 250

type SQLite struct {
	db *sql.DB
}

var _ dataset.Store = (*SQLite)(nil)

// OpenSQLite opens or creates the record database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %s: %w", path, err)
	}
	// one connection so per-connection pragmas hold for every commit
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
	PRAGMA busy_timeout       = 10000;
	PRAGMA journal_mode       = WAL;
	PRAGMA journal_size_limit = 200000000;
	PRAGMA synchronous        = NORMAL;
	PRAGMA temp_store         = MEMORY;
	PRAGMA cache_size         = -16000;

	create table if not exists records (
		key text primary key not null,
		value blob not null
	);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing sqlite %s: %w", path, err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) WriteBatch(ctx context.Context, entries []dataset.Entry, sync bool) error {
	if len(entries) == 0 {
		return nil
	}

	mode := "NORMAL"
	if sync {
		mode = "FULL"
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA synchronous = "+mode); err != nil {
		return fmt.Errorf("writing batch: setting synchronous: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("writing batch: begin trx: %w", err)
	}

	for start := 0; start < len(entries); start += rowsPerStatement {
		end := min(start+rowsPerStatement, len(entries))
		if err = insertRecords(ctx, tx, entries[start:end]); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return fmt.Errorf("rollback insert records: %w", errors.Join(err, rbErr))
			}
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("writing batch: commiting: %w", err)
	}
	return nil
}

func insertRecords(ctx context.Context, tx *sql.Tx, entries []dataset.Entry) error {
	var qb strings.Builder
	qb.WriteString("insert into records (key, value) values ")

	args := make([]any, 0, 2*len(entries))
	for n, e := range entries {
		if n > 0 {
			qb.WriteString(", ")
		}
		fmt.Fprintf(&qb, "($%d, $%d)", 2*n+1, 2*n+2)
		args = append(args, e.Key, e.Value)
	}
	qb.WriteString(" on conflict (key) do update set value = excluded.value;")

	if _, err := tx.ExecContext(ctx, qb.String(), args...); err != nil {
		return fmt.Errorf("inserting records: %w", err)
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var v []byte
	err := s.db.
		QueryRowContext(ctx, "select value from records where key = $1", key).
		Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, dataset.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get record %q: %w", key, err)
	}
	return v, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
