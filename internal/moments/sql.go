package moments

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/rgehrsitz/famcalc/internal/domain"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS moments (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL UNIQUE,
	list_key   TEXT NOT NULL,
	type       TEXT NOT NULL,
	duration   REAL NOT NULL,
	date       TEXT NOT NULL,
	note       TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS moments_list_key ON moments (list_key, seq);
CREATE TABLE IF NOT EXISTS calculator_runs (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	list_key   TEXT NOT NULL,
	calculator TEXT NOT NULL,
	score      REAL NOT NULL,
	category   TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS calculator_runs_list_key ON calculator_runs (list_key, seq);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS moments (
	seq        BIGSERIAL PRIMARY KEY,
	id         TEXT NOT NULL UNIQUE,
	list_key   TEXT NOT NULL,
	type       TEXT NOT NULL,
	duration   DOUBLE PRECISION NOT NULL,
	date       TEXT NOT NULL,
	note       TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS moments_list_key ON moments (list_key, seq);
CREATE TABLE IF NOT EXISTS calculator_runs (
	seq        BIGSERIAL PRIMARY KEY,
	list_key   TEXT NOT NULL,
	calculator TEXT NOT NULL,
	score      DOUBLE PRECISION NOT NULL,
	category   TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS calculator_runs_list_key ON calculator_runs (list_key, seq);
`

// SQLStore keeps lists in a SQL database through sqlx. Queries are written
// with ? placeholders and rebound for the driver.
type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

type momentRow struct {
	ID        string  `db:"id"`
	Type      string  `db:"type"`
	Duration  float64 `db:"duration"`
	Date      string  `db:"date"`
	Note      string  `db:"note"`
	CreatedAt string  `db:"created_at"`
}

type runRow struct {
	Calculator string  `db:"calculator"`
	Score      float64 `db:"score"`
	Category   string  `db:"category"`
	CreatedAt  string  `db:"created_at"`
}

var sqlitePragmas = []string{"journal_mode(wal)", "busy_timeout(5000)"}

// sqliteDSN adds the connection pragmas to path, which may already carry
// query parameters of its own.
func sqliteDSN(path string) string {
	q := url.Values{"_pragma": sqlitePragmas}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + q.Encode()
}

// OpenSQLite opens (creating if needed) a SQLite database at path.
// ":memory:" gives a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLStore, error) {
	db, err := sqlx.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	return newSQLStore(ctx, db, sqliteSchema)
}

// OpenPostgres connects to Postgres with the pgx driver.
func OpenPostgres(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return newSQLStore(ctx, db, postgresSchema)
}

func newSQLStore(ctx context.Context, db *sqlx.DB, schema string) (*SQLStore, error) {
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLStore{db: db, now: time.Now}, nil
}

func (s *SQLStore) List(ctx context.Context, key string) ([]domain.LoggedMoment, error) {
	var rows []momentRow
	q := s.db.Rebind(`SELECT id, type, duration, date, note, created_at
		FROM moments WHERE list_key = ? ORDER BY seq`)
	if err := s.db.SelectContext(ctx, &rows, q, key); err != nil {
		return nil, fmt.Errorf("list moments: %w", err)
	}

	out := make([]domain.LoggedMoment, 0, len(rows))
	for _, r := range rows {
		created, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("moment %s: bad created_at %q: %w", r.ID, r.CreatedAt, err)
		}
		out = append(out, domain.LoggedMoment{
			ID:        r.ID,
			Type:      domain.MomentType(r.Type),
			Duration:  r.Duration,
			Date:      r.Date,
			Note:      r.Note,
			CreatedAt: created,
		})
	}
	return out, nil
}

func (s *SQLStore) Add(ctx context.Context, key string, m domain.LoggedMoment) (domain.LoggedMoment, error) {
	m, err := prepare(key, m, s.now())
	if err != nil {
		return domain.LoggedMoment{}, err
	}
	q := s.db.Rebind(`INSERT INTO moments (id, list_key, type, duration, date, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err = s.db.ExecContext(ctx, q,
		m.ID, key, string(m.Type), m.Duration, m.Date, m.Note, m.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return domain.LoggedMoment{}, fmt.Errorf("insert moment: %w", err)
	}
	return m, nil
}

func (s *SQLStore) Remove(ctx context.Context, key, id string) error {
	q := s.db.Rebind(`DELETE FROM moments WHERE list_key = ? AND id = ?`)
	res, err := s.db.ExecContext(ctx, q, key, id)
	if err != nil {
		return fmt.Errorf("delete moment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete moment: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Clear(ctx context.Context, key string) error {
	q := s.db.Rebind(`DELETE FROM moments WHERE list_key = ?`)
	if _, err := s.db.ExecContext(ctx, q, key); err != nil {
		return fmt.Errorf("clear moments: %w", err)
	}
	return nil
}

func (s *SQLStore) RecordRun(ctx context.Context, key string, run domain.CalculatorRun) error {
	run, err := prepareRun(key, run, s.now())
	if err != nil {
		return err
	}
	q := s.db.Rebind(`INSERT INTO calculator_runs (list_key, calculator, score, category, created_at)
		VALUES (?, ?, ?, ?, ?)`)
	_, err = s.db.ExecContext(ctx, q,
		key, string(run.Calculator), run.Score, string(run.Category), run.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert calculator run: %w", err)
	}
	return nil
}

func (s *SQLStore) Runs(ctx context.Context, key string) ([]domain.CalculatorRun, error) {
	var rows []runRow
	q := s.db.Rebind(`SELECT calculator, score, category, created_at
		FROM calculator_runs WHERE list_key = ? ORDER BY seq`)
	if err := s.db.SelectContext(ctx, &rows, q, key); err != nil {
		return nil, fmt.Errorf("list calculator runs: %w", err)
	}

	out := make([]domain.CalculatorRun, 0, len(rows))
	for _, r := range rows {
		created, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("calculator run: bad created_at %q: %w", r.CreatedAt, err)
		}
		out = append(out, domain.CalculatorRun{
			Calculator: domain.CalculatorName(r.Calculator),
			Score:      r.Score,
			Category:   domain.Category(r.Category),
			CreatedAt:  created,
		})
	}
	return out, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
