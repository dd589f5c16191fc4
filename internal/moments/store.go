// Package moments persists the running log of connection moments a family
// records over time. Each list is addressed by a key.
package moments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/famcalc/internal/domain"
)

// ErrNotFound is returned when a moment id is not in the list.
var ErrNotFound = errors.New("moment not found")

// DefaultKey names the list used when the caller does not pick one.
const DefaultKey = "family-moments"

// Store keeps independent lists of logged moments. Lists are returned in the
// order the moments were added. Each key also has a history of calculator
// runs, which Clear leaves alone.
type Store interface {
	List(ctx context.Context, key string) ([]domain.LoggedMoment, error)
	Add(ctx context.Context, key string, m domain.LoggedMoment) (domain.LoggedMoment, error)
	Remove(ctx context.Context, key, id string) error
	Clear(ctx context.Context, key string) error
	RecordRun(ctx context.Context, key string, run domain.CalculatorRun) error
	Runs(ctx context.Context, key string) ([]domain.CalculatorRun, error)
	Close() error
}

// Open returns the store for driver: "memory", "sqlite" or "postgres".
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch strings.ToLower(driver) {
	case "memory", "":
		return NewMemoryStore(), nil
	case "sqlite", "sqlite3":
		return OpenSQLite(ctx, dsn)
	case "postgres", "postgresql", "pgx":
		return OpenPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported moments store driver %q", driver)
	}
}

// prepare validates m and fills in the id and creation time when missing.
func prepare(key string, m domain.LoggedMoment, now time.Time) (domain.LoggedMoment, error) {
	if strings.TrimSpace(key) == "" {
		return m, fmt.Errorf("list key is required")
	}
	if err := m.Input().Validate(); err != nil {
		return m, err
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now.UTC()
	}
	m.Note = strings.TrimSpace(m.Note)
	return m, nil
}

// prepareRun checks run and stamps it with now when it has no time.
func prepareRun(key string, run domain.CalculatorRun, now time.Time) (domain.CalculatorRun, error) {
	if strings.TrimSpace(key) == "" {
		return run, fmt.Errorf("list key is required")
	}
	if !run.Calculator.IsValid() {
		return run, fmt.Errorf("unknown calculator %q", run.Calculator)
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = now.UTC()
	}
	return run, nil
}

// Inputs converts a stored list to calculator input, keeping the order.
func Inputs(logged []domain.LoggedMoment) []domain.MomentInput {
	out := make([]domain.MomentInput, 0, len(logged))
	for _, m := range logged {
		out = append(out, m.Input())
	}
	return out
}

// MomentsInput builds the moments calculator input for a stored list.
func MomentsInput(logged []domain.LoggedMoment, target *int) *domain.MomentsInput {
	return &domain.MomentsInput{Moments: Inputs(logged), TargetMomentsPerWeek: target}
}
