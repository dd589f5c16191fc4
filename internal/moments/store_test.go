package moments

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestStore_AddListRemoveClear(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			first, err := store.Add(ctx, "a", domain.LoggedMoment{
				Type: domain.MomentPlay, Duration: 20, Date: "2024-03-04", Note: "  bola no parque ",
			})
			require.NoError(t, err)
			assert.Len(t, first.ID, 36, "Should assign a uuid")
			assert.False(t, first.CreatedAt.IsZero())
			assert.Equal(t, "bola no parque", first.Note)

			second, err := store.Add(ctx, "a", domain.LoggedMoment{
				Type: domain.MomentMeal, Duration: 30, Date: "2024-03-05",
			})
			require.NoError(t, err)
			_, err = store.Add(ctx, "b", domain.LoggedMoment{
				Type: domain.MomentLearning, Duration: 15, Date: "2024-03-05",
			})
			require.NoError(t, err)

			list, err := store.List(ctx, "a")
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, first.ID, list[0].ID)
			assert.Equal(t, domain.MomentPlay, list[0].Type)
			assert.Equal(t, 20.0, list[0].Duration)
			assert.True(t, first.CreatedAt.Equal(list[0].CreatedAt))
			assert.Equal(t, second.ID, list[1].ID)

			require.NoError(t, store.Remove(ctx, "a", first.ID))
			err = store.Remove(ctx, "a", first.ID)
			assert.True(t, errors.Is(err, ErrNotFound))
			err = store.Remove(ctx, "b", second.ID)
			assert.True(t, errors.Is(err, ErrNotFound), "Should not remove from another list")

			require.NoError(t, store.Clear(ctx, "a"))
			list, err = store.List(ctx, "a")
			require.NoError(t, err)
			assert.Empty(t, list)

			other, err := store.List(ctx, "b")
			require.NoError(t, err)
			assert.Len(t, other, 1)
		})
	}
}

func TestStore_AddValidation(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Add(ctx, "a", domain.LoggedMoment{Type: "hug", Duration: 0, Date: "ontem"})
			require.Error(t, err)

			var verrs domain.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, []string{"moment.type", "moment.duration", "moment.date"}, verrs.Fields())

			_, err = store.Add(ctx, " ", domain.LoggedMoment{Type: domain.MomentPlay, Duration: 10, Date: "2024-03-04"})
			assert.Error(t, err)

			list, err := store.List(ctx, "a")
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestStore_KeepsGivenIDAndTime(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 3, 4, 18, 30, 0, 0, time.UTC)
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			m, err := store.Add(ctx, "a", domain.LoggedMoment{
				ID: "fixed", Type: domain.MomentConversation, Duration: 10, Date: "2024-03-04", CreatedAt: created,
			})
			require.NoError(t, err)
			assert.Equal(t, "fixed", m.ID)

			list, err := store.List(ctx, "a")
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.True(t, created.Equal(list[0].CreatedAt))
		})
	}
}

func TestStore_EmptyListIsNotNil(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			list, err := store.List(ctx, "never-used")
			require.NoError(t, err)
			require.NotNil(t, list)

			data, err := json.Marshal(list)
			require.NoError(t, err)
			assert.Equal(t, "[]", string(data))

			runs, err := store.Runs(ctx, "never-used")
			require.NoError(t, err)
			assert.NotNil(t, runs)
		})
	}
}

func TestStore_Runs(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.RecordRun(ctx, "a", domain.CalculatorRun{
				Calculator: domain.CalculatorMeals, Score: 60, Category: domain.CategoryHigh,
			}))
			require.NoError(t, store.RecordRun(ctx, "a", domain.CalculatorRun{
				Calculator: domain.CalculatorFamilyTime, Score: 90, Category: domain.CategoryExcellent,
			}))
			require.NoError(t, store.RecordRun(ctx, "b", domain.CalculatorRun{Calculator: domain.CalculatorMoments}))

			assert.Error(t, store.RecordRun(ctx, "a", domain.CalculatorRun{Calculator: "horoscopo"}))
			assert.Error(t, store.RecordRun(ctx, "", domain.CalculatorRun{Calculator: domain.CalculatorMeals}))

			runs, err := store.Runs(ctx, "a")
			require.NoError(t, err)
			require.Len(t, runs, 2)
			assert.Equal(t, domain.CalculatorMeals, runs[0].Calculator)
			assert.Equal(t, 60.0, runs[0].Score)
			assert.Equal(t, domain.CategoryExcellent, runs[1].Category)
			assert.False(t, runs[1].CreatedAt.IsZero())

			require.NoError(t, store.Clear(ctx, "a"))
			runs, err = store.Runs(ctx, "a")
			require.NoError(t, err)
			assert.Len(t, runs, 2, "Clearing moments keeps the run history")
		})
	}
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "famcalc.db?_pragma=journal_mode%28wal%29&_pragma=busy_timeout%285000%29", sqliteDSN("famcalc.db"))

	dsn := sqliteDSN("file:famcalc.db?mode=rwc")
	assert.True(t, strings.HasPrefix(dsn, "file:famcalc.db?mode=rwc&_pragma="), dsn)
	assert.Equal(t, 1, strings.Count(dsn, "?"))
}

func TestOpenSQLite_DSNWithQuery(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "moments.db") + "?_txlock=immediate"

	store, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	_, err = store.Add(ctx, "a", domain.LoggedMoment{Type: domain.MomentPlay, Duration: 10, Date: "2024-03-04"})
	require.NoError(t, err)
	list, err := store.List(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, "memory", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(ctx, "sqlite", ":memory:")
	require.NoError(t, err)
	assert.IsType(t, &SQLStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, "mongo", "")
	assert.EqualError(t, err, `unsupported moments store driver "mongo"`)
}

func TestMomentsInput(t *testing.T) {
	target := 5
	in := MomentsInput([]domain.LoggedMoment{
		{ID: "1", Type: domain.MomentPlay, Duration: 10, Date: "2024-03-04", Note: "x"},
		{ID: "2", Type: domain.MomentMeal, Duration: 25, Date: "2024-03-05"},
	}, &target)

	require.Len(t, in.Moments, 2)
	assert.Equal(t, domain.MomentInput{Type: domain.MomentMeal, Duration: 25, Date: "2024-03-05"}, in.Moments[1])
	assert.Equal(t, 5, in.Target())
}
