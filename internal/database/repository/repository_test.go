package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/jumptap/internal/database"
	"github.com/jask/jumptap/internal/database/repository"
)

func openDB(t *testing.T) (*repository.JumperRepo, *repository.LandingRepo) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewJumperRepo(db), repository.NewLandingRepo(db)
}

func seed(t *testing.T, jumpers *repository.JumperRepo, labels ...string) {
	t.Helper()
	for i, l := range labels {
		require.NoError(t, jumpers.Upsert(context.Background(), repository.Jumper{
			ID: repository.JumperID(l), Label: l, Position: i,
		}))
	}
}

func TestJumperIDStable(t *testing.T) {
	t.Parallel()
	require.Equal(t, repository.JumperID("🍞"), repository.JumperID("🍞"))
	require.NotEqual(t, repository.JumperID("🍞"), repository.JumperID("🍦"))
}

func TestIncrementAndList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	jumpers, _ := openDB(t)
	seed(t, jumpers, "bread", "icecream")

	id := repository.JumperID("icecream")
	for i := 1; i <= 3; i++ {
		n, err := jumpers.Increment(ctx, id)
		require.NoError(t, err)
		require.Equal(t, int64(i), n)
	}

	list, err := jumpers.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "bread", list[0].Label)
	require.Zero(t, list[0].Clicks)
	require.Equal(t, int64(3), list[1].Clicks)

	_, err = jumpers.Increment(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = jumpers.Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, jumpers.Reset(ctx))
	j, err := jumpers.Get(ctx, id)
	require.NoError(t, err)
	require.Zero(t, j.Clicks)
}

func TestResolveFuzzy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	jumpers, _ := openDB(t)
	seed(t, jumpers, "bread", "icecream", "popcorn")

	j, err := jumpers.Resolve(ctx, "POPCORN", 2)
	require.NoError(t, err)
	require.Equal(t, "popcorn", j.Label)

	j, err = jumpers.Resolve(ctx, "icecrem", 2)
	require.NoError(t, err)
	require.Equal(t, "icecream", j.Label)

	_, err = jumpers.Resolve(ctx, "zebra", 2)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLandings(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	jumpers, landings := openDB(t)
	seed(t, jumpers, "bread", "popcorn")

	bread := repository.JumperID("bread")
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i, ms := range []int{800, 900, 1000} {
		require.NoError(t, landings.Insert(ctx, repository.Landing{
			JumperID: bread,
			Airtime:  time.Duration(ms) * time.Millisecond,
			LandedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, landings.Insert(ctx, repository.Landing{
		JumperID: repository.JumperID("popcorn"),
		Airtime:  500 * time.Millisecond,
	}))

	recent, err := landings.Recent(ctx, bread, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, time.Second, recent[0].Airtime)
	require.Equal(t, 900*time.Millisecond, recent[1].Airtime)
	require.NotEmpty(t, recent[0].ID)

	all, err := landings.Recent(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 4)

	avg, err := landings.AverageAirtime(ctx, bread)
	require.NoError(t, err)
	require.Equal(t, 900*time.Millisecond, avg)

	avg, err = landings.AverageAirtime(ctx, "nobody")
	require.NoError(t, err)
	require.Zero(t, avg)
}
