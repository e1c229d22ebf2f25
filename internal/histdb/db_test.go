package histdb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/tofmon/internal/hist"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenMigrates(t *testing.T) {
	db := openTestDB(t)

	// Schema is in place: both tables queryable.
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&n))
	assert.Equal(t, 0, n)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM hist_snapshots`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestOpenIdempotentMigrations(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshots.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening an already-migrated database is a no-op.
	db, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestBeginRunAndList(t *testing.T) {
	db := openTestDB(t)

	id1, err := db.BeginRun("commissioning")
	require.NoError(t, err)
	id2, err := db.BeginRun("physics")
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	runs, err := db.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	labels := []string{runs[0].Label, runs[1].Label}
	assert.Contains(t, labels, "commissioning")
	assert.Contains(t, labels, "physics")
}

func TestSaveAndLoadSnapshots(t *testing.T) {
	db := openTestDB(t)

	set := hist.NewSet()
	h1 := set.H1("DeltatPi", ";t (ps)", 10, -100, 100)
	h2 := set.H2("BetavsP", ";p;beta", 4, 0, 5, 4, 0, 1.5)
	h1.Fill(-50)
	h1.Fill(0)
	h1.Fill(500) // overflow
	h2.Fill(1, 0.5)

	runID, err := db.BeginRun("test")
	require.NoError(t, err)
	require.NoError(t, db.SaveSnapshots(runID, set.Snapshots()))

	got, err := db.Snapshots(runID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Name ordering: BetavsP before DeltatPi.
	assert.Equal(t, "BetavsP", got[0].Name)
	assert.Equal(t, 2, got[0].Dim)
	assert.Equal(t, int64(1), got[0].Entries)

	dt := got[1]
	assert.Equal(t, "DeltatPi", dt.Name)
	assert.Equal(t, 10, dt.XBins)
	assert.Equal(t, int64(3), dt.Entries)
	assert.Equal(t, 1.0, dt.Over)
	assert.Equal(t, h1.Snapshot().Counts, dt.Counts)
}

func TestSaveSnapshotsLatestGenerationWins(t *testing.T) {
	db := openTestDB(t)

	set := hist.NewSet()
	h := set.H1("EvTimeTOF", "", 4, 0, 4)

	runID, err := db.BeginRun("cycles")
	require.NoError(t, err)

	h.Fill(1)
	require.NoError(t, db.SaveSnapshots(runID, set.Snapshots()))
	h.Fill(1)
	require.NoError(t, db.SaveSnapshots(runID, set.Snapshots()))

	got, err := db.Snapshots(runID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].Entries, "latest generation should be returned")
}

func TestSnapshotsUnknownRunEmpty(t *testing.T) {
	db := openTestDB(t)
	got, err := db.Snapshots("no-such-run")
	require.NoError(t, err)
	assert.Empty(t, got)
}
