package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/ChrisMcGann/FeatureFinder/pkg/core"
	"github.com/ChrisMcGann/FeatureFinder/pkg/umc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResult(t *testing.T) *umc.Result {
	t.Helper()
	store := core.NewPeakStore(4)
	for i, p := range []core.IsotopePeak{
		{LCScan: 10, Charge: 2, Abundance: 1000, MZ: 501.0, MonoMass: 1000.000, AverageMass: 1000.6},
		{LCScan: 11, Charge: 2, Abundance: 3000, MZ: 501.1, MonoMass: 1000.002, AverageMass: 1000.6},
		{LCScan: 40, Charge: 1, Abundance: 800, MZ: 301.0, MonoMass: 600.000, AverageMass: 600.3},
		{LCScan: 41, Charge: 1, Abundance: 900, MZ: 301.1, MonoMass: 600.001, AverageMass: 600.3},
	} {
		p.LineNumber = i
		store.Add(p)
	}

	res, err := umc.Run(context.Background(), store, umc.DefaultOptions(), nil)
	require.NoError(t, err)
	require.Len(t, res.UMCs, 2)
	return res
}

func TestWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "features.db")

	w, err := NewWriter(path)
	require.NoError(t, err)

	res := testResult(t)
	require.NoError(t, w.WriteResult(Run{ID: "run-a", SourceFile: "a_isos.csv", Elapsed: time.Second}, res))
	require.NoError(t, w.WriteResult(Run{ID: "run-b", SourceFile: "b_isos.csv", IndexOffset: 100}, res))
	require.NoError(t, w.Finalize())

	// A second finalize is a no-op
	require.NoError(t, w.Close())
	assert.Error(t, w.WriteResult(Run{ID: "run-c"}, res))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	count := func(query string, args ...any) int {
		var n int
		require.NoError(t, db.QueryRow(query, args...).Scan(&n))
		return n
	}

	assert.Equal(t, 2, count(`SELECT COUNT(*) FROM HeaderTable`))
	assert.Equal(t, 4, count(`SELECT COUNT(*) FROM FeatureTable`))
	assert.Equal(t, 8, count(`SELECT COUNT(*) FROM FeaturePeakMap`))
	assert.Equal(t, 1, count(`SELECT COUNT(*) FROM MaintenanceTable`))
	assert.Equal(t, 4, count(`SELECT NoofFeatures FROM MaintenanceTable`))

	assert.Equal(t, 2, count(`SELECT FeatureCount FROM HeaderTable WHERE RunId = ?`, "run-b"))
	assert.Equal(t, 100, count(`SELECT MIN(FeatureIndex) FROM FeatureTable WHERE RunId = ?`, "run-b"))

	var mass float64
	var members int
	require.NoError(t, db.QueryRow(
		`SELECT MonoisotopicMass, MemberCount FROM FeatureTable WHERE RunId = ? AND FeatureIndex = 1`, "run-a",
	).Scan(&mass, &members))
	assert.InDelta(t, 1000.001, mass, 1e-9)
	assert.Equal(t, 2, members)
}

func TestWriterDuplicateRun(t *testing.T) {
	w, err := NewWriter(filepath.Join(t.TempDir(), "features.db"))
	require.NoError(t, err)
	defer w.Close()

	res := testResult(t)
	require.NoError(t, w.WriteResult(Run{ID: "same"}, res))
	assert.Error(t, w.WriteResult(Run{ID: "same"}, res))
}
