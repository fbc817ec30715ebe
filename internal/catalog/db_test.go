package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrapworks/eolscout/internal/extract"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleRun(id string) RunRow {
	return RunRow{
		SessionID:      id,
		Mode:           "full",
		OutputDir:      "/tmp/out_" + id,
		CreatedAt:      "2025-01-10T09:00:00Z",
		TotalFiles:     2,
		FilesWithDates: 1,
		TotalDates:     2,
		PromptBatches:  1,
	}
}

func sampleRecords() []extract.DateRecord {
	return []extract.DateRecord{
		{
			SourceFile: "Scrap_docs.vendor.com_20250110_090000.txt",
			DateText:   "15/01/2026",
			Context:    "support ends on 15/01/2026 for the appliance",
			Offset:     16,
			Pattern:    "numeric_dmy",
			SourceURL:  "https://docs.vendor.com/eol",
		},
		{
			SourceFile: "Scrap_docs.vendor.com_20250110_090000.txt",
			DateText:   "March 2027",
			Context:    "extended maintenance through March 2027 on request",
			Offset:     27,
			Pattern:    "month_year",
			SourceURL:  "https://docs.vendor.com/eol",
		},
	}
}

func TestRecordRunAndCounts(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, RecordRun(db, sampleRun("20250110_090000"), sampleRecords()))

	runs, err := db.RunCount()
	require.NoError(t, err)
	assert.Equal(t, 1, runs)

	records, err := db.RecordCount()
	require.NoError(t, err)
	assert.Equal(t, 2, records)
}

func TestRecordRunReplacesExisting(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, RecordRun(db, sampleRun("20250110_090000"), sampleRecords()))
	require.NoError(t, RecordRun(db, sampleRun("20250110_090000"), sampleRecords()[:1]))

	runs, err := db.RunCount()
	require.NoError(t, err)
	assert.Equal(t, 1, runs)

	records, err := db.RecordCount()
	require.NoError(t, err)
	assert.Equal(t, 1, records)
}

func TestLatestRun(t *testing.T) {
	db := openTestDB(t)

	latest, err := db.LatestRun()
	require.NoError(t, err)
	assert.Nil(t, latest)

	require.NoError(t, RecordRun(db, sampleRun("20250110_090000"), nil))
	require.NoError(t, RecordRun(db, sampleRun("20250111_120000"), nil))

	latest, err = db.LatestRun()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "20250111_120000", latest.SessionID)
}

func TestRunsNewestFirst(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, RecordRun(db, sampleRun("20250110_090000"), nil))
	require.NoError(t, RecordRun(db, sampleRun("20250111_120000"), nil))
	require.NoError(t, RecordRun(db, sampleRun("20250109_080000"), nil))

	runs, err := db.Runs(0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "20250111_120000", runs[0].SessionID)
	assert.Equal(t, "20250109_080000", runs[2].SessionID)
}

func TestGetRecordsOrdered(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, RecordRun(db, sampleRun("20250110_090000"), sampleRecords()))

	recs, err := db.GetRecords("20250110_090000")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 0, recs[0].RecordID)
	assert.Equal(t, "15/01/2026", recs[0].DateText)
	assert.Equal(t, "numeric_dmy", recs[0].Pattern)
	assert.Equal(t, 16, recs[0].Position)
	assert.Equal(t, "March 2027", recs[1].DateText)
}

func TestGetRunMissing(t *testing.T) {
	db := openTestDB(t)

	run, err := db.GetRun("nope")
	require.NoError(t, err)
	assert.Nil(t, run)
}
