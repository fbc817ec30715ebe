package catalog

import (
	"github.com/scrapworks/eolscout/internal/extract"
)

// RecordRun stores one extraction run and its date records, replacing
// any earlier recording of the same session id.
func RecordRun(db *DB, run RunRow, records []extract.DateRecord) error {
	// delete old data first
	if err := db.DeleteRun(run.SessionID); err != nil {
		return err
	}

	tx, err := db.Raw().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (session_id, mode, output_dir, created_at, total_files, files_with_dates, total_dates, prompt_batches)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.SessionID,
		run.Mode,
		run.OutputDir,
		run.CreatedAt,
		run.TotalFiles,
		run.FilesWithDates,
		run.TotalDates,
		run.PromptBatches,
	)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO records (session_id, record_id, source_file, date_text, context, position, pattern, source_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		_, err := stmt.Exec(
			run.SessionID,
			i,
			r.SourceFile,
			r.DateText,
			r.Context,
			r.Offset,
			r.Pattern,
			r.SourceURL,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
