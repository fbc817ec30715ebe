package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA cache_size = -64000;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS runs (
    session_id       TEXT PRIMARY KEY,
    mode             TEXT NOT NULL,
    output_dir       TEXT NOT NULL,
    created_at       TEXT NOT NULL DEFAULT '',
    total_files      INTEGER NOT NULL DEFAULT 0,
    files_with_dates INTEGER NOT NULL DEFAULT 0,
    total_dates      INTEGER NOT NULL DEFAULT 0,
    prompt_batches   INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS records (
    session_id  TEXT NOT NULL,
    record_id   INTEGER NOT NULL,
    source_file TEXT NOT NULL,
    date_text   TEXT NOT NULL,
    context     TEXT NOT NULL DEFAULT '',
    position    INTEGER NOT NULL DEFAULT 0,
    pattern     TEXT NOT NULL DEFAULT '',
    source_url  TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (session_id, record_id)
);

CREATE VIRTUAL TABLE IF NOT EXISTS records_fts USING fts5(
    date_text,
    context,
    content=records,
    content_rowid=rowid,
    tokenize='unicode61'
);

-- triggers to keep FTS in sync
CREATE TRIGGER IF NOT EXISTS records_ai AFTER INSERT ON records BEGIN
    INSERT INTO records_fts(rowid, date_text, context) VALUES (new.rowid, new.date_text, new.context);
END;

CREATE TRIGGER IF NOT EXISTS records_ad AFTER DELETE ON records BEGIN
    INSERT INTO records_fts(records_fts, rowid, date_text, context) VALUES('delete', old.rowid, old.date_text, old.context);
END;

CREATE TRIGGER IF NOT EXISTS records_au AFTER UPDATE ON records BEGIN
    INSERT INTO records_fts(records_fts, rowid, date_text, context) VALUES('delete', old.rowid, old.date_text, old.context);
    INSERT INTO records_fts(rowid, date_text, context) VALUES (new.rowid, new.date_text, new.context);
END;
`

type DB struct {
	db *sql.DB
}

func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	db.Exec("CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT)")
	d := &DB{db: db}
	d.migrateSchemaVersion()

	return d, nil
}

// schemaVersion should be bumped whenever extraction semantics change
// enough that old catalog rows stop being comparable. Runs can be
// re-recorded from their on-disk artifacts.
const schemaVersion = "1"

func (d *DB) migrateSchemaVersion() {
	var ver string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&ver)
	if err != nil || ver != schemaVersion {
		d.db.Exec("DELETE FROM records")
		d.db.Exec("DELETE FROM runs")
		d.db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion)
	}
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Raw() *sql.DB {
	return d.db
}

type RunRow struct {
	SessionID      string
	Mode           string
	OutputDir      string
	CreatedAt      string
	TotalFiles     int
	FilesWithDates int
	TotalDates     int
	PromptBatches  int
}

type RecordRow struct {
	SessionID  string
	RecordID   int
	SourceFile string
	DateText   string
	Context    string
	Position   int
	Pattern    string
	SourceURL  string
}

const runColumns = "session_id, mode, output_dir, created_at, total_files, files_with_dates, total_dates, prompt_batches"

func scanRun(row *sql.Row) (*RunRow, error) {
	var r RunRow
	err := row.Scan(&r.SessionID, &r.Mode, &r.OutputDir, &r.CreatedAt,
		&r.TotalFiles, &r.FilesWithDates, &r.TotalDates, &r.PromptBatches)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (d *DB) GetRun(sessionID string) (*RunRow, error) {
	return scanRun(d.db.QueryRow(
		"SELECT "+runColumns+" FROM runs WHERE session_id = ?", sessionID))
}

// LatestRun returns the most recent run, or nil when the catalog is
// empty. Session ids are UTC timestamps, so lexical order is time order.
func (d *DB) LatestRun() (*RunRow, error) {
	return scanRun(d.db.QueryRow(
		"SELECT " + runColumns + " FROM runs ORDER BY session_id DESC LIMIT 1"))
}

func (d *DB) Runs(limit int) ([]RunRow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.db.Query(
		"SELECT "+runColumns+" FROM runs ORDER BY session_id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunRow
	for rows.Next() {
		var r RunRow
		if err := rows.Scan(&r.SessionID, &r.Mode, &r.OutputDir, &r.CreatedAt,
			&r.TotalFiles, &r.FilesWithDates, &r.TotalDates, &r.PromptBatches); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (d *DB) GetRecords(sessionID string) ([]RecordRow, error) {
	rows, err := d.db.Query(
		"SELECT session_id, record_id, source_file, date_text, context, position, pattern, source_url FROM records WHERE session_id = ? ORDER BY record_id",
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []RecordRow
	for rows.Next() {
		var r RecordRow
		if err := rows.Scan(&r.SessionID, &r.RecordID, &r.SourceFile, &r.DateText,
			&r.Context, &r.Position, &r.Pattern, &r.SourceURL); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (d *DB) DeleteRun(sessionID string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM records WHERE session_id = ?", sessionID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM runs WHERE session_id = ?", sessionID); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *DB) RunCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n)
	return n, err
}

func (d *DB) RecordCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&n)
	return n, err
}
