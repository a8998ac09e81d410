package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/wikilens/internal/model"
)

// DBFileName is the file name of the history database inside its directory.
const DBFileName = "wikilens.db"

// HistoryDB provides SQLite-based storage for snapshots and analysis runs.
type HistoryDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = dbPath + "?mode=rwc"
	} else if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDatabaseNotFound, dbPath)
		}
		return nil, fmt.Errorf("failed to check database path: %w", err)
	}

	// Wait for a concurrent writer instead of failing with SQLITE_BUSY.
	dsn += "&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// ErrDatabaseNotFound is returned by Open when the database does not exist
// and creation was not requested.
var ErrDatabaseNotFound = errors.New("history database not found")

// Path returns the database file path.
func (h *HistoryDB) Path() string {
	return h.dbPath
}

// Close closes the database connection.
func (h *HistoryDB) Close() error {
	return h.db.Close()
}

func (h *HistoryDB) createTables() error {
	schema := `
	-- Snapshots store exported pages and navigation per instance
	CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		instance TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		page_count INTEGER NOT NULL DEFAULT 0,
		nav_item_count INTEGER NOT NULL DEFAULT 0,
		pages_json TEXT,
		navigation_json TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_instance ON snapshots(instance);
	CREATE INDEX IF NOT EXISTS idx_snapshots_timestamp ON snapshots(timestamp);

	-- Analysis runs store the result of analyzing a snapshot
	CREATE TABLE IF NOT EXISTS analysis_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL UNIQUE,
		instance TEXT NOT NULL,
		snapshot_id INTEGER REFERENCES snapshots(id),
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		health_score INTEGER NOT NULL,
		issue_summary TEXT,
		result_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_instance ON analysis_runs(instance);
	CREATE INDEX IF NOT EXISTS idx_runs_snapshot ON analysis_runs(snapshot_id);
	`

	_, err := h.db.ExecContext(context.Background(), schema)
	return err
}

// SnapshotMetadata contains summary information about a stored snapshot.
type SnapshotMetadata struct {
	// ID is the database identifier of the snapshot.
	ID int64

	// Instance is the wiki instance the snapshot belongs to.
	Instance string

	// Fingerprint is the content hash of the snapshot.
	Fingerprint string

	// Timestamp is when the snapshot was stored.
	Timestamp time.Time

	// PageCount is the number of pages in the snapshot.
	PageCount int

	// NavItemCount is the number of navigation links in the snapshot.
	NavItemCount int

	// HealthScore is the score of the latest analysis of this snapshot.
	// It is -1 when the snapshot was never analyzed.
	HealthScore int
}

// StoredSnapshot is a snapshot loaded back from the history.
type StoredSnapshot struct {
	SnapshotMetadata
	Snapshot model.Snapshot
}

// SaveSnapshot stores a snapshot for an instance and returns its id.
// When the most recent snapshot of the instance has the same fingerprint,
// nothing is inserted and the id of that snapshot is returned with
// created set to false.
func (h *HistoryDB) SaveSnapshot(ctx context.Context, instance, fingerprint string, snap model.Snapshot) (id int64, created bool, err error) {
	var latestID int64
	var latestFingerprint string
	err = h.db.QueryRowContext(ctx, `
	SELECT id, fingerprint FROM snapshots
	WHERE instance = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`, instance).Scan(&latestID, &latestFingerprint)
	switch {
	case err == nil && latestFingerprint == fingerprint:
		return latestID, false, nil
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return 0, false, fmt.Errorf("failed to look up latest snapshot: %w", err)
	}

	pagesJSON, err := json.Marshal(snap.Pages)
	if err != nil {
		return 0, false, fmt.Errorf("failed to serialize pages: %w", err)
	}
	navJSON, err := json.Marshal(snap.Navigation)
	if err != nil {
		return 0, false, fmt.Errorf("failed to serialize navigation: %w", err)
	}

	pageCount, navCount := countSnapshot(snap)
	res, err := h.db.ExecContext(ctx, `
	INSERT INTO snapshots (instance, fingerprint, page_count, nav_item_count, pages_json, navigation_json)
	VALUES (?, ?, ?, ?, ?, ?)
	`, instance, fingerprint, pageCount, navCount, string(pagesJSON), string(navJSON))
	if err != nil {
		return 0, false, fmt.Errorf("failed to save snapshot: %w", err)
	}

	id, err = res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("failed to get snapshot id: %w", err)
	}
	return id, true, nil
}

func countSnapshot(snap model.Snapshot) (pages, navItems int) {
	if snap.Pages != nil {
		pages = len(snap.Pages.Pages)
	}
	if snap.Navigation != nil {
		var count func([]model.NavigationItem)
		count = func(items []model.NavigationItem) {
			for _, item := range items {
				if item.Kind == model.NavigationKindLink && item.Target != "" {
					navItems++
				}
				count(item.Children)
			}
		}
		for _, tree := range snap.Navigation.Tree {
			count(tree.Items)
		}
	}
	return pages, navItems
}

// ListInstances returns every instance that has stored snapshots.
func (h *HistoryDB) ListInstances(ctx context.Context) ([]string, error) {
	rows, err := h.db.QueryContext(ctx, `
	SELECT DISTINCT instance FROM snapshots
	ORDER BY instance
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}
	defer rows.Close()

	var instances []string
	for rows.Next() {
		var instance string
		if err := rows.Scan(&instance); err != nil {
			return nil, fmt.Errorf("failed to scan instance: %w", err)
		}
		instances = append(instances, instance)
	}
	return instances, rows.Err()
}

const snapshotMetadataColumns = `
	s.id, s.instance, s.fingerprint, s.timestamp, s.page_count, s.nav_item_count,
	COALESCE((SELECT r.health_score FROM analysis_runs r WHERE r.snapshot_id = s.id ORDER BY r.id DESC LIMIT 1), -1)
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshotMetadata(row rowScanner, extra ...any) (SnapshotMetadata, error) {
	var meta SnapshotMetadata
	var timestamp string
	dest := append([]any{
		&meta.ID, &meta.Instance, &meta.Fingerprint, &timestamp,
		&meta.PageCount, &meta.NavItemCount, &meta.HealthScore,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return SnapshotMetadata{}, err
	}
	meta.Timestamp = parseTimestamp(timestamp)
	return meta, nil
}

// GetSnapshotHistory returns the metadata of every snapshot of an instance,
// newest first.
func (h *HistoryDB) GetSnapshotHistory(ctx context.Context, instance string) ([]SnapshotMetadata, error) {
	rows, err := h.db.QueryContext(ctx, `SELECT `+snapshotMetadataColumns+`
	FROM snapshots s
	WHERE s.instance = ?
	ORDER BY s.timestamp DESC, s.id DESC
	`, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot history: %w", err)
	}
	defer rows.Close()

	var results []SnapshotMetadata
	for rows.Next() {
		meta, err := scanSnapshotMetadata(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot metadata: %w", err)
		}
		results = append(results, meta)
	}
	return results, rows.Err()
}

// GetSnapshotByID loads a snapshot. It returns nil, nil when no snapshot
// has the id.
func (h *HistoryDB) GetSnapshotByID(ctx context.Context, id int64) (*StoredSnapshot, error) {
	row := h.db.QueryRowContext(ctx, `SELECT `+snapshotMetadataColumns+`, s.pages_json, s.navigation_json
	FROM snapshots s
	WHERE s.id = ?
	`, id)

	stored, err := scanStoredSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return stored, nil
}

// GetLatestSnapshots loads up to limit snapshots of an instance, newest first.
func (h *HistoryDB) GetLatestSnapshots(ctx context.Context, instance string, limit int) ([]*StoredSnapshot, error) {
	rows, err := h.db.QueryContext(ctx, `SELECT `+snapshotMetadataColumns+`, s.pages_json, s.navigation_json
	FROM snapshots s
	WHERE s.instance = ?
	ORDER BY s.timestamp DESC, s.id DESC
	LIMIT ?
	`, instance, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest snapshots: %w", err)
	}
	defer rows.Close()

	var results []*StoredSnapshot
	for rows.Next() {
		stored, err := scanStoredSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to load snapshot: %w", err)
		}
		results = append(results, stored)
	}
	return results, rows.Err()
}

func scanStoredSnapshot(row rowScanner) (*StoredSnapshot, error) {
	var pagesJSON, navJSON sql.NullString
	meta, err := scanSnapshotMetadata(row, &pagesJSON, &navJSON)
	if err != nil {
		return nil, err
	}

	stored := &StoredSnapshot{SnapshotMetadata: meta}
	if pagesJSON.Valid {
		if err := json.Unmarshal([]byte(pagesJSON.String), &stored.Snapshot.Pages); err != nil {
			return nil, fmt.Errorf("failed to parse pages of snapshot %d: %w", meta.ID, err)
		}
	}
	if navJSON.Valid {
		if err := json.Unmarshal([]byte(navJSON.String), &stored.Snapshot.Navigation); err != nil {
			return nil, fmt.Errorf("failed to parse navigation of snapshot %d: %w", meta.ID, err)
		}
	}
	return stored, nil
}

// AnalysisRun is an analysis result to store.
type AnalysisRun struct {
	// RunID identifies the run. A random UUID is assigned when empty.
	RunID string

	// Instance is the analyzed wiki instance.
	Instance string

	// SnapshotID links the run to its snapshot. Zero means no snapshot.
	SnapshotID int64

	// Result is the analysis result.
	Result *model.AnalysisResult
}

// AnalysisRunMetadata contains summary information about a stored run.
type AnalysisRunMetadata struct {
	ID           int64
	RunID        string
	Instance     string
	SnapshotID   int64
	Timestamp    time.Time
	HealthScore  int
	IssueSummary map[model.IssueCategory]int
}

// SaveAnalysisRun stores an analysis run and returns its run id.
func (h *HistoryDB) SaveAnalysisRun(ctx context.Context, run *AnalysisRun) (string, error) {
	if run.Result == nil {
		return "", errors.New("analysis run has no result")
	}
	runID := run.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	resultJSON, err := json.Marshal(run.Result)
	if err != nil {
		return "", fmt.Errorf("failed to serialize analysis result: %w", err)
	}

	summary := make(map[model.IssueCategory]int, len(run.Result.HealthScore.Issues))
	for _, issue := range run.Result.HealthScore.Issues {
		summary[issue.Category] = issue.Count
	}
	summaryJSON, _ := json.Marshal(summary) //nolint:errcheck,errchkjson // map of ints cannot fail

	var snapshotID sql.NullInt64
	if run.SnapshotID != 0 {
		snapshotID = sql.NullInt64{Int64: run.SnapshotID, Valid: true}
	}

	_, err = h.db.ExecContext(ctx, `
	INSERT INTO analysis_runs (run_id, instance, snapshot_id, health_score, issue_summary, result_json)
	VALUES (?, ?, ?, ?, ?, ?)
	`, runID, run.Instance, snapshotID, run.Result.HealthScore.Score, string(summaryJSON), string(resultJSON))
	if err != nil {
		return "", fmt.Errorf("failed to save analysis run: %w", err)
	}
	return runID, nil
}

// GetAnalysisRuns returns the metadata of every run of an instance, newest first.
func (h *HistoryDB) GetAnalysisRuns(ctx context.Context, instance string) ([]AnalysisRunMetadata, error) {
	rows, err := h.db.QueryContext(ctx, `
	SELECT id, run_id, instance, snapshot_id, timestamp, health_score, issue_summary
	FROM analysis_runs
	WHERE instance = ?
	ORDER BY timestamp DESC, id DESC
	`, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis runs: %w", err)
	}
	defer rows.Close()

	var results []AnalysisRunMetadata
	for rows.Next() {
		var meta AnalysisRunMetadata
		var snapshotID sql.NullInt64
		var timestamp string
		var summaryJSON sql.NullString

		if err := rows.Scan(&meta.ID, &meta.RunID, &meta.Instance, &snapshotID, &timestamp, &meta.HealthScore, &summaryJSON); err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		meta.SnapshotID = snapshotID.Int64
		meta.Timestamp = parseTimestamp(timestamp)
		meta.IssueSummary = make(map[model.IssueCategory]int)
		if summaryJSON.Valid && summaryJSON.String != "" {
			if err := json.Unmarshal([]byte(summaryJSON.String), &meta.IssueSummary); err != nil {
				meta.IssueSummary = make(map[model.IssueCategory]int)
			}
		}
		results = append(results, meta)
	}
	return results, rows.Err()
}

// GetAnalysisRun loads the result of a run. It returns nil, nil when no run
// has the id.
func (h *HistoryDB) GetAnalysisRun(ctx context.Context, runID string) (*model.AnalysisResult, error) {
	var resultJSON string
	err := h.db.QueryRowContext(ctx, `
	SELECT result_json FROM analysis_runs
	WHERE run_id = ?
	`, runID).Scan(&resultJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis run: %w", err)
	}

	var result model.AnalysisResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse analysis result: %w", err)
	}
	return &result, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999",
}

// parseTimestamp parses a timestamp returned by SQLite.
// It returns the zero time when no format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
