package tracing

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

const defaultBatchSize = 10000

// SQLiteRecorder is a Recorder that writes events to a SQLite database in
// batches.
type SQLiteRecorder struct {
	*sql.DB
	statement *sql.Stmt

	path      string
	pending   []Event
	batchSize int
}

// NewSQLiteRecorder creates a database at path and prepares the event
// table. An empty path picks a unique name in the working directory. A path
// without an extension gets ".sqlite3". Existing files are never
// overwritten. Pending events are flushed when the program exits through
// atexit.
func NewSQLiteRecorder(path string) (*SQLiteRecorder, error) {
	if path == "" {
		path = "m2sched_events_" + xid.New().String()
	}
	if filepath.Ext(path) == "" {
		path += ".sqlite3"
	}

	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("file %s already exists", path)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	r := &SQLiteRecorder{
		DB:        db,
		path:      path,
		batchSize: defaultBatchSize,
	}

	if err := r.createTable(); err != nil {
		_ = db.Close()
		return nil, err
	}

	stmt, err := db.Prepare(`INSERT INTO scoreboard_events
		(region, seq, cycle, kind, inst_id, op, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare insert: %w", err)
	}
	r.statement = stmt

	atexit.Register(func() { r.Flush() })

	return r, nil
}

// Path returns the database file path.
func (r *SQLiteRecorder) Path() string {
	return r.path
}

// SetBatchSize sets how many events are buffered before they are written.
func (r *SQLiteRecorder) SetBatchSize(n int) {
	if n < 1 {
		n = 1
	}
	r.batchSize = n
}

// Record buffers an event.
func (r *SQLiteRecorder) Record(event Event) {
	r.pending = append(r.pending, event)
	if len(r.pending) >= r.batchSize {
		r.Flush()
	}
}

// Flush writes all the buffered events in one transaction.
func (r *SQLiteRecorder) Flush() {
	if len(r.pending) == 0 {
		return
	}

	r.mustExecute("BEGIN TRANSACTION")
	defer r.mustExecute("COMMIT TRANSACTION")

	for _, e := range r.pending {
		_, err := r.statement.Exec(
			e.Region, e.Seq, e.Cycle, e.Kind, e.InstID, e.Op, e.Detail)
		if err != nil {
			panic(fmt.Errorf("failed to insert event %+v: %w", e, err))
		}
	}

	r.pending = nil
}

// Close flushes and closes the database.
func (r *SQLiteRecorder) Close() error {
	r.Flush()

	if err := r.statement.Close(); err != nil {
		return err
	}

	return r.DB.Close()
}

func (r *SQLiteRecorder) createTable() error {
	queries := []string{
		`CREATE TABLE scoreboard_events
		(
			region  varchar(32) not null,
			seq     integer     not null,
			cycle   integer     not null,
			kind    varchar(16) not null,
			inst_id integer     default -1,
			op      varchar(32) default '',
			detail  text        default ''
		);`,
		`CREATE INDEX scoreboard_events_region_index
			ON scoreboard_events (region);`,
		`CREATE INDEX scoreboard_events_kind_index
			ON scoreboard_events (kind);`,
	}

	for _, q := range queries {
		if _, err := r.Exec(q); err != nil {
			return fmt.Errorf("failed to create event table: %w", err)
		}
	}

	return nil
}

func (r *SQLiteRecorder) mustExecute(query string) sql.Result {
	res, err := r.Exec(query)
	if err != nil {
		panic(fmt.Errorf("failed to execute %q: %w", query, err))
	}
	return res
}

// SQLiteEventReader reads events written by a SQLiteRecorder.
type SQLiteEventReader struct {
	*sql.DB
}

// NewSQLiteEventReader opens an existing event database.
func NewSQLiteEventReader(path string) (*SQLiteEventReader, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	return &SQLiteEventReader{DB: db}, nil
}

// ListRegions returns the recorded region IDs in order of first appearance.
func (r *SQLiteEventReader) ListRegions() ([]string, error) {
	rows, err := r.Query(
		`SELECT region FROM scoreboard_events GROUP BY region ORDER BY MIN(rowid)`)
	if err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var regions []string
	for rows.Next() {
		var region string
		if err := rows.Scan(&region); err != nil {
			return nil, err
		}
		regions = append(regions, region)
	}

	return regions, rows.Err()
}

// ListEvents returns the events of a region in order. An empty region
// returns all events.
func (r *SQLiteEventReader) ListEvents(region string) ([]Event, error) {
	query := `SELECT region, seq, cycle, kind, inst_id, op, detail
		FROM scoreboard_events`
	var args []any
	if region != "" {
		query += ` WHERE region = ?`
		args = append(args, region)
	}
	query += ` ORDER BY rowid`

	rows, err := r.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	events := []Event{}
	for rows.Next() {
		var e Event
		err := rows.Scan(
			&e.Region, &e.Seq, &e.Cycle, &e.Kind, &e.InstID, &e.Op, &e.Detail)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}
