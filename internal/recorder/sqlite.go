package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists lookup history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS quote_lookups (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			request_id TEXT,
			symbol     TEXT NOT NULL,
			source     TEXT,
			price      REAL,
			detailed   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quote_symbol_ts ON quote_lookups(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS chart_requests (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			request_id  TEXT,
			symbol      TEXT NOT NULL,
			timeframe   TEXT,
			points      INTEGER,
			first_price REAL,
			last_price  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chart_symbol_ts ON chart_requests(symbol, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func unixOrNow(t time.Time) int64 {
	if t.IsZero() {
		return time.Now().Unix()
	}
	return t.Unix()
}

func (r *SQLiteRecorder) RecordQuote(ev *QuoteEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO quote_lookups
		(timestamp, request_id, symbol, source, price, detailed)
		VALUES (?, ?, ?, ?, ?, ?)`,
		unixOrNow(ev.At), ev.RequestID, ev.Symbol, ev.Source, ev.Price, ev.Detailed,
	)
	if err != nil {
		return fmt.Errorf("insert quote lookup: %w", err)
	}
	return nil
}

func (r *SQLiteRecorder) RecordChart(ev *ChartEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO chart_requests
		(timestamp, request_id, symbol, timeframe, points, first_price, last_price)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		unixOrNow(ev.At), ev.RequestID, ev.Symbol, ev.Timeframe, ev.Points, ev.FirstPrice, ev.LastPrice,
	)
	if err != nil {
		return fmt.Errorf("insert chart request: %w", err)
	}
	return nil
}

// CountQuotes returns how many lookups were recorded for symbol.
func (r *SQLiteRecorder) CountQuotes(symbol string) (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM quote_lookups WHERE symbol = ?`, symbol).Scan(&n)
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
