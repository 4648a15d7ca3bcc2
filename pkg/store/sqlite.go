package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"tableflip.dev/wins/pkg/daykey"
	"tableflip.dev/wins/pkg/journal"
)

const sqliteFile = "wins.sqlite"

// SQLiteStore keeps journals and items in basePath/wins.sqlite.
type SQLiteStore struct {
	db       *sql.DB
	basePath string
}

// OpenSQLite opens (creating if needed) the database under basePath.
func OpenSQLite(basePath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", filepath.Join(basePath, sqliteFile))
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	// A single connection serializes writers, which SQLite requires anyway.
	db.SetMaxOpenConns(1)
	s := &SQLiteStore{db: db, basePath: basePath}
	if err := s.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) ensureSchema(ctx context.Context) error {
	ddl := []string{`
CREATE TABLE IF NOT EXISTS journals (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  day TEXT NOT NULL,
  rating INTEGER NOT NULL DEFAULT 0,
  body TEXT NOT NULL DEFAULT '',
  wins TEXT NOT NULL DEFAULT '[]'
);`,
		`CREATE INDEX IF NOT EXISTS journals_day ON journals(day);`, `
CREATE TABLE IF NOT EXISTS items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  active INTEGER NOT NULL DEFAULT 1,
  sort_order INTEGER NOT NULL DEFAULT 0
);`,
	}
	for _, stmt := range ddl {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store: create tables: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) JournalByDay(ctx context.Context, day daykey.Key) (*journal.Record, error) {
	const q = `SELECT id, day, rating, body, wins FROM journals WHERE day = ? ORDER BY id DESC LIMIT 1`
	r, err := scanRecord(s.db.QueryRowContext(ctx, q, string(day)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: journal %s: %w", day, err)
	}
	return &r, nil
}

func (s *SQLiteStore) JournalsInRange(ctx context.Context, start, end time.Time, order SortOrder, limit int) ([]journal.Record, error) {
	// The key bounds over-select by at most a day; inRange applies the exact bounds.
	from := daykey.FromTime(start)
	to := daykey.FromTime(end)
	dir := "ASC"
	if order == Descending {
		dir = "DESC"
	}
	q := fmt.Sprintf(`SELECT id, day, rating, body, wins FROM journals WHERE day >= ? AND day <= ? ORDER BY day %s, id DESC`, dir)
	rows, err := s.db.QueryContext(ctx, q, string(from), string(to))
	if err != nil {
		return nil, fmt.Errorf("store: journals: %w: %v", journal.ErrTransport, err)
	}
	defer rows.Close()

	out := make([]journal.Record, 0)
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("store: journals: %w", err)
		}
		if !inRange(r.Day, start, end) {
			continue
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: journals: %w: %v", journal.ErrTransport, err)
	}
	return limitRecords(out, limit), nil
}

func (s *SQLiteStore) Items(ctx context.Context, activeOnly bool, order SortOrder) ([]journal.Item, error) {
	q := `SELECT id, name, description, active, sort_order FROM items`
	if activeOnly {
		q += ` WHERE active = 1`
	}
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("store: items: %w: %v", journal.ErrTransport, err)
	}
	defer rows.Close()

	out := make([]journal.Item, 0)
	for rows.Next() {
		var it journal.Item
		var active int
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &active, &it.Order); err != nil {
			return nil, fmt.Errorf("store: items: %w: %v", journal.ErrParse, err)
		}
		it.Active = active != 0
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: items: %w: %v", journal.ErrTransport, err)
	}
	sortItems(out, order)
	return out, nil
}

func (s *SQLiteStore) SaveJournal(ctx context.Context, r journal.Record, update bool) (journal.Record, error) {
	if err := validateSave(r, update); err != nil {
		return journal.Record{}, err
	}
	r = r.Clone()
	wins, err := json.Marshal(r.Wins)
	if err != nil {
		return journal.Record{}, fmt.Errorf("store: encode wins: %w: %v", journal.ErrParse, err)
	}
	if update {
		const stmt = `UPDATE journals SET day = ?, rating = ?, body = ?, wins = ? WHERE id = ?`
		res, err := s.db.ExecContext(ctx, stmt, string(r.Day), r.Rating, r.Text, string(wins), r.ID)
		if err != nil {
			return journal.Record{}, fmt.Errorf("store: update journal %d: %w: %v", r.ID, journal.ErrTransport, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return journal.Record{}, fmt.Errorf("store: update journal %d: %w: no such record", r.ID, journal.ErrTransport)
		}
		return r, nil
	}
	const stmt = `INSERT INTO journals (day, rating, body, wins) VALUES (?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, stmt, string(r.Day), r.Rating, r.Text, string(wins))
	if err != nil {
		return journal.Record{}, fmt.Errorf("store: insert journal: %w: %v", journal.ErrTransport, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return journal.Record{}, fmt.Errorf("store: insert journal: %w: %v", journal.ErrTransport, err)
	}
	r.ID = id
	return r, nil
}

func (s *SQLiteStore) SaveItem(ctx context.Context, it journal.Item) (journal.Item, error) {
	it.Name = strings.TrimSpace(it.Name)
	if it.Name == "" {
		return journal.Item{}, fmt.Errorf("%w: item name required", journal.ErrValidation)
	}
	active := 0
	if it.Active {
		active = 1
	}
	if it.ID != 0 {
		const stmt = `
INSERT INTO items (id, name, description, active, sort_order) VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  description=excluded.description,
  active=excluded.active,
  sort_order=excluded.sort_order;`
		if _, err := s.db.ExecContext(ctx, stmt, it.ID, it.Name, it.Description, active, it.Order); err != nil {
			return journal.Item{}, fmt.Errorf("store: upsert item %d: %w: %v", it.ID, journal.ErrTransport, err)
		}
		return it, nil
	}
	const stmt = `INSERT INTO items (name, description, active, sort_order) VALUES (?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, stmt, it.Name, it.Description, active, it.Order)
	if err != nil {
		return journal.Item{}, fmt.Errorf("store: insert item: %w: %v", journal.ErrTransport, err)
	}
	if it.ID, err = res.LastInsertId(); err != nil {
		return journal.Item{}, fmt.Errorf("store: insert item: %w: %v", journal.ErrTransport, err)
	}
	return it, nil
}

// Watch reports every write to the database directory as EventInvalidated.
func (s *SQLiteStore) Watch(ctx context.Context) (<-chan Event, error) {
	return watchTree(ctx, s.basePath, func(string) Event {
		return Event{Type: EventInvalidated}
	})
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (journal.Record, error) {
	var (
		r    journal.Record
		day  string
		wins string
	)
	if err := row.Scan(&r.ID, &day, &r.Rating, &r.Text, &wins); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, err
		}
		return r, fmt.Errorf("%w: %v", journal.ErrTransport, err)
	}
	r.Day = daykey.Key(day)
	if wins != "" && wins != "null" {
		if err := json.Unmarshal([]byte(wins), &r.Wins); err != nil {
			return r, fmt.Errorf("%w: journal %d wins: %v", journal.ErrParse, r.ID, err)
		}
	}
	return r, nil
}
