// Package store persists portfolio holdings and price alerts in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"TrendBot/internal/model"
)

// ErrValidation wraps rejected user input. Callers map it to a user-visible
// message instead of a server error.
var ErrValidation = errors.New("invalid input")

// ErrNotFound reports that the referenced record does not exist.
var ErrNotFound = errors.New("not found")

var validate = validator.New()

// Store is a mutex-guarded SQLite store. SQLite serializes writers anyway;
// the mutex keeps read-modify-write sequences atomic at the application level.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
	mu  sync.Mutex
}

// Open opens (or creates) the database at path and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so API reads do not block scheduled writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db, log: log.With().Str("component", "store").Logger()}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	s.log.Info().Str("path", path).Msg("sqlite store opened")
	return s, nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS holdings (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			coin_id        TEXT NOT NULL,
			amount         REAL NOT NULL,
			purchase_price REAL NOT NULL,
			date_added     INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_holdings_coin ON holdings(coin_id)`,

		`CREATE TABLE IF NOT EXISTS alerts (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			coin_id      TEXT NOT NULL,
			type         TEXT NOT NULL,
			target_price REAL NOT NULL,
			triggered    INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_coin ON alerts(coin_id)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// AddHolding validates and inserts a position, returning it with its assigned
// ID and date.
func (s *Store) AddHolding(h model.Holding) (model.Holding, error) {
	if err := validate.Struct(h); err != nil {
		return model.Holding{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	h.DateAdded = time.Now().UTC().Truncate(time.Second)
	res, err := s.db.Exec(
		`INSERT INTO holdings (coin_id, amount, purchase_price, date_added) VALUES (?,?,?,?)`,
		h.CoinID, h.Amount, h.PurchasePrice, h.DateAdded.Unix(),
	)
	if err != nil {
		return model.Holding{}, fmt.Errorf("insert holding: %w", err)
	}
	h.ID, err = res.LastInsertId()
	if err != nil {
		return model.Holding{}, fmt.Errorf("insert holding: %w", err)
	}
	return h, nil
}

// Holdings lists all positions, oldest first.
func (s *Store) Holdings() ([]model.Holding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, coin_id, amount, purchase_price, date_added FROM holdings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query holdings: %w", err)
	}
	defer rows.Close()

	var holdings []model.Holding
	for rows.Next() {
		var h model.Holding
		var added int64
		if err := rows.Scan(&h.ID, &h.CoinID, &h.Amount, &h.PurchasePrice, &added); err != nil {
			return nil, fmt.Errorf("scan holding: %w", err)
		}
		h.DateAdded = time.Unix(added, 0).UTC()
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

// DeleteHolding removes one position.
func (s *Store) DeleteHolding(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM holdings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete holding: %w", err)
	}
	return requireAffected(res)
}

// AddAlert validates and inserts an alert, returning it with its assigned ID.
func (s *Store) AddAlert(a model.Alert) (model.Alert, error) {
	if err := validate.Struct(a); err != nil {
		return model.Alert{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	a.Triggered = false
	res, err := s.db.Exec(
		`INSERT INTO alerts (coin_id, type, target_price, triggered) VALUES (?,?,?,0)`,
		a.CoinID, a.Type, a.TargetPrice,
	)
	if err != nil {
		return model.Alert{}, fmt.Errorf("insert alert: %w", err)
	}
	a.ID, err = res.LastInsertId()
	if err != nil {
		return model.Alert{}, fmt.Errorf("insert alert: %w", err)
	}
	return a, nil
}

// Alerts lists every alert, triggered ones included.
func (s *Store) Alerts() ([]model.Alert, error) {
	return s.queryAlerts(`SELECT id, coin_id, type, target_price, triggered FROM alerts ORDER BY id`)
}

// ActiveAlerts lists alerts that have not fired yet.
func (s *Store) ActiveAlerts() ([]model.Alert, error) {
	return s.queryAlerts(`SELECT id, coin_id, type, target_price, triggered FROM alerts WHERE triggered = 0 ORDER BY id`)
}

func (s *Store) queryAlerts(query string) ([]model.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []model.Alert
	for rows.Next() {
		var a model.Alert
		if err := rows.Scan(&a.ID, &a.CoinID, &a.Type, &a.TargetPrice, &a.Triggered); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// MarkTriggered flips an alert to triggered. Alerts never untrigger.
func (s *Store) MarkTriggered(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE alerts SET triggered = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark alert triggered: %w", err)
	}
	return requireAffected(res)
}

// DeleteAlert removes one alert.
func (s *Store) DeleteAlert(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM alerts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete alert: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.log.Info().Msg("closing sqlite store")
	return s.db.Close()
}
