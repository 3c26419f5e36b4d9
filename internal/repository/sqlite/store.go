// Package sqlite provides a SQLite-backed trade store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/models"
	"github.com/omarshaarawi/gmsim/internal/simerr"
)

const schema = `
CREATE TABLE IF NOT EXISTS trades (
	id          TEXT PRIMARY KEY,
	session_id  TEXT NOT NULL,
	sport       TEXT NOT NULL,
	team_key    TEXT NOT NULL,
	partner_key TEXT NOT NULL DEFAULT '',
	given       TEXT NOT NULL,
	received    TEXT NOT NULL,
	created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS trades_session_team ON trades (session_id, team_key, created_at);
`

// Store persists trades in SQLite. Asset lists are stored as JSON.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the database at path and creates the schema if needed.
// ":memory:" opens a private in-memory database.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == ":memory:" {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) SaveTrade(ctx context.Context, t models.Trade) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	given, err := json.Marshal(t.Given)
	if err != nil {
		return fmt.Errorf("encode given assets: %w", err)
	}
	received, err := json.Marshal(t.Received)
	if err != nil {
		return fmt.Errorf("encode received assets: %w", err)
	}
	createdAt := t.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT OR REPLACE INTO trades (id, session_id, sport, team_key, partner_key, given, received, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.SessionID, string(t.Sport), t.TeamKey, t.PartnerKey, string(given), string(received), toMillis(createdAt),
	)
	if err != nil {
		return fmt.Errorf("save trade: %w", err)
	}
	return nil
}

func (s *Store) GetTrade(ctx context.Context, id string) (models.Trade, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, session_id, sport, team_key, partner_key, given, received, created_at
		 FROM trades WHERE id = ?`, id)
	t, err := scanTrade(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Trade{}, simerr.Newf(simerr.CodeTradeNotFound, "trade %q not found", id)
	}
	if err != nil {
		return models.Trade{}, fmt.Errorf("get trade: %w", err)
	}
	return t, nil
}

func (s *Store) ListSessionTrades(ctx context.Context, sessionID, teamKey string) ([]models.Trade, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, session_id, sport, team_key, partner_key, given, received, created_at
		 FROM trades WHERE session_id = ? AND team_key = ?
		 ORDER BY created_at, id`, sessionID, teamKey)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	defer rows.Close()

	var out []models.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trades: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(sc scanner) (models.Trade, error) {
	var (
		t         models.Trade
		sport     string
		given     string
		received  string
		createdAt int64
	)
	if err := sc.Scan(&t.ID, &t.SessionID, &sport, &t.TeamKey, &t.PartnerKey, &given, &received, &createdAt); err != nil {
		return models.Trade{}, err
	}
	t.Sport = league.Sport(sport)
	t.CreatedAt = fromMillis(createdAt)
	if err := json.Unmarshal([]byte(given), &t.Given); err != nil {
		return models.Trade{}, fmt.Errorf("decode given assets: %w", err)
	}
	if err := json.Unmarshal([]byte(received), &t.Received); err != nil {
		return models.Trade{}, fmt.Errorf("decode received assets: %w", err)
	}
	return t, nil
}
