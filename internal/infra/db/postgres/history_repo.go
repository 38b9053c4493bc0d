package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/bryanwahyu/checkops/internal/domain/screening"
)

// HistoryRepository stores console queries in Postgres.
//
//	CREATE TABLE console_history (
//	  history_id    TEXT PRIMARY KEY,
//	  user_id       TEXT NOT NULL,
//	  search_query  TEXT NOT NULL,
//	  intent        TEXT NOT NULL,
//	  entities_json JSONB NOT NULL DEFAULT '{}',
//	  created_at    TIMESTAMPTZ NOT NULL
//	);
type HistoryRepository struct {
	db *sql.DB
}

var _ screening.HistoryRepository = (*HistoryRepository)(nil)

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Save(ctx context.Context, e *screening.HistoryEntry) error {
	const q = `
INSERT INTO console_history
  (history_id, user_id, search_query, intent, entities_json, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (history_id) DO UPDATE SET
  user_id=EXCLUDED.user_id,
  search_query=EXCLUDED.search_query,
  intent=EXCLUDED.intent,
  entities_json=EXCLUDED.entities_json;
`
	entities := "{}"
	if len(e.Entities) > 0 {
		b, err := json.Marshal(e.Entities)
		if err != nil {
			return err
		}
		entities = string(b)
	}
	createdAt := e.Timestamp
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, q, e.HistoryID, e.UserID, e.SearchQuery, e.Intent, entities, createdAt)
	return err
}

func (r *HistoryRepository) ListByUser(ctx context.Context, userID string) ([]screening.HistoryEntry, error) {
	const q = `
SELECT history_id, user_id, search_query, intent, entities_json, created_at
FROM console_history
WHERE user_id=$1
ORDER BY created_at ASC, history_id ASC;
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []screening.HistoryEntry{}
	for rows.Next() {
		var (
			e   screening.HistoryEntry
			raw []byte
		)
		if err := rows.Scan(&e.HistoryID, &e.UserID, &e.SearchQuery, &e.Intent, &raw, &e.Timestamp); err != nil {
			return nil, err
		}
		e.Entities = map[string]any{}
		if len(strings.TrimSpace(string(raw))) > 0 {
			_ = json.Unmarshal(raw, &e.Entities)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *HistoryRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.db.PingContext(ctx)
}
