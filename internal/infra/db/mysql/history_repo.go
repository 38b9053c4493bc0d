package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/bryanwahyu/checkops/internal/domain/screening"
)

// HistoryRepository stores console queries in MySQL.
//
//	CREATE TABLE console_history (
//	  history_id    VARCHAR(64) PRIMARY KEY,
//	  user_id       VARCHAR(128) NOT NULL,
//	  search_query  TEXT NOT NULL,
//	  intent        VARCHAR(64) NOT NULL,
//	  entities_json JSON NOT NULL,
//	  created_at    DATETIME(6) NOT NULL,
//	  KEY idx_history_user (user_id, created_at)
//	);
type HistoryRepository struct {
	db *sql.DB
}

var _ screening.HistoryRepository = (*HistoryRepository)(nil)

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Save inserts an entry; an existing id is overwritten.
func (r *HistoryRepository) Save(ctx context.Context, e *screening.HistoryEntry) error {
	const q = `
INSERT INTO console_history
  (history_id, user_id, search_query, intent, entities_json, created_at)
VALUES (?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  user_id=VALUES(user_id), search_query=VALUES(search_query), intent=VALUES(intent), entities_json=VALUES(entities_json);
`
	createdAt := e.Timestamp
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, q,
		e.HistoryID,
		stringOrDash(e.UserID),
		e.SearchQuery,
		stringOrDash(e.Intent),
		entitiesJSON(e.Entities),
		createdAt,
	)
	return err
}

// ListByUser returns entries oldest first, matching insertion order.
func (r *HistoryRepository) ListByUser(ctx context.Context, userID string) ([]screening.HistoryEntry, error) {
	const q = `
SELECT history_id, user_id, search_query, intent, entities_json, created_at
FROM console_history
WHERE user_id=?
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
			e        screening.HistoryEntry
			entities string
		)
		if err := rows.Scan(&e.HistoryID, &e.UserID, &e.SearchQuery, &e.Intent, &entities, &e.Timestamp); err != nil {
			return nil, err
		}
		e.Entities = parseEntities(entities)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *HistoryRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.db.PingContext(ctx)
}
