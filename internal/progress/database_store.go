package progress

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// progressRow is a card_progress row. Columns are nullable so hand edited rows still load.
type progressRow struct {
	CardID         int             `db:"card_id"`
	Weight         sql.NullFloat64 `db:"weight"`
	CorrectCount   sql.NullInt64   `db:"correct_count"`
	NextReviewAt   sql.NullInt64   `db:"next_review_at"`
	LastReviewedAt sql.NullInt64   `db:"last_reviewed_at"`
}

func (row progressRow) toRecord() (Record, bool) {
	var raw rawRecord
	if row.Weight.Valid {
		raw.Weight = &row.Weight.Float64
	}
	if row.CorrectCount.Valid {
		count := int(row.CorrectCount.Int64)
		raw.CorrectCount = &count
	}
	if row.NextReviewAt.Valid {
		raw.NextReviewAt = &row.NextReviewAt.Int64
	}
	if row.LastReviewedAt.Valid {
		raw.LastReviewedAt = &row.LastReviewedAt.Int64
	}
	return raw.toRecord()
}

const (
	selectProgressQuery = "SELECT card_id, weight, correct_count, next_review_at, last_reviewed_at FROM card_progress ORDER BY card_id"

	upsertProgressMySQL = `INSERT INTO card_progress (card_id, weight, correct_count, next_review_at, last_reviewed_at)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE weight = VALUES(weight), correct_count = VALUES(correct_count),
		next_review_at = VALUES(next_review_at), last_reviewed_at = VALUES(last_reviewed_at)`

	upsertProgressSQLite = `INSERT INTO card_progress (card_id, weight, correct_count, next_review_at, last_reviewed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(card_id) DO UPDATE SET weight = excluded.weight, correct_count = excluded.correct_count,
		next_review_at = excluded.next_review_at, last_reviewed_at = excluded.last_reviewed_at`
)

// DatabaseStore keeps progress in the card_progress table of MySQL or SQLite.
type DatabaseStore struct {
	db *sqlx.DB
}

// NewDatabaseStore creates a DatabaseStore. The schema is expected to be migrated already.
func NewDatabaseStore(db *sqlx.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// Load implements Store.
func (s *DatabaseStore) Load(ctx context.Context) (Blob, error) {
	var rows []progressRow
	if err := s.db.SelectContext(ctx, &rows, selectProgressQuery); err != nil {
		return nil, fmt.Errorf("db.SelectContext(card_progress) > %w", err)
	}

	blob := make(Blob, len(rows))
	for _, row := range rows {
		record, ok := row.toRecord()
		if !ok {
			slog.Default().Warn("skip malformed progress row", "card_id", row.CardID)
			continue
		}
		blob[row.CardID] = record
	}
	return blob, nil
}

// Save implements Store.
func (s *DatabaseStore) Save(ctx context.Context, cardID int, record Record) error {
	query := upsertProgressMySQL
	if s.db.DriverName() == "sqlite" {
		query = upsertProgressSQLite
	}

	var lastReviewedAt sql.NullInt64
	if record.LastReviewedAt != nil {
		lastReviewedAt = sql.NullInt64{Int64: *record.LastReviewedAt, Valid: true}
	}
	if _, err := s.db.ExecContext(ctx, query,
		cardID, record.Weight, record.CorrectCount, record.NextReviewAt, lastReviewedAt,
	); err != nil {
		return fmt.Errorf("db.ExecContext(upsert card_progress %d) > %w", cardID, err)
	}
	return nil
}
