package repositories

import (
	"database/sql"
	"fmt"

	"github.com/poojitha20043/postx/internal/models"
)

// PostHistoryRepository records posts accepted by the backend.
type PostHistoryRepository struct {
	db *sql.DB
}

// NewPostHistoryRepository creates a new [PostHistoryRepository] with the given database connection
func NewPostHistoryRepository(db *sql.DB) *PostHistoryRepository {
	return &PostHistoryRepository{db: db}
}

// Create inserts an accepted post.
func (r *PostHistoryRepository) Create(record *models.PostRecord) error {
	query := `
		INSERT INTO post_history (id, platform, content, scheduled_for, posted_at) VALUES (?, ?, ?, ?, ?)
	`

	var scheduled sql.NullString
	if record.ScheduledFor != "" {
		scheduled = sql.NullString{String: record.ScheduledFor, Valid: true}
	}

	_, err := r.db.Exec(query, record.ID, record.Platform.String(), record.Content, scheduled, record.PostedAt)
	if err != nil {
		return fmt.Errorf("failed to insert post record: %w", err)
	}
	return nil
}

// List returns post records, most recent first, optionally filtered by platform.
// A limit of 0 returns all records.
func (r *PostHistoryRepository) List(platform models.Platform, limit int) ([]models.PostRecord, error) {
	query := "SELECT id, platform, content, scheduled_for, posted_at FROM post_history"
	var args []any

	if platform != "" {
		query += " WHERE platform = ?"
		args = append(args, platform.String())
	}
	query += " ORDER BY posted_at DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query post history: %w", err)
	}
	defer rows.Close()

	var records []models.PostRecord
	for rows.Next() {
		var (
			record    models.PostRecord
			name      string
			scheduled sql.NullString
		)
		if err := rows.Scan(&record.ID, &name, &record.Content, &scheduled, &record.PostedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post record: %w", err)
		}
		record.Platform = models.Platform(name)
		if scheduled.Valid {
			record.ScheduledFor = scheduled.String
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate post history: %w", err)
	}

	return records, nil
}
