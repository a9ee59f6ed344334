package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/poojitha20043/postx/internal/models"
)

// AccountCacheRepository stores the last known [models.Account] per platform.
//
// The cache backs status display when the backend is unreachable. Entries
// are replaced whenever a live check succeeds and removed when the backend
// explicitly reports the platform as not connected.
type AccountCacheRepository struct {
	db *sql.DB
}

// NewAccountCacheRepository creates a new [AccountCacheRepository] with the given database connection
func NewAccountCacheRepository(db *sql.DB) *AccountCacheRepository {
	return &AccountCacheRepository{db: db}
}

// Get returns the cached account for a platform, or [ErrNotFound].
func (r *AccountCacheRepository) Get(platform models.Platform) (*models.Account, error) {
	var (
		payload  string
		cachedAt time.Time
	)

	err := r.db.QueryRow("SELECT payload, cached_at FROM platform_accounts WHERE platform = ?", platform.String()).
		Scan(&payload, &cachedAt)
	ok, err := rowExists(err)
	if err != nil {
		return nil, fmt.Errorf("failed to query account cache: %w", err)
	}
	if !ok {
		return nil, ErrNotFound
	}

	var account models.Account
	if err := json.Unmarshal([]byte(payload), &account); err != nil {
		return nil, fmt.Errorf("failed to decode cached account for %s: %w", platform, err)
	}

	account.Platform = platform
	account.CachedAt = cachedAt
	return &account, nil
}

// Put stores or replaces the cached account for its platform.
func (r *AccountCacheRepository) Put(account *models.Account) error {
	payload, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to encode account for %s: %w", account.Platform, err)
	}

	query := `
		INSERT INTO platform_accounts (platform, payload, cached_at) VALUES (?, ?, ?)
		ON CONFLICT(platform) DO UPDATE SET payload = excluded.payload, cached_at = excluded.cached_at
	`
	if _, err := r.db.Exec(query, account.Platform.String(), string(payload), time.Now()); err != nil {
		return fmt.Errorf("failed to store cached account: %w", err)
	}
	return nil
}

// Remove deletes the cached account for a platform. Missing rows are not an error.
func (r *AccountCacheRepository) Remove(platform models.Platform) error {
	if _, err := r.db.Exec("DELETE FROM platform_accounts WHERE platform = ?", platform.String()); err != nil {
		return fmt.Errorf("failed to remove cached account: %w", err)
	}
	return nil
}

// List returns all cached accounts keyed by platform.
func (r *AccountCacheRepository) List() (map[models.Platform]*models.Account, error) {
	rows, err := r.db.Query("SELECT platform FROM platform_accounts")
	if err != nil {
		return nil, fmt.Errorf("failed to list account cache: %w", err)
	}
	defer rows.Close()

	var platforms []models.Platform
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan cached platform: %w", err)
		}
		platforms = append(platforms, models.Platform(name))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate account cache: %w", err)
	}

	accounts := make(map[models.Platform]*models.Account, len(platforms))
	for _, platform := range platforms {
		account, err := r.Get(platform)
		if err != nil {
			return nil, err
		}
		accounts[platform] = account
	}
	return accounts, nil
}
