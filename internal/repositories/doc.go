// Package repositories implements SQLite-backed storage for client state.
//
//   - [SessionRepository] : the login token, user id, and email
//   - [AccountCacheRepository] : last known connection state per platform
//   - [PostHistoryRepository] : posts the backend has accepted
//
// All repositories operate on the schema created by shared.RunMigrations.
package repositories
