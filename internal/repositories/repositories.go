// package repositories provides persistence layer implementations for local client state.
//
// The client stores three kinds of state in SQLite: the login session,
// cached platform account payloads, and a history of accepted posts.
package repositories

import (
	"database/sql"
	"errors"
)

// ErrNotFound indicates the requested row does not exist.
var ErrNotFound = errors.New("not found")

// rowExists reports whether a keyed lookup returned a row.
func rowExists(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, err
}
