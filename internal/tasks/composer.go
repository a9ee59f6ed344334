package tasks

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/poojitha20043/postx/internal/models"
	"github.com/poojitha20043/postx/internal/repositories"
	"github.com/poojitha20043/postx/internal/services"
	"github.com/poojitha20043/postx/internal/shared"
)

// Composer validates drafts and publishes them through the platform
// connectors, keeping a most-recent-first list of accepted posts.
type Composer struct {
	registry *services.Registry
	history  *repositories.PostHistoryRepository
	clock    shared.Clock
	logger   *log.Logger

	mu     sync.Mutex
	recent []models.PostRecord
}

// NewComposer creates a Composer. The history repository may be nil, in
// which case accepted posts are only kept in memory.
func NewComposer(registry *services.Registry, history *repositories.PostHistoryRepository, clock shared.Clock, logger *log.Logger) *Composer {
	if clock == nil {
		clock = shared.NewClock()
	}
	if logger == nil {
		logger = log.Default()
	}

	return &Composer{
		registry: registry,
		history:  history,
		clock:    clock,
		logger:   logger,
	}
}

// Publish validates the draft, sends it, and records the accepted post.
//
// Validation failures return before any network call. On backend failure
// the connector's error carries the backend message verbatim.
func (c *Composer) Publish(ctx context.Context, userID string, draft *models.Draft, prog chan<- ProgressUpdate) (*models.PostRecord, error) {
	if err := draft.Validate(c.clock); err != nil {
		return nil, err
	}

	connector, err := c.registry.Get(draft.Platform)
	if err != nil {
		return nil, err
	}

	sendProgress(prog, publishUpdate(draft.Platform, "Publishing to "+draft.Platform.DisplayName()+"..."))

	record, err := connector.Publish(ctx, userID, draft)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.recent = append([]models.PostRecord{*record}, c.recent...)
	c.mu.Unlock()

	if c.history != nil {
		if err := c.history.Create(record); err != nil {
			c.logger.Warnf("failed to record post history: %v", err)
		}
	}

	sendProgress(prog, publishUpdate(draft.Platform, "Post accepted"))
	return record, nil
}

// Recent returns the accepted posts from this session, newest first.
func (c *Composer) Recent() []models.PostRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.PostRecord, len(c.recent))
	copy(out, c.recent)
	return out
}
