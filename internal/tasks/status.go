package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/poojitha20043/postx/internal/models"
	"github.com/poojitha20043/postx/internal/repositories"
	"github.com/poojitha20043/postx/internal/services"
	"github.com/poojitha20043/postx/internal/shared"
)

// ConnState describes how a platform's connection state was resolved.
type ConnState string

const (
	// StateConnected means the backend confirmed the connection just now.
	StateConnected ConnState = "connected"
	// StateCached means the live check failed and cached state is shown.
	StateCached ConnState = "connected (cached)"
	// StateDisconnected means the backend said not connected, or nothing is known.
	StateDisconnected ConnState = "not connected"
)

// PlatformStatus is the resolved state of one platform.
type PlatformStatus struct {
	Platform models.Platform
	State    ConnState
	Account  *models.Account
	Reason   string // degradation reason when the live check failed
}

// Connected reports whether the platform renders as connected, live or cached.
func (s PlatformStatus) Connected() bool {
	return s.State == StateConnected || s.State == StateCached
}

// StatusEngine resolves platform connection state, falling back to the
// local cache when the backend cannot answer.
type StatusEngine struct {
	registry *services.Registry
	cache    *repositories.AccountCacheRepository
	limiter  *rate.Limiter
	logger   *log.Logger
}

// StatusEngineOpts configures a StatusEngine.
type StatusEngineOpts struct {
	RateLimit float64 // checks per second across all platforms (default 5)
	Logger    *log.Logger
}

// NewStatusEngine creates a StatusEngine over the connector registry and cache.
func NewStatusEngine(registry *services.Registry, cache *repositories.AccountCacheRepository, opts StatusEngineOpts) *StatusEngine {
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return &StatusEngine{
		registry: registry,
		cache:    cache,
		limiter:  rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
		logger:   opts.Logger,
	}
}

// Resolve runs one live check and reconciles the cache.
//
// A successful connected answer overwrites the cache. An explicit
// not-connected answer removes the cached entry. Any failure to get an
// answer falls back to the cache and never clears it. Resolve does not
// return an error; a failed check with no cache reads as disconnected.
func (e *StatusEngine) Resolve(ctx context.Context, connector services.Connector, userID string) PlatformStatus {
	platform := connector.Platform()

	account, connected, err := connector.Check(ctx, userID)
	if err == nil {
		if connected && account != nil {
			if cacheErr := e.cache.Put(account); cacheErr != nil {
				e.logger.Warnf("failed to cache %s account: %v", platform, cacheErr)
			}
			return PlatformStatus{Platform: platform, State: StateConnected, Account: account}
		}

		if cacheErr := e.cache.Remove(platform); cacheErr != nil {
			e.logger.Warnf("failed to drop cached %s account: %v", platform, cacheErr)
		}
		return PlatformStatus{Platform: platform, State: StateDisconnected}
	}

	e.logger.Debugf("%s check failed, trying cache: %v", platform, err)

	cached, cacheErr := e.cache.Get(platform)
	if cacheErr == nil {
		cached.Stale = true
		return PlatformStatus{
			Platform: platform,
			State:    StateCached,
			Account:  cached,
			Reason:   err.Error(),
		}
	}
	if !errors.Is(cacheErr, repositories.ErrNotFound) {
		e.logger.Warnf("failed to read cached %s account: %v", platform, cacheErr)
	}

	return PlatformStatus{Platform: platform, State: StateDisconnected, Reason: err.Error()}
}

// Forget drops the cached account for a platform. Callers that disconnect
// an account use it so a later degraded check cannot revive the old entry.
func (e *StatusEngine) Forget(platform models.Platform) error {
	return e.cache.Remove(platform)
}

// CheckAll resolves every registered platform concurrently.
//
// An empty userID is refused before any network traffic. Each platform is
// checked in its own goroutine so one slow or failing backend route never
// hides the others; results come back in registry display order.
func (e *StatusEngine) CheckAll(ctx context.Context, userID string, prog chan<- ProgressUpdate) ([]PlatformStatus, error) {
	if userID == "" {
		return nil, fmt.Errorf("no user id available: %w", shared.ErrNotAuthenticated)
	}

	connectors := e.registry.All()
	statuses := make([]PlatformStatus, len(connectors))

	var wg sync.WaitGroup
	for i, connector := range connectors {
		wg.Add(1)
		go func(i int, connector services.Connector) {
			defer wg.Done()

			sendProgress(prog, checkingUpdate(i+1, len(connectors), connector.Platform()))

			if err := e.limiter.Wait(ctx); err != nil {
				statuses[i] = PlatformStatus{
					Platform: connector.Platform(),
					State:    StateDisconnected,
					Reason:   err.Error(),
				}
				return
			}

			statuses[i] = e.Resolve(ctx, connector, userID)
			sendProgress(prog, checkedUpdate(i+1, len(connectors), statuses[i]))
		}(i, connector)
	}
	wg.Wait()

	return statuses, nil
}

func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
