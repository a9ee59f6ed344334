package server

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/poojitha20043/postx/internal/models"
	"github.com/poojitha20043/postx/internal/services"
)

// CallbackResult contains the outcome of a platform connect flow.
type CallbackResult struct {
	Account *models.Account
	err     error
}

func (c *CallbackResult) Error() error {
	return c.err
}

// CallbackHandler receives the backend's redirect after it finishes the
// OAuth round trip with a platform. Implements the Handler interface for
// registration with a Router.
//
// The handler is one-shot: the first hit is parsed and delivered, any
// later hit is rejected.
type CallbackHandler struct {
	platform    models.Platform
	resultChan  chan CallbackResult
	once        sync.Once
	callbackHit bool
	mu          sync.Mutex
}

// NewCallbackHandler creates a callback handler for one platform connect flow.
func NewCallbackHandler(platform models.Platform) *CallbackHandler {
	return &CallbackHandler{
		platform:   platform,
		resultChan: make(chan CallbackResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *CallbackHandler) Routes() []string {
	return []string{"/callback"}
}

// ServeHTTP parses the per-platform callback query and sends the result
// through the result channel.
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	account, err := services.ParseCallback(h.platform, r.URL.Query())
	if err != nil {
		h.Send(CallbackResult{err: err})
		http.Error(w, "Connection failed", http.StatusBadRequest)
		return
	}

	h.Send(CallbackResult{Account: account})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `
<!DOCTYPE html>
<html>
<head>
    <title>Connection Successful</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #2b6cb0; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>✓ %s Connected</h1>
        <p>You can close this window and return to the terminal.</p>
    </div>
</body>
</html>
`, h.platform.DisplayName())
}

// Send sends the callback result through the channel (only once).
func (h *CallbackHandler) Send(result CallbackResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the result channel for receiving flow completion.
//
// Channel will receive exactly one result and then be closed.
func (h *CallbackHandler) Result() <-chan CallbackResult {
	return h.resultChan
}
