package server

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/poojitha20043/postx/internal/models"
	"github.com/poojitha20043/postx/internal/shared"
)

func TestBasicRouter(t *testing.T) {
	t.Run("Handle Filters Method", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "pong")
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
			t.Errorf("GET /ping = %d %q", rec.Code, rec.Body.String())
		}

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ping", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("POST /ping = %d, want 405", rec.Code)
		}
	})

	t.Run("Middleware Order", func(t *testing.T) {
		var calls []string
		mw := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					calls = append(calls, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewBasicRouter()
		router.Use(mw("first"), mw("second"))
		router.Handle(http.MethodGet, "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
			t.Errorf("middleware call order = %v", calls)
		}
	})
}

func TestCallbackHandler(t *testing.T) {
	t.Run("Successful Twitter Callback", func(t *testing.T) {
		handler := NewCallbackHandler(models.Twitter)
		router := NewBasicRouter()
		router.Handler(handler)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?twitter=connected&username=jack", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Connected") {
			t.Error("expected success page")
		}

		result := <-handler.Result()
		if result.Error() != nil {
			t.Fatalf("unexpected error: %v", result.Error())
		}
		if result.Account.Username != "jack" {
			t.Errorf("username = %q, want jack", result.Account.Username)
		}
	})

	t.Run("Error Callback", func(t *testing.T) {
		handler := NewCallbackHandler(models.LinkedIn)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?error=denied", nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}

		result := <-handler.Result()
		if !errors.Is(result.Error(), shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", result.Error())
		}
	})

	t.Run("Duplicate Hit Rejected", func(t *testing.T) {
		handler := NewCallbackHandler(models.Twitter)

		first := httptest.NewRecorder()
		handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/callback?twitter=connected&username=jack", nil))
		if first.Code != http.StatusOK {
			t.Fatalf("first hit = %d, want 200", first.Code)
		}

		second := httptest.NewRecorder()
		handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/callback?twitter=connected&username=mallory", nil))
		if second.Code != http.StatusBadRequest {
			t.Errorf("second hit = %d, want 400", second.Code)
		}

		result := <-handler.Result()
		if result.Account.Username != "jack" {
			t.Errorf("result should come from the first hit, got %q", result.Account.Username)
		}
	})

	t.Run("Result Channel Closes", func(t *testing.T) {
		handler := NewCallbackHandler(models.Facebook)
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/callback?connected=true&name=My+Biz", nil))

		<-handler.Result()
		if _, open := <-handler.Result(); open {
			t.Error("result channel should be closed after delivery")
		}
	})
}
