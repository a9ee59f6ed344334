// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync/atomic"
	"testing"

	"github.com/poojitha20043/postx/internal/models"
)

// MockConnector is a configurable test double for [services.Connector]
type MockConnector struct {
	PlatformValue models.Platform
	Account       *models.Account
	Connected     bool
	CheckErr      error
	DisconnectErr error
	Record        *models.PostRecord
	PublishErr    error
	CheckCalls    int32
	PublishCalls  int32
}

func (m *MockConnector) Platform() models.Platform {
	return m.PlatformValue
}

func (m *MockConnector) AuthURL(userID string) string {
	return "http://backend.test/auth/" + string(m.PlatformValue) + "?userId=" + userID
}

func (m *MockConnector) Check(ctx context.Context, userID string) (*models.Account, bool, error) {
	atomic.AddInt32(&m.CheckCalls, 1)
	if m.CheckErr != nil {
		return nil, false, m.CheckErr
	}
	return m.Account, m.Connected, nil
}

func (m *MockConnector) Disconnect(ctx context.Context, userID string) error {
	return m.DisconnectErr
}

func (m *MockConnector) Publish(ctx context.Context, userID string, draft *models.Draft) (*models.PostRecord, error) {
	atomic.AddInt32(&m.PublishCalls, 1)
	if m.PublishErr != nil {
		return nil, m.PublishErr
	}
	return m.Record, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// CountingRoundTripper records how many requests were attempted and fails
// them all. Used to assert that an operation made zero network calls.
type CountingRoundTripper struct {
	Calls int32
}

func (c *CountingRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	atomic.AddInt32(&c.Calls, 1)
	return nil, errors.New("unexpected network call")
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
