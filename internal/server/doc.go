// Package server provides HTTP routing, middleware, and the loopback callback listener for platform connect flows.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Callback Handler
//
// [CallbackHandler] receives the redirect the backend issues after it
// completes a platform's OAuth round trip. The query string carries a
// per-platform schema which is validated by services.ParseCallback; the
// connected account is synthesized locally and sent through a channel.
//
// It only processes one callback, duplicate hits are rejected.
//
// # Usage
//
// When the user runs a connect command, a temporary HTTP server starts on
// the configured loopback address, the system browser opens the backend's
// OAuth entry point, and the server shuts down after the callback arrives
// or the wait times out.
package server
