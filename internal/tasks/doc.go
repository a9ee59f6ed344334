// Package tasks orchestrates the client-side workflows over the posting backend with real-time progress reporting.
//
// # Core Operations
//
//  1. [StatusEngine.CheckAll] : Concurrent connection check across platforms
//     - One goroutine per platform, rate limited
//     - A failed check falls back to the cached account and never clears it
//     - An explicit not-connected answer removes the cached entry
//     - Results always come back in display order, failures included
//
//  2. [Composer.Publish] : Validate and publish a draft
//     - Draft validation runs before any network call
//     - Accepted posts are prepended to an in-memory session list and saved to local post history
//     - Backend rejection messages pass through verbatim
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
package tasks
