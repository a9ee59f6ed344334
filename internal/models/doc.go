// Package models defines domain entities for the postx posting client.
//
// The package contains:
//   - [Platform] : Supported social networks with per-platform posting rules
//   - [Account] : Connection state for a platform, live or cached
//   - [Draft] : A locally composed post with validation against platform limits
//   - [PostRecord] : A publish acknowledged by the backend
//   - [Page] / [Metrics] : Facebook page listings and engagement numbers
//
// Drafts validate character limits (280 for Twitter, 3000 for LinkedIn) and
// the scheduled-post lead time before any network request is made.
package models
