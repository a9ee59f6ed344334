// Package services implements the typed client for the posting backend and the [Connector] interface for each social platform.
//
// # Connector Interface
//
// All platforms implement a common abstraction so status checks, OAuth
// entry points, disconnects, and publishing work uniformly.
//
// # Endpoint Families
//
// The backend exposes two route families:
//   - Twitter and LinkedIn: /auth/<platform> for OAuth plus dedicated
//     /api/<platform>/check, /api/<platform>/post, /api/<platform>/disconnect routes.
//   - Facebook, Instagram, YouTube: /social routes with a shared aggregate
//     GET /social/:userId connection listing and multipart publish
//     endpoints for Facebook pages and Instagram.
//
// YouTube is connect-only; its Publish returns [shared.ErrNotImplemented].
//
// # Callback Parsing
//
// After the backend finishes an OAuth round trip it redirects with a
// per-platform query schema. [ParseCallback] validates the schema and
// synthesizes the connected account locally, no follow-up request is made.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrAPIRequest] : transport failure or undecodable response
//   - [shared.ErrBackendRejected] : backend answered success=false; its own
//     message is quoted verbatim when present
//   - [shared.ErrInvalidInput] : draft rejected before any network call
package services
