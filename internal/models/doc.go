// Package models defines the client-side projections of server data: movie
// summaries and details, the session user, the saved relation body, and the
// ephemeral filter query.
//
// Nothing here is authoritative. Every struct mirrors a shape owned by the
// remote API; the only record the client durably owns is the session user,
// persisted by the session package.
package models
