// Package services implements HTTP clients for the remote movie API.
//
// # Catalog and Account Interfaces
//
// [CatalogService] covers the read surface (movie collection, movie detail,
// saved list) plus the saved-relation mutations; [AccountService] covers
// login and signup. [MovieService] implements both over a shared doRequest
// helper.
//
// # Raw API Access
//
// [APIService] issues uninterpreted GET/POST/DELETE requests for the `api`
// CLI commands, returning status, headers and (when parseable) decoded JSON.
//
// # Failure Policy
//
// One attempt per call, no retry, no timeout, no caching. Transport errors,
// non-2xx statuses and undecodable payloads all wrap [shared.ErrAPIRequest]
// so callers treat any failure uniformly; a 404 on a movie fetch wraps
// [shared.ErrMovieNotFound], and credential failures wrap
// [shared.ErrAuthFailed]. Every request carries a generated X-Request-ID
// which is also attached to the debug log line for correlation.
package services
