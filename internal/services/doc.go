// Package services defines the [Client] interface for a remote admin node and implements it over HTTP.
//
// # Client
//
// [HTTPClient] is created once per sync session. It:
//   - exchanges the application key for a bearer token at /ccadmin/v1/login,
//     reusing the token until it expires ([oauth2.ReuseTokenSource])
//   - paces every request with a [rate.Limiter]
//   - memoizes GET bodies in an LRU that lives as long as the client
//
// # API
//
// [API] layers typed endpoints over a Client: descriptor listings, item code bundles,
// widget elements, locales, common text snippets, application JavaScript and the
// framework file listing.
//
// # Error Handling
//
// Non-2xx responses map onto the shared taxonomy:
//   - [shared.ErrNotFound] : 404
//   - [shared.ErrAuthFailed] : 401, 403, or a failed login
//   - [shared.ErrServiceUnavailable] : 503
//   - [shared.ErrAPIRequest] : anything else, transport errors, undecodable bodies
package services
