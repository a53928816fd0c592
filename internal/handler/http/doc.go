// Package http implements the control API of the catalog mirror.
//
// The API drives the cache download manager, the sync coordinator, the
// paginated loader and favorites, and reads the local mirror and resolved
// addresses. Request tracing, access logging and response compression are
// handled here before requests reach the service layer.
package http
