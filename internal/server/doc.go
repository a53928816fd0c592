// Package server runs the control API HTTP server of the catalog mirror and
// shuts it down gracefully when the engine stops.
package server
