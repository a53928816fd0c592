package server

import "errors"

// errNoControlServer is returned by NewServer when the control API has no
// handlers or no listen address.
var errNoControlServer = errors.New("control API server is not configured")
