// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHandlersAreCreated is returned by NewHandlers when the control API
// has no listen address. The engine then runs without the API.
var errNoHandlersAreCreated = errors.New("no handlers are created")

// IsNoHandlers reports whether err means that no handler was configured.
func IsNoHandlers(err error) bool {
	return errors.Is(err, errNoHandlersAreCreated)
}
