// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced while parsing control API requests.
var (
	// ErrInvalidPageParameter is returned when the "page" query parameter is
	// present but is not a positive integer.
	ErrInvalidPageParameter = errors.New("invalid `page` query parameter")

	// ErrInvalidLimitParameter is returned when the "limit" query parameter
	// is present but is not a positive integer.
	ErrInvalidLimitParameter = errors.New("invalid `limit` query parameter")

	// ErrEmptySearchQuery is returned by the search endpoint when "q" is
	// missing or blank.
	ErrEmptySearchQuery = errors.New("empty search query")

	// ErrAddressNotResolved is returned when no address was resolved yet for
	// the requested record.
	ErrAddressNotResolved = errors.New("address is not resolved")
)
