package service

import "errors"

var (
	// ErrUnauthenticated is returned by user-scoped operations when the remote
	// adapter holds no usable access token. The favorites leg of a sync run
	// treats it as a silent no-op.
	ErrUnauthenticated = errors.New("no authenticated user")

	ErrSyncInProgress     = errors.New("sync already in progress")
	ErrDownloadInProgress = errors.New("cache download already in progress")
	ErrLoadInProgress     = errors.New("page load already in progress")

	ErrInvalidPage = errors.New("page number must be positive")
)
