package repository

import "errors"

var (
	// ErrNoFetcher indicates no fetcher can serve the URL
	ErrNoFetcher = errors.New("no fetcher configured for URL")

	// ErrEmptyDocument indicates the remote returned no bytes
	ErrEmptyDocument = errors.New("remote document is empty")
)
