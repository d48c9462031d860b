// Package errors provides sentinel errors for the catalogue toolkit.
package errors

import "errors"

// Catalogue errors
var (
	// ErrCatalogueNotFound is returned when the catalogue file does not exist.
	ErrCatalogueNotFound = errors.New("catalogue file does not exist")

	// ErrCatalogueCorrupt is returned when the catalogue file cannot be parsed.
	ErrCatalogueCorrupt = errors.New("failed to load catalogue data")

	// ErrAssetsDirNotFound is returned when the assets directory is missing.
	ErrAssetsDirNotFound = errors.New("assets directory does not exist")
)

// Downloader errors
var (
	// ErrNoCategories is returned when the category list cannot be fetched.
	ErrNoCategories = errors.New("no categories found")

	// ErrCategoryNotFound is returned when a requested category ID is unknown.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrNoToken is returned when a session token cannot be obtained.
	ErrNoToken = errors.New("failed to obtain session token")

	// ErrDownloadIncomplete is returned when one or more categories failed or
	// produced no questions.
	ErrDownloadIncomplete = errors.New("download incomplete")

	// ErrNoSummary is returned when check-counts runs before any download.
	ErrNoSummary = errors.New("download summary not found - run a download first")
)

// Ollama errors
var (
	// ErrOllamaUnavailable is returned when the Ollama server cannot be reached.
	ErrOllamaUnavailable = errors.New("ollama server not accessible")

	// ErrModelNotFound is returned when the configured model is not installed.
	ErrModelNotFound = errors.New("model not found")
)
