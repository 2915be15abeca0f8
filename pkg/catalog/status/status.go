// Package status exports errors produced by the catalog package.
package status

import (
	"github.com/oneconcern/datacat/pkg/errors"
)

var (
	// ErrCatalogNotFound indicates the collection has no catalog descriptor
	ErrCatalogNotFound = errors.New("catalog descriptor not found")

	// ErrDatasetNotFound indicates a file name has no catalog entry
	ErrDatasetNotFound = errors.New("dataset not found in catalog")

	// ErrDatasetExists indicates an add would clobber an existing catalog entry
	ErrDatasetExists = errors.New("dataset already cataloged")

	// ErrDataMissing indicates a cataloged file is absent from the collection
	ErrDataMissing = errors.New("cataloged file missing from collection")

	// ErrChecksumMismatch indicates the recorded digest no longer matches the stored bytes
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrDuplicateEntry indicates a file name appears more than once in the catalog
	ErrDuplicateEntry = errors.New("duplicate catalog entry")

	// ErrOrphanFile indicates a data file with no catalog entry
	ErrOrphanFile = errors.New("file not cataloged")

	// ErrStaleArtifact indicates a rendered artifact no longer matches the catalog
	ErrStaleArtifact = errors.New("rendered artifact out of date")
)
