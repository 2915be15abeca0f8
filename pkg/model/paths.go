package model

import (
	"fmt"
	"strings"
)

const (
	catalogFile   = "datasets.yaml"
	readmeFile    = "README.md"
	checksumsFile = "SHA256SUMS"
	dataDir       = "data"
)

// GetPathToCatalog yields the location of the catalog manifest inside a collection
func GetPathToCatalog() string {
	return catalogFile
}

// GetPathToReadme yields the location of the rendered readme inside a collection
func GetPathToReadme() string {
	return readmeFile
}

// GetPathToChecksums yields the location of the rendered checksum file inside a collection
func GetPathToChecksums() string {
	return checksumsFile
}

// GetPathPrefixToData yields the key prefix under which dataset files live
func GetPathPrefixToData() string {
	return fmt.Sprint(dataDir, "/")
}

// GetPathToDataset yields the location of a dataset file inside a collection
func GetPathToDataset(fileName string) string {
	return fmt.Sprint(GetPathPrefixToData(), fileName)
}

// GetDatasetFileName yields the bare file name for a data path, or "" when the
// path does not point inside the data area
func GetDatasetFileName(path string) string {
	name := strings.TrimPrefix(strings.TrimPrefix(path, "./"), GetPathPrefixToData())
	if name == path || name == "" || strings.Contains(name, "/") {
		return ""
	}
	return name
}

// IsGeneratedFile tells whether a collection file is rendered from the catalog
// rather than maintained by hand
func IsGeneratedFile(file string) bool {
	switch strings.TrimPrefix(file, "./") {
	case readmeFile, checksumsFile:
		return true
	}
	return false
}

// IsCompressedFile tells whether a dataset file is distributed compressed.
// Those are the files pinned by the checksum file.
func IsCompressedFile(file string) bool {
	for _, ext := range []string{".gz", ".tgz", ".zip", ".bz2", ".xz", ".zst"} {
		if strings.HasSuffix(file, ext) {
			return true
		}
	}
	return false
}
