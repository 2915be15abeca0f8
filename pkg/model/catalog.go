package model

import (
	"fmt"
	"time"
	"unicode"
)

const (
	CurrentCatalogVersion = 1
)

// CatalogDescriptor is the manifest of a curated data collection. It is the
// source of truth from which the human readable artifacts (readme table,
// checksum file) are rendered.
type CatalogDescriptor struct {
	Name        string              `json:"name" yaml:"name"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	UpdatedAt   time.Time           `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
	Version     uint64              `json:"version,omitempty" yaml:"version,omitempty"`
	Datasets    []DatasetDescriptor `json:"datasets" yaml:"datasets"`
	_           struct{}
}

// Dataset returns the catalog entry for a file name
func (c *CatalogDescriptor) Dataset(fileName string) (DatasetDescriptor, bool) {
	for _, dataset := range c.Datasets {
		if dataset.FileName == fileName {
			return dataset, true
		}
	}
	return DatasetDescriptor{}, false
}

// Duplicates returns the file names appearing more than once in the catalog,
// in order of first appearance
func (c *CatalogDescriptor) Duplicates() []string {
	seen := make(map[string]int, len(c.Datasets))
	for _, dataset := range c.Datasets {
		seen[dataset.FileName]++
	}
	var dupes []string
	for _, dataset := range c.Datasets {
		if seen[dataset.FileName] > 1 {
			dupes = append(dupes, dataset.FileName)
			seen[dataset.FileName] = 0
		}
	}
	return dupes
}

// Checksums returns the checksum entries pinning the compressed files of the
// catalog. Uncompressed files are tracked in the catalog itself but not
// published in the checksum file.
func (c *CatalogDescriptor) Checksums() []ChecksumEntry {
	var entries []ChecksumEntry
	for _, dataset := range c.Datasets {
		if !IsCompressedFile(dataset.FileName) || dataset.Checksum == "" {
			continue
		}
		entries = append(entries, ChecksumEntry{
			FileName: dataset.FileName,
			Digest:   dataset.Checksum,
		})
	}
	return entries
}

func GetCatalogTimeStamp() time.Time {
	t := time.Now()
	return t.UTC()
}

func Validate(catalog CatalogDescriptor) error {
	if catalog.Name == "" {
		return fmt.Errorf("empty field: catalog name is empty")
	}
	for i, c := range catalog.Name {
		if !unicode.IsDigit(c) && !unicode.IsLetter(c) && !unicode.Is(unicode.Hyphen, c) {
			return fmt.Errorf("invalid name: catalog name:%s contains unsupported character \"%s\"",
				catalog.Name,
				string([]rune(catalog.Name)[i]))
		}
	}
	for _, dataset := range catalog.Datasets {
		if err := ValidateDataset(dataset); err != nil {
			return err
		}
	}
	if dupes := catalog.Duplicates(); len(dupes) > 0 {
		return fmt.Errorf("duplicate entries: %v", dupes)
	}
	return nil
}
