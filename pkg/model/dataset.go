package model

import (
	"fmt"
	"strings"
	"unicode"
)

// DatasetDescriptor records a single distributed file together with its provenance.
type DatasetDescriptor struct {
	FileName    string        `json:"file" yaml:"file"`
	Origin      string        `json:"origin" yaml:"origin"`
	Authors     []Contributor `json:"authors" yaml:"authors"`
	Date        string        `json:"date" yaml:"date"` // release date as published upstream, e.g. "2018" or "2018-11-30"
	License     string        `json:"license" yaml:"license"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Checksum    string        `json:"checksum,omitempty" yaml:"checksum,omitempty"` // hex encoded sha256 of the distributed file
	Size        int64         `json:"size,omitempty" yaml:"size,omitempty"`
	_           struct{}
}

// Contributor who created the object
type Contributor struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
	_     struct{}
}

func (c *Contributor) String() string {
	if c.Email == "" {
		return c.Name
	}
	if c.Name == "" {
		return c.Email
	}
	return fmt.Sprintf("%s <%s>", c.Name, c.Email)
}

// ParseContributor builds a contributor back from its "Name <email>" rendition
func ParseContributor(s string) Contributor {
	s = strings.TrimSpace(s)
	if open := strings.LastIndex(s, "<"); open >= 0 && strings.HasSuffix(s, ">") {
		return Contributor{
			Name:  strings.TrimSpace(s[:open]),
			Email: strings.TrimSpace(s[open+1 : len(s)-1]),
		}
	}
	return Contributor{Name: s}
}

// AuthorsString renders the authors of a dataset as a single comma separated field
func (d *DatasetDescriptor) AuthorsString() string {
	authors := make([]string, 0, len(d.Authors))
	for i := range d.Authors {
		authors = append(authors, d.Authors[i].String())
	}
	return strings.Join(authors, ", ")
}

func ValidateDataset(dataset DatasetDescriptor) error {
	if dataset.FileName == "" {
		return fmt.Errorf("empty field: dataset file name is empty")
	}
	for i, c := range dataset.FileName {
		if !unicode.IsDigit(c) && !unicode.IsLetter(c) && c != '.' && c != '-' && c != '_' {
			return fmt.Errorf("invalid name: dataset file name:%s contains unsupported character \"%s\"",
				dataset.FileName,
				string([]rune(dataset.FileName)[i]))
		}
	}
	if dataset.Origin == "" {
		return fmt.Errorf("empty field: origin for dataset %s is empty", dataset.FileName)
	}
	if len(dataset.Authors) == 0 {
		return fmt.Errorf("empty field: authors for dataset %s are empty", dataset.FileName)
	}
	for _, author := range dataset.Authors {
		if author.Name == "" && author.Email == "" {
			return fmt.Errorf("empty field: blank author for dataset %s", dataset.FileName)
		}
	}
	if dataset.Date == "" {
		return fmt.Errorf("empty field: date for dataset %s is empty", dataset.FileName)
	}
	if dataset.License == "" {
		return fmt.Errorf("empty field: license for dataset %s is empty", dataset.FileName)
	}
	if dataset.Checksum != "" {
		if err := ValidateDigest(dataset.Checksum); err != nil {
			return fmt.Errorf("invalid checksum for dataset %s: %v", dataset.FileName, err)
		}
	}
	return nil
}
