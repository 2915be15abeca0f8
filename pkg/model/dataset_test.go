package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDataset(t *testing.T) {
	dataset := DatasetDescriptor{
		FileName: "claims.csv",
		Origin:   "FEMA",
		Authors:  []Contributor{{Name: "OpenFEMA"}},
		Date:     "2018",
		License:  "Public Domain",
	}
	require.NoError(t, ValidateDataset(dataset))

	bad := dataset
	bad.FileName = "data/claims.csv"
	require.Error(t, ValidateDataset(bad))

	bad = dataset
	bad.FileName = ""
	require.Error(t, ValidateDataset(bad))

	bad = dataset
	bad.Origin = ""
	require.Error(t, ValidateDataset(bad))

	bad = dataset
	bad.Authors = nil
	require.Error(t, ValidateDataset(bad))

	bad = dataset
	bad.Authors = []Contributor{{}}
	require.Error(t, ValidateDataset(bad))

	bad = dataset
	bad.Date = ""
	require.Error(t, ValidateDataset(bad))

	bad = dataset
	bad.License = ""
	require.Error(t, ValidateDataset(bad))

	bad = dataset
	bad.Checksum = "abc"
	require.Error(t, ValidateDataset(bad))

	ok := dataset
	ok.Checksum = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	require.NoError(t, ValidateDataset(ok))
}

func TestContributorString(t *testing.T) {
	c := Contributor{Name: "Jane Doe", Email: "jane@example.com"}
	assert.Equal(t, "Jane Doe <jane@example.com>", c.String())

	c = Contributor{Name: "Jane Doe"}
	assert.Equal(t, "Jane Doe", c.String())

	c = Contributor{Email: "jane@example.com"}
	assert.Equal(t, "jane@example.com", c.String())
}

func TestParseContributor(t *testing.T) {
	c := ParseContributor("Jane Doe <jane@example.com>")
	assert.Equal(t, "Jane Doe", c.Name)
	assert.Equal(t, "jane@example.com", c.Email)

	c = ParseContributor("  USGS Earthquake Hazards Program ")
	assert.Equal(t, "USGS Earthquake Hazards Program", c.Name)
	assert.Equal(t, "", c.Email)

	// round trip
	orig := Contributor{Name: "Jane Doe", Email: "jane@example.com"}
	parsed := ParseContributor(orig.String())
	assert.Equal(t, orig.Name, parsed.Name)
	assert.Equal(t, orig.Email, parsed.Email)
}

func TestAuthorsString(t *testing.T) {
	dataset := DatasetDescriptor{
		Authors: []Contributor{
			{Name: "Jane Doe", Email: "jane@example.com"},
			{Name: "John Doe"},
		},
	}
	assert.Equal(t, "Jane Doe <jane@example.com>, John Doe", dataset.AuthorsString())
}
