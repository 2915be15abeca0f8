package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPathToDataset(t *testing.T) {
	require.Equal(t, "data/quakes.csv", GetPathToDataset("quakes.csv"))
	require.Equal(t, "data/", GetPathPrefixToData())
	require.Equal(t, "datasets.yaml", GetPathToCatalog())
	require.Equal(t, "README.md", GetPathToReadme())
	require.Equal(t, "SHA256SUMS", GetPathToChecksums())
}

func TestGetDatasetFileName(t *testing.T) {
	assert.Equal(t, "quakes.csv", GetDatasetFileName("data/quakes.csv"))
	assert.Equal(t, "quakes.csv", GetDatasetFileName("./data/quakes.csv"))
	assert.Equal(t, "", GetDatasetFileName("README.md"))
	assert.Equal(t, "", GetDatasetFileName("data/"))
	assert.Equal(t, "", GetDatasetFileName("data/nested/file.csv"))
}

func TestIsGeneratedFile(t *testing.T) {
	assert.True(t, IsGeneratedFile("README.md"))
	assert.True(t, IsGeneratedFile("./SHA256SUMS"))
	assert.False(t, IsGeneratedFile("datasets.yaml"))
	assert.False(t, IsGeneratedFile("data/quakes.csv"))
}

func TestIsCompressedFile(t *testing.T) {
	assert.True(t, IsCompressedFile("patches.csv.gz"))
	assert.True(t, IsCompressedFile("archive.zip"))
	assert.True(t, IsCompressedFile("dump.tar.bz2"))
	assert.False(t, IsCompressedFile("quakes.csv"))
	assert.False(t, IsCompressedFile("boundary.geojson"))
}
