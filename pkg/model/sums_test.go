package model

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	digestA = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	digestB = "7f83b1657ff1fc53b92dc18148a1d65dfc2d4b1fa3d677284addd200126d9069"
)

func TestWriteChecksums(t *testing.T) {
	entries := []ChecksumEntry{
		{FileName: "patches.csv.gz", Digest: digestB},
		{FileName: "archive.zip", Digest: digestA},
	}

	buf := bytes.NewBuffer(nil)
	require.NoError(t, WriteChecksums(buf, entries))

	// rendered sorted by file name, sha256sum(1) text format
	assert.Equal(t,
		digestA+"  archive.zip\n"+digestB+"  patches.csv.gz\n",
		buf.String())
}

func TestWriteChecksumsInvalid(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	err := WriteChecksums(buf, []ChecksumEntry{{FileName: "x.gz", Digest: "nothex"}})
	require.Error(t, err)

	err = WriteChecksums(buf, []ChecksumEntry{{FileName: "", Digest: digestA}})
	require.Error(t, err)
}

func TestParseChecksums(t *testing.T) {
	doc := digestA + "  archive.zip\n" +
		"\n" + // blank lines are skipped
		digestB + " *patches.csv.gz\n" // binary marker is accepted

	entries, err := ParseChecksums(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "archive.zip", entries[0].FileName)
	assert.Equal(t, digestA, entries[0].Digest)
	assert.Equal(t, "patches.csv.gz", entries[1].FileName)
	assert.Equal(t, digestB, entries[1].Digest)
}

func TestParseChecksumsRoundTrip(t *testing.T) {
	entries := []ChecksumEntry{
		{FileName: "archive.zip", Digest: digestA},
		{FileName: "patches.csv.gz", Digest: digestB},
	}
	buf := bytes.NewBuffer(nil)
	require.NoError(t, WriteChecksums(buf, entries))

	parsed, err := ParseChecksums(buf)
	require.NoError(t, err)
	assert.Equal(t, entries, parsed)
}

func TestParseChecksumsMalformed(t *testing.T) {
	malformed := []string{
		// digest too short
		"deadbeef  archive.zip\n",
		// upper case hex is not produced by sha256sum
		strings.ToUpper(digestA) + "  x.gz\n",
		// single space separator
		digestA + " archive.zip\n",
		// bogus separator
		digestA + "--archive.zip\n",
		// no file name at all
		digestA + "\n",
		// not hex
		strings.Replace(digestA, "b", "z", 1) + "  x.gz\n",
	}
	for _, doc := range malformed {
		_, err := ParseChecksums(strings.NewReader(doc))
		require.Error(t, err, "expected a parse failure for %q", doc)
	}
}

func TestValidateDigest(t *testing.T) {
	require.NoError(t, ValidateDigest(digestA))
	require.Error(t, ValidateDigest(""))
	require.Error(t, ValidateDigest("abc"))
	require.Error(t, ValidateDigest(strings.ToUpper(digestA)))
	require.Error(t, ValidateDigest(digestA+"00"))
}
