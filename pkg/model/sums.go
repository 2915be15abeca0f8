package model

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
)

// ChecksumEntry pins the sha256 digest of a distributed file.
type ChecksumEntry struct {
	FileName string `json:"file" yaml:"file"`
	Digest   string `json:"digest" yaml:"digest"`
	_        struct{}
}

var digestRe = regexp.MustCompile(`^[0-9a-f]{64}$`)

// ValidateDigest checks that a digest is a lower case hex encoded sha256
func ValidateDigest(digest string) error {
	if !digestRe.MatchString(digest) {
		return fmt.Errorf("invalid digest: %q is not a hex encoded sha256", digest)
	}
	return nil
}

// WriteChecksums renders entries in the format produced by sha256sum(1):
// one "<digest>  <file>" line per entry, sorted by file name.
func WriteChecksums(w io.Writer, entries []ChecksumEntry) error {
	sorted := make([]ChecksumEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].FileName < sorted[j].FileName })
	for _, entry := range sorted {
		if err := ValidateDigest(entry.Digest); err != nil {
			return err
		}
		if entry.FileName == "" {
			return fmt.Errorf("empty field: checksum entry has no file name")
		}
		if _, err := fmt.Fprintf(w, "%s  %s\n", entry.Digest, entry.FileName); err != nil {
			return err
		}
	}
	return nil
}

// ParseChecksums reads a checksum file back into entries. Both the text ("  ")
// and binary (" *") separators emitted by sha256sum(1) are accepted.
func ParseChecksums(r io.Reader) ([]ChecksumEntry, error) {
	var entries []ChecksumEntry
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		if len(text) < 67 || text[64] != ' ' || (text[65] != ' ' && text[65] != '*') {
			return nil, fmt.Errorf("malformed checksum line %d: %q", line, text)
		}
		digest := text[:64]
		if err := ValidateDigest(digest); err != nil {
			return nil, fmt.Errorf("malformed checksum line %d: %v", line, err)
		}
		entries = append(entries, ChecksumEntry{
			FileName: text[66:],
			Digest:   digest,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
