// Copyright © 2018 One Concern

package catalog

import (
	"bytes"
	"context"
	"fmt"

	"github.com/oneconcern/datacat/pkg/catalog/status"
	"github.com/oneconcern/datacat/pkg/errors"
	"github.com/oneconcern/datacat/pkg/model"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const verifyBatchSize = 1024

// Verify checks the collection's published properties:
//
//   - every cataloged file exists in the collection
//   - every recorded digest matches the stored bytes
//   - the catalog has no duplicate entries
//   - no file under the data area is missing from the catalog
//   - the readme and checksum file match their canonical renderings
//
// All violations found are aggregated into the returned error, which
// Violations unpacks.
func (c *Catalog) Verify(ctx context.Context) error {
	desc, err := c.load(ctx)
	if err != nil {
		return err
	}

	var violations error
	report := func(kind *errors.Error, format string, args ...interface{}) {
		violations = multierr.Append(violations, kind.Wrap(fmt.Errorf(format, args...)))
	}

	for _, name := range desc.Duplicates() {
		report(status.ErrDuplicateEntry, "%s", name)
	}

	seen := make(map[string]bool, len(desc.Datasets))
	for _, dataset := range desc.Datasets {
		if seen[dataset.FileName] {
			continue
		}
		seen[dataset.FileName] = true

		key := model.GetPathToDataset(dataset.FileName)
		has, herr := c.store.Has(ctx, key)
		if herr != nil {
			violations = multierr.Append(violations, herr)
			continue
		}
		if !has {
			report(status.ErrDataMissing, "%s", dataset.FileName)
			continue
		}

		digest, _, derr := c.digest(ctx, key)
		if derr != nil {
			violations = multierr.Append(violations, derr)
			continue
		}
		if digest != dataset.Checksum {
			report(status.ErrChecksumMismatch, "%s: recorded %s, computed %s",
				dataset.FileName, shortDigest(dataset.Checksum), shortDigest(digest))
		}
	}

	token := ""
	for {
		keys, next, kerr := c.store.KeysPrefix(ctx, token, model.GetPathPrefixToData(), "", verifyBatchSize)
		if kerr != nil {
			violations = multierr.Append(violations, kerr)
			break
		}
		for _, key := range keys {
			name := model.GetDatasetFileName(key)
			if name == "" {
				continue
			}
			if _, found := desc.Dataset(name); !found {
				report(status.ErrOrphanFile, "%s", name)
			}
		}
		if next == "" {
			break
		}
		token = next
	}

	readme, rerr := c.readCurrent(ctx, model.GetPathToReadme())
	if rerr != nil {
		violations = multierr.Append(violations, rerr)
	} else if canonical := spliceReadme(readme, desc); len(readme) == 0 || !bytes.Equal(readme, canonical) {
		report(status.ErrStaleArtifact, "%s", model.GetPathToReadme())
	}

	sums, serr := c.readCurrent(ctx, model.GetPathToChecksums())
	switch {
	case serr != nil:
		violations = multierr.Append(violations, serr)
	default:
		canonical, cerr := RenderSums(desc)
		if cerr != nil {
			violations = multierr.Append(violations, cerr)
		} else if !bytes.Equal(sums, canonical) {
			report(status.ErrStaleArtifact, "%s", model.GetPathToChecksums())
		}
	}

	if violations != nil {
		c.l.Info("verification failed",
			zap.String("store", c.store.String()),
			zap.Int("violations", len(multierr.Errors(violations))))
	}
	return violations
}

// Violations unpacks the individual violations aggregated by Verify
func Violations(err error) []error {
	return multierr.Errors(err)
}

func shortDigest(digest string) string {
	if digest == "" {
		return "(none)"
	}
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}
