// Copyright © 2018 One Concern

package catalog

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/oneconcern/datacat/pkg/model"
	"github.com/oneconcern/datacat/pkg/storage"
)

// Markers delimiting the generated manifest section of the readme.
// Prose outside the markers is left untouched by rendering.
const (
	BeginMarker = "<!-- datacat:begin -->"
	EndMarker   = "<!-- datacat:end -->"
)

// RenderREADME renders the readme with the manifest table spliced between
// the generated-content markers. Prose around the markers is preserved.
// When the collection has no readme yet, a minimal one is built around the
// table.
func (c *Catalog) RenderREADME(ctx context.Context, desc model.CatalogDescriptor) ([]byte, error) {
	current, err := c.readCurrent(ctx, model.GetPathToReadme())
	if err != nil {
		return nil, err
	}
	return spliceReadme(current, desc), nil
}

// RenderSums renders the canonical checksum file for the collection:
// one line per compressed artifact, in the sha256sum(1) format.
func RenderSums(desc model.CatalogDescriptor) ([]byte, error) {
	var buf bytes.Buffer
	if err := model.WriteChecksums(&buf, desc.Checksums()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteArtifacts renders the readme and the checksum file from the current
// descriptor and stores both
func (c *Catalog) WriteArtifacts(ctx context.Context) error {
	desc, err := c.Load(ctx)
	if err != nil {
		return err
	}

	readme, err := c.RenderREADME(ctx, desc)
	if err != nil {
		return err
	}
	if err = c.store.Put(ctx, model.GetPathToReadme(), bytes.NewReader(readme), storage.OverWrite); err != nil {
		return err
	}

	sums, err := RenderSums(desc)
	if err != nil {
		return err
	}
	return c.store.Put(ctx, model.GetPathToChecksums(), bytes.NewReader(sums), storage.OverWrite)
}

func renderManifestTable(desc model.CatalogDescriptor) string {
	datasets := make([]model.DatasetDescriptor, len(desc.Datasets))
	copy(datasets, desc.Datasets)
	sortDatasets(datasets)

	var b strings.Builder
	b.WriteString("| File | Origin | Authors | Date | License |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for i := range datasets {
		fmt.Fprintf(&b, "| [%s](%s) | %s | %s | %s | %s |\n",
			datasets[i].FileName,
			model.GetPathToDataset(datasets[i].FileName),
			datasets[i].Origin,
			datasets[i].AuthorsString(),
			datasets[i].Date,
			datasets[i].License)
	}
	return b.String()
}

// spliceReadme replaces the marker-delimited section of the readme with
// the freshly rendered table. Without markers the section is appended, so
// rendering converges after the first pass.
func spliceReadme(current []byte, desc model.CatalogDescriptor) []byte {
	block := BeginMarker + "\n" + renderManifestTable(desc) + EndMarker

	text := string(current)
	begin := strings.Index(text, BeginMarker)
	end := strings.Index(text, EndMarker)
	if begin < 0 || end < begin {
		if text == "" {
			return []byte(scaffoldReadme(desc, block))
		}
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		return []byte(text + "\n" + block + "\n")
	}
	return []byte(text[:begin] + block + text[end+len(EndMarker):])
}

func scaffoldReadme(desc model.CatalogDescriptor, block string) string {
	title := desc.Name
	if title == "" {
		title = "datasets"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if desc.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", desc.Description)
	}
	fmt.Fprintf(&b, "## Manifest\n\n%s\n", block)
	return b.String()
}
