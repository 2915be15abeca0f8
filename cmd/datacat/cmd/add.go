// Copyright © 2018 One Concern

package cmd

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/oneconcern/datacat/pkg/catalog/status"
	"github.com/oneconcern/datacat/pkg/errors"
	"github.com/oneconcern/datacat/pkg/model"
	"github.com/spf13/cobra"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [FILE]",
	Short: "Add a dataset file to the collection",
	Long: `Add a dataset file to the collection, together with its provenance.

When a source file is given it is copied into the data directory of the collection and
cataloged under its base name (override with --file). Without a source file the entry
must already sit in the data directory: only the catalog record is created.

The catalog records the sha256 digest of the file, then the readme table and the
checksum file are re-rendered.
`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := initContext()
		collection, err := initCollection()
		if err != nil {
			log.Fatalln(err)
		}
		defer collection.Close()

		name := datacatFlags.dataset.Name
		var source io.Reader
		if len(args) > 0 {
			f, ferr := os.Open(args[0])
			if ferr != nil {
				log.Fatalln(ferr)
			}
			defer f.Close()
			source = f
			if name == "" {
				name = filepath.Base(args[0])
			}
		}
		if name == "" {
			wrapFatalln("a source file argument or the --file flag is required", nil)
			return
		}

		authors := make([]model.Contributor, 0, len(datacatFlags.dataset.Authors))
		for _, author := range datacatFlags.dataset.Authors {
			authors = append(authors, model.ParseContributor(author))
		}

		dataset := model.DatasetDescriptor{
			FileName:    name,
			Origin:      datacatFlags.dataset.Origin,
			Authors:     authors,
			Date:        datacatFlags.dataset.Date,
			License:     datacatFlags.dataset.License,
			Description: datacatFlags.dataset.Description,
		}

		added, err := collection.Catalog().Add(ctx, dataset, source)
		if err != nil && !errors.Is(err, status.ErrDatasetExists) {
			log.Fatalln(err)
		}

		if errors.Is(err, status.ErrDatasetExists) {
			log.Printf("%s already cataloged, no action taken", name)
		} else {
			log.Printf("%s has been cataloged (sha256 %s)", added.FileName, added.Checksum)
		}
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addFileFlag(addCmd)
	addOriginFlag(addCmd)
	addAuthorFlag(addCmd)
	addDateFlag(addCmd)
	addLicenseFlag(addCmd)
	addDescriptionFlag(addCmd)
	requireFlags(addCmd, "origin", "author", "date", "license")

	addCmd.MarkZshCompPositionalArgumentFile(1, "*")
}
