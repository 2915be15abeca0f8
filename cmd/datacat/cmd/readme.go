package cmd

import (
	"bytes"
	"log"
	"os"

	"github.com/oneconcern/datacat/pkg/model"
	"github.com/oneconcern/datacat/pkg/storage"
	"github.com/spf13/cobra"
)

// readmeCmd represents the readme command
var readmeCmd = &cobra.Command{
	Use:   "readme",
	Short: "Render the readme with its manifest table",
	Long: `Render the readme of the collection, with the manifest table generated from the catalog.

Prose around the generated block is preserved. The rendition is printed on stdout;
use --write to update the README.md of the collection instead.
`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := initContext()
		collection, err := initCollection()
		if err != nil {
			log.Fatalln(err)
		}
		defer collection.Close()

		desc, err := collection.Catalog().Load(ctx)
		if err != nil {
			log.Fatalln(err)
		}
		readme, err := collection.Catalog().RenderREADME(ctx, desc)
		if err != nil {
			log.Fatalln(err)
		}

		if datacatFlags.render.write {
			if err := collection.Store().Put(ctx, model.GetPathToReadme(), bytes.NewReader(readme), storage.OverWrite); err != nil {
				log.Fatalln(err)
			}
			log.Printf("%s has been written", model.GetPathToReadme())
			return
		}
		if _, err := os.Stdout.Write(readme); err != nil {
			log.Fatalln(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(readmeCmd)
	addWriteFlag(readmeCmd)
}
