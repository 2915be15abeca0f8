package cmd

import (
	"bytes"
	"log"
	"os"

	"github.com/oneconcern/datacat/pkg/catalog"
	"github.com/oneconcern/datacat/pkg/model"
	"github.com/oneconcern/datacat/pkg/storage"
	"github.com/spf13/cobra"
)

// sumsCmd represents the sums command
var sumsCmd = &cobra.Command{
	Use:   "sums",
	Short: "Render the checksum file of the collection",
	Long: `Render the checksum file of the collection, one "<sha256>  <file>" line per
compressed dataset, in the format understood by sha256sum -c.

The rendition is printed on stdout; use --write to update the SHA256SUMS file of the
collection instead.
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
		sums, err := catalog.RenderSums(desc)
		if err != nil {
			log.Fatalln(err)
		}

		if datacatFlags.render.write {
			if err := collection.Store().Put(ctx, model.GetPathToChecksums(), bytes.NewReader(sums), storage.OverWrite); err != nil {
				log.Fatalln(err)
			}
			log.Printf("%s has been written", model.GetPathToChecksums())
			return
		}
		if _, err := os.Stdout.Write(sums); err != nil {
			log.Fatalln(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(sumsCmd)
	addWriteFlag(sumsCmd)
}
