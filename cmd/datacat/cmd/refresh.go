package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

// refreshCmd represents the refresh command
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Recompute the digests of the catalog and re-render the artifacts",
	Long: `Recompute the sha256 digest of every cataloged file and update the catalog
where the content changed, then re-render the readme table and the checksum file.

Run this after replacing a data file in place, or after editing the catalog by hand.
`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := initContext()
		collection, err := initCollection()
		if err != nil {
			log.Fatalln(err)
		}
		defer collection.Close()

		changed, err := collection.Catalog().Refresh(ctx)
		if err != nil {
			log.Fatalln(err)
		}
		if len(changed) == 0 {
			log.Println("catalog is up to date")
			return
		}
		for _, name := range changed {
			log.Printf("%s has been updated", name)
		}
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
