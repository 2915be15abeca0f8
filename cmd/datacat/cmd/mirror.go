package cmd

import (
	"log"

	"github.com/oneconcern/datacat/pkg/storage"
	"github.com/spf13/cobra"
)

// mirrorCmd represents the mirror command
var mirrorCmd = &cobra.Command{
	Use:   "mirror [DEST...]",
	Short: "Push the collection to mirror stores",
	Long: `Push the published collection to one or several mirror stores: the catalog, the
rendered artifacts and every cataloged data file.

Destinations are local directories or s3://<bucket> urls. Without arguments the mirrors
listed in the config file are used.
`,
	Example: `% datacat mirror /backups/datacat s3://research-datasets`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := initContext()
		collection, err := initCollection()
		if err != nil {
			log.Fatalln(err)
		}
		defer collection.Close()

		dests := args
		if len(dests) == 0 {
			dests = config.Mirrors
		}
		if len(dests) == 0 {
			wrapFatalln("no mirror destination: pass one as argument or list mirrors in the config file", nil)
			return
		}

		units := make([]storage.MultiStoreUnit, 0, len(dests))
		for _, dest := range dests {
			store, serr := mirrorStore(dest)
			if serr != nil {
				log.Fatalln(serr)
			}
			units = append(units, storage.MultiStoreUnit{
				Store:           store,
				TolerateFailure: datacatFlags.mirror.tolerateFailure,
			})
		}

		if err := collection.Mirror(ctx, units); err != nil {
			log.Fatalln(err)
		}
		log.Printf("collection mirrored to %d store(s)", len(units))
	},
}

func init() {
	rootCmd.AddCommand(mirrorCmd)
	addTolerateFailureFlag(mirrorCmd)
}
