// Copyright © 2018 One Concern

package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

// retireCmd represents the retire command
var retireCmd = &cobra.Command{
	Use:   "retire FILE",
	Short: "Retire a dataset from the collection",
	Long: `Retire a dataset from the collection.

The catalog entry is removed and the readme table and checksum file are re-rendered.
The data file itself is left in place unless --rm-file is set: a leftover file is
reported as an orphan by datacat check until it is re-cataloged or deleted.
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
		if len(args) > 0 {
			name = args[0]
		}
		if name == "" {
			wrapFatalln("a dataset file name argument or the --file flag is required", nil)
			return
		}

		if err := collection.Catalog().Retire(ctx, name, datacatFlags.dataset.RemoveFile); err != nil {
			log.Fatalln(err)
		}
		log.Printf("%s has been retired", name)
	},
}

func init() {
	rootCmd.AddCommand(retireCmd)
	addFileFlag(retireCmd)
	addRemoveFileFlag(retireCmd)
}
