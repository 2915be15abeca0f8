// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"io"
	"log"

	"github.com/gosuri/uitable"
	"github.com/oneconcern/datacat/pkg/model"

	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get FILE",
	Short: "Get the details for a dataset",
	Long:  `Get the catalog entry of a single dataset, including its provenance and sha256 digest`,
	Args:  cobra.MaximumNArgs(1),
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

		dataset, err := collection.Dataset(ctx, name)
		if err != nil {
			log.Fatalln(err)
		}

		if err := print(dataset); err != nil {
			log.Fatalln(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	addFileFlag(getCmd)
	addFormatFlag(getCmd, "", map[string]Formatter{
		"list": FormatterFunc(func(w io.Writer, data interface{}) error {
			dataset := data.(model.DatasetDescriptor)
			table := uitable.New()
			table.MaxColWidth = 78
			table.Wrap = true
			table.AddRow("File:", dataset.FileName)
			table.AddRow("Origin:", dataset.Origin)
			table.AddRow("Authors:", dataset.AuthorsString())
			table.AddRow("Date:", dataset.Date)
			table.AddRow("License:", dataset.License)
			if dataset.Description != "" {
				table.AddRow("Description:", dataset.Description)
			}
			table.AddRow("SHA256:", dataset.Checksum)
			table.AddRow("Size:", fmt.Sprintf("%d", dataset.Size))
			_, err := fmt.Fprintln(w, table)
			return err
		}),
	})
}
