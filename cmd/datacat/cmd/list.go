// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"io"
	"log"

	"github.com/fatih/color"
	"github.com/oneconcern/datacat/pkg/model"

	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List the datasets of the collection",
	Long:    `List the datasets of the collection`,
	Aliases: []string{"ls"},
	Example: `% datacat list
damage_patches.csv.gz	CC BY 4.0	Example Labs
quakes.csv	public domain	USGS`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := initContext()
		collection, err := initCollection()
		if err != nil {
			log.Fatalln(err)
		}
		defer collection.Close()

		datasets, err := collection.Datasets(ctx)
		if err != nil {
			log.Fatalln(err)
		}

		if err := print(datasets); err != nil {
			log.Fatalln(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	addFormatFlag(listCmd, "list", map[string]Formatter{
		"list": FormatterFunc(func(w io.Writer, data interface{}) error {
			datasets := data.([]model.DatasetDescriptor)
			for _, dataset := range datasets {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					dataset.FileName, dataset.License, color.HiBlackString(dataset.Origin))
			}
			return nil
		}),
	})
}
