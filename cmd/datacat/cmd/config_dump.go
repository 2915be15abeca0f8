// Copyright © 2018 One Concern

package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the config used",
	Long:  `Print the config used by the invocation of the datacat command`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := print(*config); err != nil {
			log.Fatalln(err)
		}
	},
}

func init() {
	configCmd.AddCommand(dumpCmd)
	if err := addFormatFlag(dumpCmd, "yaml"); err != nil {
		log.Fatalln(err)
	}
}
