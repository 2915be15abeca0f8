// Copyright © 2018 One Concern

package cmd

import (
	"github.com/spf13/cobra"
)

// fileCmd represents the file command
var fileCmd = &cobra.Command{
	Use:   "file",
	Short: "File level operations",
	Long: `File level operations, usable on any file whether it is cataloged or not.
`,
}

func init() {
	rootCmd.AddCommand(fileCmd)
}
