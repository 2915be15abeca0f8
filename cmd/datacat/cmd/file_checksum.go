// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"log"
	"runtime"

	"github.com/oneconcern/datacat/pkg/fingerprint"
	"github.com/oneconcern/pipelines/pkg/cli/cflags"
	"github.com/spf13/cobra"
)

var checksumOpts csOpts

type csOpts struct {
	Size     cflags.ByteSize
	LeafSize cflags.ByteSize
	Blake2b  bool
}

// checksumCmd represents the checksum command
var checksumCmd = &cobra.Command{
	Use:   "checksum FILE [FILE...]",
	Short: "Create a checksum for one or more files",
	Long: `Create a checksum for one or more files, one "<digest>  <path>" line per file.

By default the plain sha256 digest is computed, matching the digests the catalog
records and the checksum file publishes. With --blake2b a blake2b tree checksum is
computed instead, sized by --digest-size and --leaf-size.
`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, pth := range args {
			if !checksumOpts.Blake2b {
				digest, err := fingerprint.SHA256File(pth)
				if err != nil {
					log.Fatalln(err)
				}
				fmt.Printf("%s  %s\n", digest, pth)
				continue
			}
			maker := fingerprint.New(
				fingerprint.Size(uint8(checksumOpts.Size)),
				fingerprint.LeafSize(int64(checksumOpts.LeafSize)),
				fingerprint.NumberOfWorkers(runtime.NumCPU()),
			)
			fp, err := maker.Process(pth)
			if err != nil {
				log.Fatalln(err)
			}
			fmt.Printf("%x  %s\n", fp, pth)
		}
	},
}

func init() {
	fileCmd.AddCommand(checksumCmd)

	fls := checksumCmd.Flags()
	checksumOpts.Size = cflags.ByteSize(64)
	checksumOpts.LeafSize = cflags.ByteSize(5 * 1048576)
	fls.Var(&checksumOpts.Size, "digest-size", "Digest size in bytes for blake2b tree mode")
	fls.Var(&checksumOpts.LeafSize, "leaf-size", "Leaf size in bytes for blake2b tree mode")
	fls.BoolVar(&checksumOpts.Blake2b, "blake2b", false, "Compute a blake2b tree checksum instead of the plain sha256 digest")

	for i := 1; i < 10; i++ {
		checksumCmd.MarkZshCompPositionalArgumentFile(i, "*")
	}
}
