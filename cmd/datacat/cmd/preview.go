package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/gosuri/uitable"
	"github.com/oneconcern/datacat/pkg/tabular"
	"github.com/spf13/cobra"
)

// previewCmd represents the preview command
var previewCmd = &cobra.Command{
	Use:   "preview FILE",
	Short: "Preview the head of a tabular data file",
	Long: `Preview the header and the first rows of a tabular data file.

Gzip compressed files are decompressed on the fly and the field delimiter is sniffed
from the header unless forced with --delimiter. With --stats the whole file is scanned
and its row and column counts are reported instead.
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(args[0])
		if err != nil {
			log.Fatalln(err)
		}
		defer f.Close()

		opts := []tabular.Option{tabular.Rows(datacatFlags.preview.rows)}
		delimiter, err := parseDelimiter(datacatFlags.preview.delimiter)
		if err != nil {
			log.Fatalln(err)
		}
		if delimiter != 0 {
			opts = append(opts, tabular.Delimiter(delimiter))
		}
		scanner := tabular.New(opts...)

		if datacatFlags.preview.stats {
			stats, serr := scanner.Stats(f, args[0])
			if serr != nil {
				log.Fatalln(serr)
			}
			if perr := print(stats); perr != nil {
				log.Fatalln(perr)
			}
			return
		}

		preview, err := scanner.Preview(f, args[0])
		if err != nil {
			log.Fatalln(err)
		}

		table := uitable.New()
		table.MaxColWidth = 40
		table.AddRow(tableRow(preview.Columns)...)
		for _, row := range preview.Rows {
			table.AddRow(tableRow(row)...)
		}
		fmt.Println(table)
		if preview.Truncated {
			log.Println("... more rows not shown")
		}
	},
}

func tableRow(cells []string) []interface{} {
	row := make([]interface{}, 0, len(cells))
	for _, cell := range cells {
		row = append(row, cell)
	}
	return row
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	default:
		r := []rune(s)
		if len(r) != 1 {
			return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
		}
		return r[0], nil
	}
}

func init() {
	rootCmd.AddCommand(previewCmd)
	addRowsFlag(previewCmd)
	addDelimiterFlag(previewCmd)
	addStatsFlag(previewCmd)
	addFormatFlag(previewCmd, "")

	previewCmd.MarkZshCompPositionalArgumentFile(1, "*")
}
