package cmd

import (
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/oneconcern/datacat/pkg/rasterize"
	"github.com/spf13/cobra"
)

// maskCmd represents the mask command
var maskCmd = &cobra.Command{
	Use:   "mask",
	Short: "Rasterize the polygons of a GeoJSON file into a binary mask",
	Long: `Rasterize the polygons of a GeoJSON file into a binary mask.

The mask is sampled at pixel centers over the bounding box of the polygons, with row 0
at the northern edge. It is written as a numpy array (.npy) together with a metadata
sidecar (.meta.json) and, unless --format none is set, a png or jpeg rendering.
`,
	Example: `% datacat mask --input sf_boundary.geojson --width 50 --height 50
% datacat mask --input sf_boundary.geojson --mercator --invert --format none`,
	Run: func(cmd *cobra.Command, args []string) {
		doc, err := ioutil.ReadFile(datacatFlags.mask.input)
		if err != nil {
			log.Fatalln(err)
		}

		rasterizer := rasterize.New(
			rasterize.Width(datacatFlags.mask.width),
			rasterize.Height(datacatFlags.mask.height),
			rasterize.Invert(datacatFlags.mask.invert),
			rasterize.WebMercator(datacatFlags.mask.mercator),
		)
		mask, err := rasterizer.Rasterize(doc)
		if err != nil {
			log.Fatalln(err)
		}

		prefix := datacatFlags.mask.outPrefix
		if prefix == "" {
			input := datacatFlags.mask.input
			prefix = strings.TrimSuffix(input, filepath.Ext(input))
		}

		meta := rasterizer.NewMetadata(mask, datacatFlags.mask.input)
		meta.OutputNPY = prefix + ".npy"
		if err := writeOutput(meta.OutputNPY, func(w io.Writer) error {
			return rasterize.WriteNPY(w, mask)
		}); err != nil {
			log.Fatalln(err)
		}

		switch datacatFlags.mask.format {
		case "png":
			meta.OutputImage = prefix + ".png"
			meta.ImageFormat = "png"
			err = writeOutput(meta.OutputImage, func(w io.Writer) error {
				return rasterize.WritePNG(w, mask)
			})
		case "jpg", "jpeg":
			meta.OutputImage = prefix + ".jpg"
			meta.ImageFormat = "jpeg"
			err = writeOutput(meta.OutputImage, func(w io.Writer) error {
				return rasterize.WriteJPEG(w, mask)
			})
		case "none":
		default:
			wrapFatalln("unsupported image format "+datacatFlags.mask.format+": use png, jpg or none", nil)
			return
		}
		if err != nil {
			log.Fatalln(err)
		}

		if err := writeOutput(prefix+".meta.json", func(w io.Writer) error {
			return rasterize.WriteMetadata(w, meta)
		}); err != nil {
			log.Fatalln(err)
		}

		log.Printf("mask %dx%d rendered from %s, %d pixel(s) set",
			mask.Width, mask.Height, datacatFlags.mask.input, mask.Count())
	},
}

func writeOutput(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func init() {
	rootCmd.AddCommand(maskCmd)
	addMaskInputFlag(maskCmd)
	addMaskOutPrefixFlag(maskCmd)
	addMaskSizeFlags(maskCmd)
	addMaskFormatFlag(maskCmd)
	addMaskInvertFlag(maskCmd)
	addMaskMercatorFlag(maskCmd)
	requireFlags(maskCmd, "input")
}
