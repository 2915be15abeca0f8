// Copyright © 2018 One Concern

package cmd

import (
	"log"

	"github.com/oneconcern/datacat/pkg/catalog/status"
	"github.com/oneconcern/datacat/pkg/errors"
	"github.com/oneconcern/datacat/pkg/model"
	"github.com/spf13/cobra"
)

var initOptions struct {
	Name        string
	Description string
}

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new collection",
	Long: `Initialize a new collection in the collection directory.

An empty catalog is written together with the scaffold of the readme and the checksum
file. A directory already holding a catalog is left untouched.
`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := initContext()
		collection, err := initCollection()
		if err != nil {
			log.Fatalln(err)
		}
		defer collection.Close()

		_, err = collection.Catalog().Load(ctx)
		if err == nil {
			log.Printf("%s already holds a collection, no action taken", collection.BaseDir())
			return
		}
		if !errors.Is(err, status.ErrCatalogNotFound) {
			log.Fatalln(err)
		}

		desc := model.CatalogDescriptor{
			Name:        initOptions.Name,
			Description: initOptions.Description,
			Version:     model.CurrentCatalogVersion,
			UpdatedAt:   model.GetCatalogTimeStamp(),
		}
		if err := collection.Catalog().Save(ctx, desc); err != nil {
			log.Fatalln(err)
		}
		if err := collection.Catalog().WriteArtifacts(ctx); err != nil {
			log.Fatalln(err)
		}
		log.Printf("%s has been initialized", initOptions.Name)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	fls := initCmd.Flags()
	fls.StringVar(&initOptions.Name, "name", "", "The name of the collection")
	fls.StringVar(&initOptions.Description, "description", "", "A description of the collection, rendered at the top of the readme")
	requireFlags(initCmd, "name")
}
