package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/oneconcern/datacat"
	"github.com/oneconcern/datacat/pkg/catalog"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the published properties of the collection",
	Long: `Verify the published properties of the collection:

  * every cataloged file exists in the data directory
  * the recorded sha256 digest of every file matches its content
  * the catalog carries no duplicate entries
  * no uncataloged file sits in the data directory
  * the readme table and the checksum file match the catalog

Violations are reported on stderr and the command exits non zero. With --watch the
collection directory is watched and re-checked on every change until interrupted.
`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := initContext()

		var extra []datacat.Option
		if datacatFlags.check.watch {
			tr, closer, err := initTracer(datacatFlags.check.jaegerAgent)
			if err != nil {
				log.Fatalln(err)
			}
			if closer != nil {
				defer closer.Close()
			}
			extra = append(extra, datacat.WithTracer(tr))
		}

		collection, err := initCollection(extra...)
		if err != nil {
			log.Fatalln(err)
		}
		defer collection.Close()

		if datacatFlags.check.watch {
			runWatch(ctx, collection)
			return
		}

		if err := collection.Check(ctx); err != nil {
			violations := catalog.Violations(err)
			for _, violation := range violations {
				log.Println("violation:", violation)
			}
			wrapFatalWithCodef(1, "%d violation(s) found", len(violations))
			return
		}
		infoLogger.Println("collection is consistent")
	},
}

func runWatch(ctx context.Context, collection *datacat.Collection) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	results, err := collection.Catalog().Watch(ctx, collection.BaseDir())
	if err != nil {
		log.Fatalln(err)
	}

	log.Println("watching", collection.BaseDir())
	for {
		select {
		case <-interrupt:
			cancel()
		case res, ok := <-results:
			if !ok {
				return
			}
			if res == nil {
				infoLogger.Println("collection is consistent")
				continue
			}
			for _, violation := range catalog.Violations(res) {
				log.Println("violation:", violation)
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
	addWatchFlag(checkCmd)
	addJaegerAgentFlag(checkCmd)
}
