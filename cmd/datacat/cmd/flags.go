// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oneconcern/datacat"
	"github.com/oneconcern/datacat/pkg/dlogger"
	"github.com/oneconcern/datacat/pkg/rasterize"
	"github.com/oneconcern/datacat/pkg/storage"
	"github.com/oneconcern/datacat/pkg/storage/localfs"
	"github.com/oneconcern/datacat/pkg/storage/sthree"
	"github.com/oneconcern/pipelines/pkg/cli/envk"
	"github.com/oneconcern/pipelines/pkg/log"
	"github.com/oneconcern/pipelines/pkg/tracing"
	"github.com/opentracing/opentracing-go"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	jprom "github.com/uber/jaeger-lib/metrics/prometheus"
	"go.uber.org/zap"
)

type flagsT struct {
	dataset struct {
		Name        string
		Origin      string
		Authors     []string
		Date        string
		License     string
		Description string
		RemoveFile  bool
	}
	check struct {
		watch       bool
		jaegerAgent string
	}
	render struct {
		write bool
	}
	preview struct {
		rows      int
		delimiter string
		stats     bool
	}
	mask struct {
		input     string
		outPrefix string
		width     int
		height    int
		format    string
		invert    bool
		mercator  bool
	}
	mirror struct {
		tolerateFailure bool
	}
	root struct {
		collection string
		cacheDir   string
		logLevel   string
		cpuProf    bool
	}
}

var datacatFlags = flagsT{}

func addCollectionFlag(cmd *cobra.Command) string {
	c := "collection"
	cmd.PersistentFlags().StringVar(&datacatFlags.root.collection, c, "",
		"The directory holding the curated collection (defaults to the current directory)")
	return c
}

func addCacheDirFlag(cmd *cobra.Command) string {
	c := "cache-dir"
	cmd.PersistentFlags().StringVar(&datacatFlags.root.cacheDir, c, "",
		"The directory holding the digest cache (defaults to .datacat/hashcache under the collection)")
	return c
}

func addLogLevelFlag(cmd *cobra.Command) string {
	loglevel := "loglevel"
	cmd.PersistentFlags().StringVar(&datacatFlags.root.logLevel, loglevel, "",
		"The logging level. Levels by increasing order of verbosity: none, info, debug")
	return loglevel
}

func addCPUProfFlag(cmd *cobra.Command) string {
	c := "cpuprof"
	cmd.PersistentFlags().BoolVar(&datacatFlags.root.cpuProf, c, false, "Toggle runtime profiling")
	return c
}

func addFileFlag(cmd *cobra.Command) string {
	file := "file"
	cmd.Flags().StringVar(&datacatFlags.dataset.Name, file, "", "The name of the dataset file in the collection")
	return file
}

func addOriginFlag(cmd *cobra.Command) string {
	origin := "origin"
	cmd.Flags().StringVar(&datacatFlags.dataset.Origin, origin, "",
		"The organization or service the file originates from")
	return origin
}

func addAuthorFlag(cmd *cobra.Command) string {
	author := "author"
	cmd.Flags().StringSliceVar(&datacatFlags.dataset.Authors, author, nil,
		`An author of the dataset, as "Name <email>". Repeat the flag for several authors`)
	return author
}

func addDateFlag(cmd *cobra.Command) string {
	date := "date"
	cmd.Flags().StringVar(&datacatFlags.dataset.Date, date, "",
		`The release date as published upstream, e.g. "2018" or "2018-11-30"`)
	return date
}

func addLicenseFlag(cmd *cobra.Command) string {
	license := "license"
	cmd.Flags().StringVar(&datacatFlags.dataset.License, license, "",
		"The license terms the file is distributed under")
	return license
}

func addDescriptionFlag(cmd *cobra.Command) string {
	description := "description"
	cmd.Flags().StringVar(&datacatFlags.dataset.Description, description, "",
		"A free form description of the dataset")
	return description
}

func addRemoveFileFlag(cmd *cobra.Command) string {
	c := "rm-file"
	cmd.Flags().BoolVar(&datacatFlags.dataset.RemoveFile, c, false,
		"Also remove the data file from the collection, not just its catalog entry")
	return c
}

func addWatchFlag(cmd *cobra.Command) string {
	c := "watch"
	cmd.Flags().BoolVar(&datacatFlags.check.watch, c, false,
		"Keep watching the collection directory and re-check on every change")
	return c
}

func addJaegerAgentFlag(cmd *cobra.Command) string {
	c := "jaeger-agent"
	cmd.Flags().StringVar(&datacatFlags.check.jaegerAgent, c, envk.StringOrDefault("JAEGER_HOST", "jaeger-agent:6831"),
		"The jaeger agent host:port store accesses are traced to while watching")
	return c
}

func addWriteFlag(cmd *cobra.Command) string {
	c := "write"
	cmd.Flags().BoolVar(&datacatFlags.render.write, c, false,
		"Write the rendered artifact into the collection instead of printing it")
	return c
}

func addRowsFlag(cmd *cobra.Command) string {
	c := "rows"
	cmd.Flags().IntVar(&datacatFlags.preview.rows, c, 10, "Number of data rows to preview")
	return c
}

func addDelimiterFlag(cmd *cobra.Command) string {
	c := "delimiter"
	cmd.Flags().StringVar(&datacatFlags.preview.delimiter, c, "",
		`Field delimiter. Sniffed from the header when unset; use "tab" for tab separated files`)
	return c
}

func addStatsFlag(cmd *cobra.Command) string {
	c := "stats"
	cmd.Flags().BoolVar(&datacatFlags.preview.stats, c, false,
		"Scan the whole file and report row and column counts instead of a preview")
	return c
}

func addMaskInputFlag(cmd *cobra.Command) string {
	c := "input"
	cmd.Flags().StringVar(&datacatFlags.mask.input, c, "", "The GeoJSON file to rasterize")
	return c
}

func addMaskOutPrefixFlag(cmd *cobra.Command) string {
	c := "out-prefix"
	cmd.Flags().StringVar(&datacatFlags.mask.outPrefix, c, "",
		"Prefix for the produced files (defaults to the input path without its extension)")
	return c
}

func addMaskSizeFlags(cmd *cobra.Command) {
	fls := cmd.Flags()
	fls.IntVar(&datacatFlags.mask.width, "width", rasterize.DefaultWidth, "Mask width in pixels")
	fls.IntVar(&datacatFlags.mask.height, "height", rasterize.DefaultHeight, "Mask height in pixels")
}

func addMaskFormatFlag(cmd *cobra.Command) string {
	c := "format"
	cmd.Flags().StringVar(&datacatFlags.mask.format, c, "png",
		"Image rendering written next to the npy array: png, jpg or none")
	return c
}

func addMaskInvertFlag(cmd *cobra.Command) string {
	c := "invert"
	cmd.Flags().BoolVar(&datacatFlags.mask.invert, c, false,
		"Invert the mask: pixels inside the polygons become 0, outside 1")
	return c
}

func addMaskMercatorFlag(cmd *cobra.Command) string {
	c := "mercator"
	cmd.Flags().BoolVar(&datacatFlags.mask.mercator, c, false,
		"Sample the mask over web mercator (EPSG:3857) instead of lon/lat coordinates")
	return c
}

func addTolerateFailureFlag(cmd *cobra.Command) string {
	c := "tolerate-failure"
	cmd.Flags().BoolVar(&datacatFlags.mirror.tolerateFailure, c, false,
		"Carry on mirroring to the remaining stores when one of them fails")
	return c
}

/** parameters struct from other formats */

// apply config file + env vars to structure used to parse cli flags
func (flags *flagsT) setDefaultsFromConfig(c *datacat.Config) {
	if flags.root.collection == "" {
		flags.root.collection = c.Collection
	}
	if flags.root.cacheDir == "" {
		flags.root.cacheDir = c.CacheDir
	}
	if flags.root.logLevel == "" {
		flags.root.logLevel = c.LogLevel
	}
}

/** combined config (file + env var) and parameters (pflags) to runtime objects */

func initContext() context.Context {
	return context.Background()
}

func getLogger() (*zap.Logger, error) {
	level := datacatFlags.root.logLevel
	if level == "" {
		level = dlogger.LogLevelInfo
	}
	return dlogger.GetLogger(level)
}

func initCollection(extra ...datacat.Option) (*datacat.Collection, error) {
	logger, err := getLogger()
	if err != nil {
		return nil, err
	}
	baseDir := datacatFlags.root.collection
	if baseDir == "" {
		baseDir = "."
	}
	cacheDir := datacatFlags.root.cacheDir
	if cacheDir == "" {
		cacheDir = datacat.DefaultCacheDir(baseDir)
	}
	opts := append([]datacat.Option{
		datacat.WithLogger(logger),
		datacat.WithCacheDir(cacheDir),
	}, extra...)
	return datacat.New(baseDir, opts...)
}

// initTracer reports store accesses to a jaeger agent. Tracing failures are
// not fatal: the watch loop falls back to a noop tracer.
func initTracer(hostPort string) (opentracing.Tracer, io.Closer, error) {
	logger, err := getLogger()
	if err != nil {
		return nil, nil, err
	}
	zlg := log.NewFactory(logger.With(zap.String("service", "datacat")))
	tr, closer, err := tracing.Init("datacat", jprom.New(), zlg, hostPort)
	if err != nil {
		zlg.Bg().Info("failed to initialize tracing, falling back to noop tracer", zap.Error(err))
		tr = &opentracing.NoopTracer{}
	}
	return tr, closer, nil
}

// mirrorStore resolves a mirror destination to a backend store. Destinations
// are either s3://<bucket> urls or local directories.
func mirrorStore(dest string) (storage.Store, error) {
	if strings.HasPrefix(dest, "s3://") {
		bucket := strings.TrimPrefix(dest, "s3://")
		if bucket == "" {
			return nil, fmt.Errorf("missing bucket name in %q", dest)
		}
		return sthree.New(sthree.Bucket(bucket)), nil
	}
	if err := os.MkdirAll(dest, 0777); err != nil {
		return nil, fmt.Errorf("failed to create mirror directory: %w", err)
	}
	return localfs.New(afero.NewBasePathFs(afero.NewOsFs(), dest)), nil
}

/** misc util */

// requireFlags sets a flag (local to the command or inherited) as required
func requireFlags(cmd *cobra.Command, flags ...string) {
	for _, flag := range flags {
		err := cmd.MarkFlagRequired(flag)
		if err != nil {
			err = cmd.MarkPersistentFlagRequired(flag)
		}
		if err != nil {
			wrapFatalln(fmt.Sprintf("error attempting to mark the required flag %q", flag), err)
			return
		}
	}
}
