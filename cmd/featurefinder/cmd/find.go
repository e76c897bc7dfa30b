package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ChrisMcGann/FeatureFinder/pkg/config"
	"github.com/ChrisMcGann/FeatureFinder/pkg/logging"
	"github.com/ChrisMcGann/FeatureFinder/pkg/reader"
	"github.com/ChrisMcGann/FeatureFinder/pkg/umc"
	"github.com/ChrisMcGann/FeatureFinder/pkg/writer/sqlite"
	"github.com/ChrisMcGann/FeatureFinder/pkg/writer/tsv"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	// Flags for find command
	paramFile    string
	inputFiles   []string
	outputDir    string
	minLength    int
	indexOffset  int
	printMembers bool
	dbFile       string
	jobs         int
)

func init() {
	findCmd.Flags().StringVarP(&paramFile, "param", "p", "", "Parameter file (INI or YAML)")
	findCmd.Flags().StringSliceVarP(&inputFiles, "in", "i", nil, "Input _isos.csv or .pek file; repeat for several datasets (overrides InputFileName)")
	findCmd.Flags().StringVarP(&outputDir, "out-dir", "o", "", "Output directory (overrides OutputDirectory)")
	findCmd.Flags().IntVar(&minLength, "min-length", 0, "Minimum members per feature (overrides MinFeatureLengthPoints)")
	findCmd.Flags().IntVar(&indexOffset, "index-offset", 0, "Offset added to every written feature index")
	findCmd.Flags().BoolVar(&printMembers, "print-members", false, "Append the member peaks of each feature to the feature table")
	findCmd.Flags().StringVar(&dbFile, "db", "", "Also write features to this SQLite database")
	findCmd.Flags().IntVarP(&jobs, "jobs", "j", 1, "Number of datasets processed concurrently")
}

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find LC-MS features in isotope peak files",
	Long: `Load deconvoluted isotope peaks, cluster them into UMCs and write the feature
table and the feature-to-peak map next to a run log.

Examples:
  # Cluster with settings from a parameter file
  featurefinder find --param FeatureFinder.ini

  # Several datasets, two at a time, with features also stored in SQLite
  featurefinder find --in a_isos.csv --in b_isos.csv.zst --out-dir out --jobs 2 --db features.db`,
	RunE: runFind,
}

// dataset is one input file processed by find.
type dataset struct {
	input    string
	base     string // Output path prefix
	settings config.Settings
	logger   *logging.Logger
	db       *sqlite.Writer
}

func runFind(cmd *cobra.Command, args []string) error {
	settings := config.Default()
	if paramFile != "" {
		var err error
		settings, err = config.Load(paramFile)
		if err != nil {
			return err
		}
	}

	// Command line overrides
	inputs := inputFiles
	if len(inputs) == 0 && settings.Files.InputFileName != "" {
		inputs = []string{settings.Files.InputFileName}
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no input file: set InputFileName in the parameter file or use --in")
	}
	if cmd.Flags().Changed("out-dir") {
		settings.Files.OutputDirectory = outputDir
	}
	if cmd.Flags().Changed("min-length") {
		settings.UMCCreation.MinFeatureLengthPoints = minLength
	}
	settings.Normalize()
	if err := settings.Validate(); err != nil {
		return err
	}
	if jobs < 1 {
		return fmt.Errorf("--jobs must be at least 1, got %d", jobs)
	}
	bases, err := outputBases(inputs, settings.Files.OutputDirectory)
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(settings.Files.OutputDirectory, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var db *sqlite.Writer
	if dbFile != "" {
		db, err = sqlite.NewWriter(dbFile)
		if err != nil {
			return fmt.Errorf("failed to create output database: %w", err)
		}
		defer db.Close()
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(jobs)
	for i, input := range inputs {
		ds := dataset{input: input, base: bases[i], settings: *settings, logger: logger, db: db}
		g.Go(func() error {
			if err := ds.process(ctx); err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if db != nil {
		if err := db.Finalize(); err != nil {
			return fmt.Errorf("failed to finalize database: %w", err)
		}
		fmt.Printf("Database: %s\n", dbFile)
	}
	return nil
}

// outputBases returns the output path prefix of each input. Inputs that
// would write to the same files are rejected.
func outputBases(inputs []string, outDir string) ([]string, error) {
	bases := make([]string, len(inputs))
	seen := make(map[string]string, len(inputs))
	for i, input := range inputs {
		base := filepath.Clean(tsv.BaseName(input, outDir))
		if prev, ok := seen[base]; ok {
			return nil, fmt.Errorf("inputs %s and %s would both write %s%s", prev, input, base, tsv.FeaturesSuffix)
		}
		seen[base] = input
		bases[i] = base
	}
	return bases, nil
}

// process runs the full pipeline for one input file.
func (d *dataset) process(ctx context.Context) error {
	if _, err := os.Stat(d.input); err != nil {
		return fmt.Errorf("input file does not exist: %w", err)
	}

	runID := uuid.NewString()
	runLog, err := d.logger.Tee(d.base+tsv.LogSuffix, slog.LevelInfo)
	if err != nil {
		return err
	}
	defer runLog.Close()
	log := runLog.WithRunID(runID).WithDataset(filepath.Base(d.input))

	if d.settings.DataFilters.ProcessDataInChunks {
		log.Warn("chunked processing is not supported, clustering the full mass range in one pass",
			"chunk_size", d.settings.DataFilters.ChunkSize,
			"max_points_per_chunk", d.settings.DataFilters.MaxDataPointsPerChunk)
	}

	log.Info("loading peaks", "path", d.input)
	data, err := reader.Load(d.input, d.settings.Filter())
	if err != nil {
		return err
	}
	log.Info("peaks loaded",
		"format", data.Format.String(),
		"ims", data.Store.IMS,
		"read", data.Filter.Seen,
		"kept", data.Filter.Kept(),
		"rejected", data.Filter.Rejected())

	if data.Wiff {
		d.settings.ApplyWiffPreset()
		log.Info("WIFF source detected, using WIFF clustering settings")
	}

	res, err := umc.Run(ctx, data.Store, d.settings.Options(), log.Logger)
	if err != nil {
		return err
	}

	opts := tsv.Options{IndexOffset: indexOffset, PrintMembers: printMembers}
	features, mapping, err := tsv.WriteFiles(d.base, res, opts)
	if err != nil {
		return err
	}
	log.Info("features written", "features", features, "map", mapping)

	if d.db != nil {
		run := sqlite.Run{ID: runID, SourceFile: d.input, IndexOffset: indexOffset, Elapsed: res.Elapsed}
		if err := d.db.WriteResult(run, res); err != nil {
			return err
		}
	}

	fmt.Printf("%s: %d peaks, %d clusters, %d features (%s)\n  Features: %s\n  Map: %s\n",
		d.input, data.Store.Len(), res.ClustersBeforeFilter, len(res.UMCs),
		res.Elapsed.Round(time.Millisecond), features, mapping)
	return nil
}
