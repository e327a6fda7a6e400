// Command sentimental predicts product review star ratings from review
// text. It trains a word embedding space over a training CSV, averages
// embeddings into per-review features, fits a ridge regressor across a
// regularization sweep, and reports held-out accuracy plus per-user
// language factors derived by PCA.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Avik9/Sentimental-Analysis/config"
	"github.com/Avik9/Sentimental-Analysis/corpus"
	"github.com/Avik9/Sentimental-Analysis/sample"
)

// version is set at build time via ldflags, defaults to "dev" for local builds
var version = "dev"

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: sentimental [flags] <train.csv> <trial.csv>

Flags:
`)
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  sentimental -dataset food food_train.csv food_trial.csv
  sentimental -demo
`)
}

func main() {
	showVersionFlag := flag.Bool("version", false, "print version and exit")
	demoFlag := flag.Bool("demo", false, "run the pipeline on the built-in demo dataset")
	datasetFlag := flag.String("dataset", "", "dataset profile name (food, music, musicAndPetsup)")
	configFlag := flag.String("config", "", "path to an optional YAML config file")
	flag.Usage = usage
	flag.Parse()

	if *showVersionFlag {
		fmt.Println(version)
		return
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	input, err := resolveInput(cfg, *demoFlag, *datasetFlag, flag.Args())
	if err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "%v\n\n", err)
			usage()
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result, err := runPipeline(log, input)
	if err != nil {
		log.Error().Err(err).Msg("pipeline failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(result.Render())
}

// errUsage marks command-line mistakes, reported with the usage text and
// exit status 2 rather than a plain failure.
var errUsage = errors.New("usage error")

// resolveInput validates the command line and loads the corpora. Exactly
// two positional arguments are required unless -demo is set; there is no
// fallback to default filenames.
func resolveInput(cfg *config.Config, demo bool, dataset string, args []string) (pipelineInput, error) {
	if demo {
		if len(args) != 0 {
			return pipelineInput{}, fmt.Errorf("%w: -demo takes no file arguments", errUsage)
		}
		return pipelineInput{
			TrainCorpus: sample.Train(),
			TrialCorpus: sample.Trial(),
			TrialFile:   "demo",
			Profile: config.Profile{
				MinTokenCount: 1,
				CheckItems:    sample.CheckItems,
			},
		}, nil
	}

	if len(args) != 2 {
		return pipelineInput{}, fmt.Errorf("%w: expected exactly 2 file arguments, got %d", errUsage, len(args))
	}
	if dataset == "" {
		return pipelineInput{}, fmt.Errorf("%w: -dataset is required", errUsage)
	}

	profile, err := cfg.Profile(dataset)
	if err != nil {
		return pipelineInput{}, fmt.Errorf("%w: %v", errUsage, err)
	}

	trainCorpus, err := corpus.Load(args[0])
	if err != nil {
		return pipelineInput{}, fmt.Errorf("loading training file: %w", err)
	}
	trialCorpus, err := corpus.Load(args[1])
	if err != nil {
		return pipelineInput{}, fmt.Errorf("loading trial file: %w", err)
	}

	return pipelineInput{
		TrainCorpus: trainCorpus,
		TrialCorpus: trialCorpus,
		TrialFile:   args[1],
		Profile:     profile,
	}, nil
}

// newLogger builds the run-scoped console logger. Every line carries the
// run id so interleaved runs stay distinguishable.
func newLogger(level string) zerolog.Logger {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(logLevel).
		With().
		Timestamp().
		Str("run_id", uuid.New().String()).
		Logger()
}
