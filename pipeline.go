package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Avik9/Sentimental-Analysis/config"
	"github.com/Avik9/Sentimental-Analysis/corpus"
	"github.com/Avik9/Sentimental-Analysis/embedding"
	"github.com/Avik9/Sentimental-Analysis/feature"
	"github.com/Avik9/Sentimental-Analysis/predict"
	"github.com/Avik9/Sentimental-Analysis/report"
	"github.com/Avik9/Sentimental-Analysis/userfactor"
)

// pipelineInput bundles everything one end-to-end run needs.
type pipelineInput struct {
	TrainCorpus corpus.Corpus
	TrialCorpus corpus.Corpus
	TrialFile   string
	Profile     config.Profile

	// Workers overrides the embedding trainer's worker count when
	// positive. Tests pin it to 1 for reproducible vectors.
	Workers int
}

// runPipeline executes both stages over already-loaded corpora and returns
// the assembled report. Every failure terminates the run; there is no
// partial or degraded result.
func runPipeline(log zerolog.Logger, in pipelineInput) (report.Report, error) {
	// Stage 1.3: one embedding space per corpus. The trial set gets its
	// own space, trained with the same frequency threshold.
	trainSpace, err := trainEmbeddingSpace(log, "train", in.TrainCorpus, in.Profile, in.Workers)
	if err != nil {
		return report.Report{}, err
	}
	trialSpace, err := trainEmbeddingSpace(log, "trial", in.TrialCorpus, in.Profile, in.Workers)
	if err != nil {
		return report.Report{}, err
	}

	// Stage 1.4: averaged embedding features per review.
	trainX, err := feature.Matrix(trainSpace, in.TrainCorpus)
	if err != nil {
		return report.Report{}, fmt.Errorf("extracting training features: %w", err)
	}
	trialX, err := feature.Matrix(trialSpace, in.TrialCorpus)
	if err != nil {
		return report.Report{}, fmt.Errorf("extracting trial features: %w", err)
	}

	// Stage 1.5: regularization sweep on the held-out set.
	trainY := in.TrainCorpus.Ratings()
	trialY := in.TrialCorpus.Ratings()

	model, sweeps, err := predict.BuildRatingPredictor(trainX, trainY, trialX, trialY)
	if err != nil {
		return report.Report{}, fmt.Errorf("building rating predictor: %w", err)
	}

	predictions := model.Predict(trialX)
	mae := predict.MeanAbsoluteError(trialY, predictions)
	r, p := predict.PearsonR(trialY, predictions)
	log.Info().
		Float64("alpha", model.Alpha).
		Float64("mae", mae).
		Float64("pearson_r", r).
		Msg("rating predictor selected")

	// Stage 2: user language representations and PCA factors. The factors
	// are computed and reported but not yet folded back into the
	// predictor's features.
	profiles := userfactor.GroupByUser(in.TrainCorpus, in.TrialCorpus)
	representations, err := userfactor.LanguageRepresentations(trainSpace, profiles)
	if err != nil {
		return report.Report{}, fmt.Errorf("building user representations: %w", err)
	}

	_, projections, err := userfactor.FitTransform(representations)
	if err != nil {
		return report.Report{}, fmt.Errorf("fitting user factors: %w", err)
	}
	log.Info().
		Int("users", len(projections)).
		Int("factors", userfactor.Components).
		Msg("user factors computed")

	return report.Report{
		TrialFile: in.TrialFile,
		BestAlpha: model.Alpha,
		MAE:       mae,
		PearsonR:  r,
		PearsonP:  p,
		Sweeps:    sweeps,
		Checks:    spotChecks(in.TrialCorpus, predictions, in.Profile.CheckItems),
		UserCount: len(projections),
		FactorDim: userfactor.Components,
	}, nil
}

// trainEmbeddingSpace trains one embedding space and logs its vocabulary size.
func trainEmbeddingSpace(log zerolog.Logger, name string, records corpus.Corpus, profile config.Profile, workers int) (*embedding.Space, error) {
	cfg := embedding.DefaultConfig(profile.MinTokenCount)
	if workers > 0 {
		cfg.Workers = workers
	}

	space, err := embedding.Train(records.Documents(), cfg)
	if err != nil {
		return nil, fmt.Errorf("training %s embedding space: %w", name, err)
	}

	log.Info().
		Str("corpus", name).
		Int("documents", len(records)).
		Int("vocabulary", space.VocabularySize()).
		Int("min_count", profile.MinTokenCount).
		Msg("embedding space trained")
	return space, nil
}

// spotChecks resolves each configured item id against the trial corpus.
// Ids with no matching row are reported as misses rather than failing.
func spotChecks(trial corpus.Corpus, predictions []float64, itemIDs []int) []report.SpotCheck {
	checks := make([]report.SpotCheck, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		index := trial.IndexOfItem(itemID)
		if index < 0 {
			checks = append(checks, report.SpotCheck{ItemID: itemID})
			continue
		}
		checks = append(checks, report.SpotCheck{
			ItemID:    itemID,
			Found:     true,
			Predicted: predictions[index],
			Truth:     trial[index].Rating,
			Snippet:   strings.Join(trial[index].Tokens, " "),
		})
	}
	return checks
}
