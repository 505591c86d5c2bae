// Package annotate opens a raw CCAM file, applies the reference metadata and
// saves the result.
package annotate

import (
	"fmt"
	"log/slog"

	"github.com/rtm0/ccammeta/internal/dataset"
	"github.com/rtm0/ccammeta/internal/metadata"
	"github.com/rtm0/ccammeta/internal/writer"
)

// Options configures a single annotation run.
type Options struct {
	Metadata metadata.Options
	// DryRun resolves the output path without writing anything.
	DryRun bool
}

// Prepare opens inputPath and applies the metadata in memory.
func Prepare(logger *slog.Logger, inputPath string, opts Options) (*dataset.Dataset, error) {
	ds, err := dataset.Open(inputPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("dataset summary", ds.Summary()...)

	if _, err := metadata.Apply(ds, opts.Metadata); err != nil {
		return nil, fmt.Errorf("apply metadata to %s: %w", inputPath, err)
	}
	return ds, nil
}

// File annotates inputPath and writes the result to outputPath, or to a
// name derived from the dataset in the working directory when outputPath is
// empty. It returns a status line naming the saved file.
func File(logger *slog.Logger, inputPath, outputPath string, opts Options) (string, error) {
	ds, err := Prepare(logger, inputPath, opts)
	if err != nil {
		return "", err
	}

	if outputPath == "" {
		outputPath, err = metadata.OutputFileName(ds)
		if err != nil {
			return "", fmt.Errorf("derive output file name: %w", err)
		}
	}
	if opts.DryRun {
		logger.Info("dry run, nothing written", "output", outputPath)
		return "would save at " + outputPath, nil
	}

	if err := writer.New(logger).Write(ds, outputPath, writer.DefaultEncoding(ds)); err != nil {
		return "", fmt.Errorf("save %s: %w", outputPath, err)
	}
	logger.Info("metadata applied", "input", inputPath, "output", outputPath)
	return "saved at " + outputPath, nil
}
