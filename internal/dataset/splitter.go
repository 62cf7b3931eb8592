// Package dataset implements the image-to-tensor dataset splitter: enumerate a
// flat directory of images, shuffle, transform each accepted file into a
// normalized tensor and persist it to a train or test directory by position.
package dataset

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/splitset-ml/splitset/internal/serialization"
)

// Defaults mirroring the pipeline this tool grew out of.
const (
	DefaultTrainFraction = 0.8
	DefaultDatasetSize   = 25000
	DefaultTargetSize    = 300

	// SampleExt is the extension of serialized samples.
	SampleExt = ".tns"
)

// Config parameterizes one split run. The zero value is not usable:
// SourceDir is required; everything else has a default.
type Config struct {
	// SourceDir is the flat directory of input images.
	SourceDir string

	// TrainDir and TestDir are the output directories. When empty they
	// default to tensors/train and tensors/test under SourceDir.
	TrainDir string
	TestDir  string

	// TrainFraction of DatasetSize sets the split threshold: samples whose
	// shuffled position is below it land in TrainDir.
	TrainFraction float64

	// DatasetSize is the nominal dataset size the threshold is computed
	// against. The default (25000) is deliberate: the original pipeline
	// compared positions against 0.8 * 25000 no matter how many files were
	// present, and callers that want a proportional split of the actual
	// inputs must set DatasetSize to 0.
	DatasetSize int

	// TargetSize is the output resolution (TargetSize x TargetSize).
	TargetSize int

	// Accept decides which collected files are transformed. Defaults to
	// IsJPEG. Rejected files are skipped and counted, never written.
	Accept func(path string) bool

	// Rand is the shuffle source. Nil uses the process global source, so
	// assignment is not reproducible across runs.
	Rand *rand.Rand

	// Progress, when non-nil, receives a progress bar during the run.
	Progress io.Writer
}

func (c *Config) applyDefaults() {
	if c.TrainDir == "" {
		c.TrainDir = filepath.Join(c.SourceDir, "tensors", "train")
	}
	if c.TestDir == "" {
		c.TestDir = filepath.Join(c.SourceDir, "tensors", "test")
	}
	if c.TrainFraction == 0 {
		c.TrainFraction = DefaultTrainFraction
	}
	if c.TargetSize == 0 {
		c.TargetSize = DefaultTargetSize
	}
	if c.Accept == nil {
		c.Accept = IsJPEG
	}
}

// splitThreshold returns the index boundary below which samples go to train.
func (c *Config) splitThreshold(actualCount int) int {
	size := c.DatasetSize
	if size == 0 {
		size = actualCount
	}
	return int(c.TrainFraction * float64(size))
}

// Result summarizes one split run.
type Result struct {
	Train   int // samples written to TrainDir
	Test    int // samples written to TestDir
	Skipped int // collected files rejected by the Accept predicate
}

// Total returns the number of samples written.
func (r Result) Total() int {
	return r.Train + r.Test
}

// Run executes one split pass. The first failure aborts the run; outputs
// written before the failure are left in place, and re-running overwrites
// same-named outputs without conflict detection.
func Run(cfg Config) (Result, error) {
	var res Result

	if cfg.SourceDir == "" {
		return res, fmt.Errorf("source directory is required")
	}
	cfg.applyDefaults()

	files, err := CollectInputs(cfg.SourceDir)
	if err != nil {
		return res, err
	}

	Shuffle(files, cfg.Rand)
	threshold := cfg.splitThreshold(len(files))

	for _, dir := range []string{cfg.TrainDir, cfg.TestDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return res, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var bar *progressbar.ProgressBar
	if cfg.Progress != nil {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("splitting"),
			progressbar.OptionSetWriter(cfg.Progress),
			progressbar.OptionShowCount(),
		)
	}

	// The position index counts every collected file, accepted or not,
	// exactly as the original enumeration did.
	for index, file := range files {
		if bar != nil {
			_ = bar.Add(1)
		}

		if !cfg.Accept(file) {
			res.Skipped++
			continue
		}

		destDir := cfg.TestDir
		if index < threshold {
			destDir = cfg.TrainDir
		}

		if err := processFile(file, destDir, cfg.TargetSize); err != nil {
			return res, err
		}

		if destDir == cfg.TrainDir {
			res.Train++
		} else {
			res.Test++
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}
	return res, nil
}

// processFile transforms one image and writes it as a serialized sample named
// after the input's base name.
func processFile(file, destDir string, targetSize int) error {
	raw, err := LoadImageTensor(file, targetSize)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	outPath := filepath.Join(destDir, base+SampleExt)

	meta := map[string]string{"source": filepath.Base(file)}
	if err := serialization.WriteSample(outPath, raw, meta); err != nil {
		return fmt.Errorf("failed to write sample for %s: %w", file, err)
	}
	return nil
}
