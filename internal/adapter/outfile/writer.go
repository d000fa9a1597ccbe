// Package outfile persists pointing series as plain-text files, one
// "timestamp azimuth elevation" row per sample.
package outfile

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gitlab.com/rt2-ephem.net/internal/config"
	"gitlab.com/rt2-ephem.net/internal/core/ports/primary"
	"gitlab.com/rt2-ephem.net/internal/core/ports/secondary"
	"gitlab.com/rt2-ephem.net/internal/domain"
)

var _ secondary.SeriesStore = (*Writer)(nil)

// Writer is a SeriesStore writing into a flat output directory.
type Writer struct {
	dir    string
	logger primary.Logger
}

// NewWriter creates a new writer
func NewWriter(cfg *config.OutputConfig, logger primary.Logger) *Writer {
	return &Writer{dir: cfg.Dir, logger: logger}
}

// FileName renders the published name for a series: the object label plus
// the window start.
func FileName(name string, start time.Time) string {
	return fmt.Sprintf("%s_%s.txt", name, start.Format(domain.TimeLayout))
}

// WriteSeries implements the SeriesStore interface. The series goes into a
// temp file first and is renamed into place, so a reader polling the
// directory never picks up a partial file.
func (w *Writer) WriteSeries(_ context.Context, name string, start time.Time, series *domain.SampleSeries) (string, error) {
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("object name %q not usable as a file name", name)
	}
	fileName := FileName(name, start)

	tmp, err := os.CreateTemp(w.dir, ".pointing-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	bw := bufio.NewWriter(tmp)
	for _, sample := range series.Samples {
		_, err := fmt.Fprintf(bw, "%s %s %s\n",
			sample.Time.Format(domain.TimeLayout),
			domain.FormatDegrees(sample.AzDeg),
			domain.FormatDegrees(sample.ElDeg),
		)
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
			return "", fmt.Errorf("failed to write sample: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to flush series: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, filepath.Join(w.dir, fileName)); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to publish %s: %w", fileName, err)
	}

	w.logger.Debug("Wrote pointing file", "file", fileName, "samples", series.Len())
	return fileName, nil
}
