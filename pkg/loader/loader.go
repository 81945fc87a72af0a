// Package loader reads UniProt TSV exports (plain or gzip) into proteins for the registry.
package loader

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/yumyai/protview/logger"
	"github.com/yumyai/protview/pkg/model"
)

// UniProt export column headers.
const (
	ColEntry        = "Entry"
	ColReviewed     = "Reviewed"
	ColEntryName    = "Entry Name"
	ColProteinNames = "Protein names"
	ColGeneNames    = "Gene Names"
	ColOrganism     = "Organism"
	ColInterPro     = "InterPro"
	ColECNumber     = "EC number"
	ColSequence     = "Sequence"
)

var requiredColumns = []string{ColEntry, ColReviewed, ColSequence}

var ErrMissingColumn = errors.New("missing column")

// ParseTSV reads a tab separated export with a header row. Only Entry, Reviewed and Sequence
// are required; other known columns are optional and unknown ones are ignored.
func ParseTSV(r io.Reader) ([]model.Protein, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []model.Protein{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	field := func(record []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	proteins := []model.Protein{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}

		reviewed, err := model.ParseReviewStatus(field(record, ColReviewed))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		p := model.Protein{
			Entry:       field(record, ColEntry),
			EntryName:   field(record, ColEntryName),
			ProteinName: field(record, ColProteinNames),
			GeneName:    field(record, ColGeneNames),
			Organism:    field(record, ColOrganism),
			InterPro:    strings.TrimSuffix(field(record, ColInterPro), ";"),
			ECNumber:    field(record, ColECNumber),
			Reviewed:    reviewed,
			Sequence:    field(record, ColSequence),
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		proteins = append(proteins, p)
	}
	return proteins, nil
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (rc *readCloser) Close() error {
	var errs []error
	for _, c := range rc.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// Open opens path for reading, decompressing it when it is gzip data.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	buffered := bufio.NewReader(f)
	magic, err := buffered.Peek(2)
	if err != nil && !errors.Is(err, io.EOF) {
		f.Close()
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(magic) < 2 || magic[0] != 0x1f || magic[1] != 0x8b {
		return &readCloser{Reader: buffered, closers: []io.Closer{f}}, nil
	}

	gz, err := gzip.NewReader(buffered)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening gzip %s: %w", path, err)
	}
	return &readCloser{Reader: gz, closers: []io.Closer{gz, f}}, nil
}

// LoadFile parses the export at path.
func LoadFile(path string) ([]model.Protein, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	proteins, err := ParseTSV(rc)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	logger.Info("Parsed protein export", zap.String("path", path), zap.Int("proteins", len(proteins)))
	return proteins, nil
}

// Download fetches url into dest. The file only appears at dest once fully written.
func Download(ctx context.Context, client *http.Client, url, dest string) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading %s: status %d", url, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".*.part")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return err
	}

	logger.Info("Downloaded protein export", zap.String("url", url), zap.String("path", dest), zap.Int64("bytes", n))
	return nil
}
