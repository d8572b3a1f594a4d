package template

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/omicsops/samplectl/internal/model"
	"github.com/omicsops/samplectl/internal/utils/logger"
	"go.uber.org/zap"
)

// MetadataRow is one line of a sample metadata table. file2 is empty for
// single-end samples. Header columns beyond the known set are kept in Tags
// and carried into the record metadata.
type MetadataRow struct {
	SampleName string
	File1      string
	File2      string
	Batch      string
	Phenotype  string
	Tags       map[string]string
}

// knownColumns are the header names with dedicated fields
var knownColumns = map[string]bool{
	"samplename": true,
	"file1":      true,
	"file2":      true,
	"batch":      true,
	"phenotype":  true,
}

// Options controls the generated sheet
type Options struct {
	// Analysis is the pipeline type for every record
	Analysis string
	// GenomeBuild is the reference assembly for every record
	GenomeBuild string
	// Algorithm is copied into every record (zero value leaves it out)
	Algorithm model.Algorithm
	// UploadDir sets the sheet-level upload directory
	UploadDir string
}

// ReadCSV loads a sample metadata table from disk
func ReadCSV(path string) ([]*MetadataRow, error) {
	logger.Debug("Reading sample metadata table", zap.String("path", path))

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata table: %w", err)
	}
	defer f.Close()

	records, err := gocsv.CSVToMaps(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse metadata table: %w", err)
	}

	rows := make([]*MetadataRow, 0, len(records))
	for _, record := range records {
		row := &MetadataRow{
			SampleName: record["samplename"],
			File1:      record["file1"],
			File2:      record["file2"],
			Batch:      record["batch"],
			Phenotype:  record["phenotype"],
		}
		for column, value := range record {
			if knownColumns[column] || value == "" {
				continue
			}
			if row.Tags == nil {
				row.Tags = make(map[string]string)
			}
			row.Tags[column] = value
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Build turns a metadata table into a sample sheet
func Build(rows []*MetadataRow, opts Options) (*model.SampleSheet, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("metadata table has no rows")
	}
	if opts.Analysis == "" {
		return nil, fmt.Errorf("analysis is required")
	}
	if opts.GenomeBuild == "" {
		return nil, fmt.Errorf("genome build is required")
	}

	sheet := &model.SampleSheet{}
	if opts.UploadDir != "" {
		sheet.Upload = &model.Upload{Dir: opts.UploadDir}
	}

	for i, row := range rows {
		if row.SampleName == "" {
			return nil, fmt.Errorf("row %d: samplename is required", i+1)
		}
		if row.File1 == "" {
			return nil, fmt.Errorf("row %d (%s): file1 is required", i+1, row.SampleName)
		}

		files := []string{row.File1}
		if row.File2 != "" {
			files = append(files, row.File2)
		}

		sample := model.Sample{
			Analysis:    opts.Analysis,
			Algorithm:   opts.Algorithm,
			Description: row.SampleName,
			Files:       files,
			GenomeBuild: opts.GenomeBuild,
		}
		if row.Batch != "" {
			sample.Metadata.Batch = model.StringList{row.Batch}
		}
		sample.Metadata.Phenotype = row.Phenotype
		if len(row.Tags) > 0 {
			sample.Metadata.Tags = make(map[string]string, len(row.Tags))
			for tag, value := range row.Tags {
				sample.Metadata.Tags[tag] = value
			}
		}

		sheet.Details = append(sheet.Details, sample)
	}

	logger.Debug("Built sample sheet from metadata table",
		zap.Int("rows", len(rows)),
		zap.String("analysis", opts.Analysis))

	return sheet, nil
}
