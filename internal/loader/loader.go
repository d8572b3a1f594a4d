package loader

import (
	"fmt"
	"os"

	"github.com/omicsops/samplectl/internal/model"
	"github.com/omicsops/samplectl/internal/utils/logger"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// FromFile loads a sample sheet from a YAML file
func FromFile(filePath string) (*model.SampleSheet, error) {
	logger.Debug("Loading sample sheet from file", zap.String("path", filePath))

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample sheet: %w", err)
	}

	sheet, err := FromBytes(data)
	if err != nil {
		return nil, err
	}

	logger.Debug("Successfully loaded sample sheet",
		zap.String("path", filePath),
		zap.Int("samples", len(sheet.Details)))

	return sheet, nil
}

// FromBytes loads a sample sheet from YAML bytes. Both top-level shapes are
// accepted: a bare sequence of sample records (the fixture form) and a
// mapping with a details key (the project form).
func FromBytes(data []byte) (*model.SampleSheet, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse sample sheet YAML: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("sample sheet is empty")
	}

	doc := root.Content[0]
	var sheet model.SampleSheet

	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&sheet.Details); err != nil {
			return nil, fmt.Errorf("failed to parse sample records: %w", err)
		}
	case yaml.MappingNode:
		if err := doc.Decode(&sheet); err != nil {
			return nil, fmt.Errorf("failed to parse sample sheet: %w", err)
		}
	default:
		return nil, fmt.Errorf("sample sheet must be a sequence of records or a mapping with a details key")
	}

	if err := checkStructure(&sheet); err != nil {
		return nil, fmt.Errorf("sample sheet structure invalid: %w", err)
	}

	return &sheet, nil
}

// checkStructure rejects sheets the validator cannot meaningfully report on.
// Everything softer is left to the validator so findings come back together.
func checkStructure(sheet *model.SampleSheet) error {
	if len(sheet.Details) == 0 {
		return fmt.Errorf("at least one sample record is required")
	}

	for i, sample := range sheet.Details {
		if sample.Description == "" {
			return fmt.Errorf("sample %d: description is required", i+1)
		}
		for j, f := range sample.Files {
			if f == "" {
				return fmt.Errorf("sample %s: files[%d] is empty", sample.Description, j)
			}
		}
	}

	return nil
}
