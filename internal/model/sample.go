package model

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// SampleSheet represents a pipeline sample sheet with all sample records
type SampleSheet struct {
	FCName  string   `yaml:"fc_name,omitempty" json:"fc_name,omitempty"`
	Upload  *Upload  `yaml:"upload,omitempty" json:"upload,omitempty"`
	Details []Sample `yaml:"details" json:"details"`
}

// Upload describes where the pipeline should place final outputs
type Upload struct {
	Dir string `yaml:"dir,omitempty" json:"dir,omitempty"`
}

// Sample is a single self-contained sample record
type Sample struct {
	Analysis    string    `yaml:"analysis" json:"analysis"`
	Algorithm   Algorithm `yaml:"algorithm,omitempty" json:"algorithm,omitempty"`
	Metadata    Metadata  `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	Description string    `yaml:"description" json:"description"`
	Files       []string  `yaml:"files,omitempty" json:"files,omitempty"`
	GenomeBuild string    `yaml:"genome_build" json:"genome_build"`
}

// Metadata holds sample-level tags. Batch and phenotype are pulled out
// because the pipeline pairs samples on them; everything else stays in Tags.
type Metadata struct {
	Batch     StringList        `yaml:"batch,omitempty" json:"batch,omitempty"`
	Phenotype string            `yaml:"phenotype,omitempty" json:"phenotype,omitempty"`
	Tags      map[string]string `yaml:",inline" json:"tags,omitempty"`
}

// Algorithm maps pipeline-stage names to tool selections. Keys outside the
// known vocabulary are preserved in Extra so sheets round-trip.
type Algorithm struct {
	Aligner          Aligner    `yaml:"aligner,omitempty" json:"aligner,omitempty"`
	TrimReads        string     `yaml:"trim_reads,omitempty" json:"trim_reads,omitempty"`
	Adapters         StringList `yaml:"adapters,omitempty" json:"adapters,omitempty"`
	FusionCaller     StringList `yaml:"fusion_caller,omitempty" json:"fusion_caller,omitempty"`
	ExpressionCaller StringList `yaml:"expression_caller,omitempty" json:"expression_caller,omitempty"`
	PeakCaller       StringList `yaml:"peakcaller,omitempty" json:"peakcaller,omitempty"`
	SpikeinFasta     string     `yaml:"spikein_fasta,omitempty" json:"spikein_fasta,omitempty"`
	KnownFusions     string     `yaml:"known_fusions,omitempty" json:"known_fusions,omitempty"`
	TranscriptomeGTF string     `yaml:"transcriptome_gtf,omitempty" json:"transcriptome_gtf,omitempty"`
	QualityFormat    string     `yaml:"quality_format,omitempty" json:"quality_format,omitempty"`
	UMIType          string     `yaml:"umi_type,omitempty" json:"umi_type,omitempty"`
	Strandedness     string     `yaml:"strandedness,omitempty" json:"strandedness,omitempty"`

	Extra map[string]any `yaml:"-" json:"extra,omitempty"`
}

// algorithmFields is Algorithm without the custom YAML hooks
type algorithmFields Algorithm

// UnmarshalYAML decodes the known stage keys into typed fields and keeps
// everything else in Extra.
func (a *Algorithm) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: algorithm must be a mapping", value.Line)
	}

	var fields algorithmFields
	if err := value.Decode(&fields); err != nil {
		return err
	}

	var raw map[string]any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	for _, key := range AlgorithmKeys {
		delete(raw, key)
	}
	if len(raw) > 0 {
		fields.Extra = raw
	}

	*a = Algorithm(fields)
	return nil
}

// MarshalYAML emits the typed fields followed by the preserved extras.
func (a Algorithm) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{}
	if err := node.Encode(algorithmFields(a)); err != nil {
		return nil, err
	}

	extraKeys := make([]string, 0, len(a.Extra))
	for k := range a.Extra {
		extraKeys = append(extraKeys, k)
	}
	sort.Strings(extraKeys)

	for _, k := range extraKeys {
		keyNode := &yaml.Node{}
		if err := keyNode.Encode(k); err != nil {
			return nil, err
		}
		valNode := &yaml.Node{}
		if err := valNode.Encode(a.Extra[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valNode)
	}

	return node, nil
}

// IsZero reports whether no stage was configured, so empty algorithm
// mappings are omitted when marshalling.
func (a Algorithm) IsZero() bool {
	return a.Aligner.IsZero() &&
		a.TrimReads == "" &&
		len(a.Adapters) == 0 &&
		len(a.FusionCaller) == 0 &&
		len(a.ExpressionCaller) == 0 &&
		len(a.PeakCaller) == 0 &&
		a.SpikeinFasta == "" &&
		a.KnownFusions == "" &&
		a.TranscriptomeGTF == "" &&
		a.QualityFormat == "" &&
		a.UMIType == "" &&
		a.Strandedness == "" &&
		len(a.Extra) == 0
}

// IsZero reports whether the metadata mapping is empty
func (m Metadata) IsZero() bool {
	return len(m.Batch) == 0 && m.Phenotype == "" && len(m.Tags) == 0
}

// SharesBatch reports whether two samples have a batch in common
func (s Sample) SharesBatch(other Sample) bool {
	for _, b := range s.Metadata.Batch {
		for _, o := range other.Metadata.Batch {
			if b == o {
				return true
			}
		}
	}
	return false
}

// FindSample returns the record with the given description
func (s *SampleSheet) FindSample(description string) (*Sample, bool) {
	for i := range s.Details {
		if s.Details[i].Description == description {
			return &s.Details[i], true
		}
	}
	return nil, false
}
