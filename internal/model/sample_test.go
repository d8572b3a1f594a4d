package model

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const rnaSeqRecord = `
analysis: RNA-seq
algorithm:
  aligner: star
  fusion_caller: [arriba, pizzly]
  trim_reads: read_through
  adapters: [truseq, polya]
  expression_caller: [salmon, kallisto]
  spikein_fasta: ../data/ERCC92.fasta
  known_fusions: ../data/known_fusions.tsv
metadata:
  batch: fusion-batch
  lab: core-3
description: Test1
files:
  - ../data/Test1_1.fq.gz
  - ../data/Test1_2.fq.gz
genome_build: hg19
`

func TestSampleDecode(t *testing.T) {
	var sample Sample
	if err := yaml.Unmarshal([]byte(rnaSeqRecord), &sample); err != nil {
		t.Fatalf("Failed to decode sample: %v", err)
	}

	if sample.Analysis != "RNA-seq" {
		t.Errorf("Analysis = %q, want RNA-seq", sample.Analysis)
	}
	if sample.Algorithm.Aligner.Name != "star" {
		t.Errorf("Aligner = %q, want star", sample.Algorithm.Aligner.Name)
	}
	if len(sample.Algorithm.FusionCaller) != 2 {
		t.Fatalf("FusionCaller has %d entries, want 2", len(sample.Algorithm.FusionCaller))
	}
	if !sample.Algorithm.FusionCaller.Contains("pizzly") {
		t.Errorf("FusionCaller missing pizzly: %v", sample.Algorithm.FusionCaller)
	}
	if len(sample.Files) != 2 {
		t.Errorf("Files has %d entries, want 2", len(sample.Files))
	}
	if sample.GenomeBuild != "hg19" {
		t.Errorf("GenomeBuild = %q, want hg19", sample.GenomeBuild)
	}
}

func TestMetadataInlineTags(t *testing.T) {
	var sample Sample
	if err := yaml.Unmarshal([]byte(rnaSeqRecord), &sample); err != nil {
		t.Fatalf("Failed to decode sample: %v", err)
	}

	if got := sample.Metadata.Batch; len(got) != 1 || got[0] != "fusion-batch" {
		t.Errorf("Batch = %v, want [fusion-batch]", got)
	}
	if sample.Metadata.Tags["lab"] != "core-3" {
		t.Errorf("Tags[lab] = %q, want core-3", sample.Metadata.Tags["lab"])
	}
}

func TestStringListScalarForm(t *testing.T) {
	var sample Sample
	data := `
analysis: RNA-seq
algorithm:
  fusion_caller: arriba
  expression_caller: salmon
description: Scalar
genome_build: hg38
`
	if err := yaml.Unmarshal([]byte(data), &sample); err != nil {
		t.Fatalf("Failed to decode sample: %v", err)
	}

	if len(sample.Algorithm.FusionCaller) != 1 || sample.Algorithm.FusionCaller[0] != "arriba" {
		t.Errorf("FusionCaller = %v, want [arriba]", sample.Algorithm.FusionCaller)
	}

	// Single-element lists marshal back to the compact scalar form
	out, err := yaml.Marshal(sample.Algorithm)
	if err != nil {
		t.Fatalf("Failed to marshal algorithm: %v", err)
	}
	if !strings.Contains(string(out), "fusion_caller: arriba") {
		t.Errorf("Marshalled algorithm lost scalar form:\n%s", out)
	}
}

func TestAlignerDisabled(t *testing.T) {
	var sample Sample
	data := `
analysis: RNA-seq
algorithm:
  aligner: false
  expression_caller: salmon
description: NoAlign
genome_build: hg38
`
	if err := yaml.Unmarshal([]byte(data), &sample); err != nil {
		t.Fatalf("Failed to decode sample: %v", err)
	}

	if !sample.Algorithm.Aligner.Disabled {
		t.Error("Aligner should be disabled")
	}
	if sample.Algorithm.Aligner.String() != "false" {
		t.Errorf("Aligner.String() = %q, want false", sample.Algorithm.Aligner.String())
	}

	out, err := yaml.Marshal(sample.Algorithm)
	if err != nil {
		t.Fatalf("Failed to marshal algorithm: %v", err)
	}
	if !strings.Contains(string(out), "aligner: false") {
		t.Errorf("Marshalled algorithm lost disabled aligner:\n%s", out)
	}
}

func TestAlignerJSONMatchesYAMLForm(t *testing.T) {
	out, err := json.Marshal(Algorithm{Aligner: Aligner{Name: "star"}})
	if err != nil {
		t.Fatalf("Failed to marshal algorithm: %v", err)
	}
	if !strings.Contains(string(out), `"aligner":"star"`) {
		t.Errorf("JSON aligner should be a scalar:\n%s", out)
	}

	out, err = json.Marshal(Algorithm{Aligner: Aligner{Disabled: true}})
	if err != nil {
		t.Fatalf("Failed to marshal algorithm: %v", err)
	}
	if !strings.Contains(string(out), `"aligner":false`) {
		t.Errorf("JSON disabled aligner should be false:\n%s", out)
	}

	var roundTrip Algorithm
	if err := json.Unmarshal(out, &roundTrip); err != nil {
		t.Fatalf("Failed to unmarshal algorithm: %v", err)
	}
	if !roundTrip.Aligner.Disabled {
		t.Error("JSON round-trip lost disabled aligner")
	}

	if err := json.Unmarshal([]byte(`{"aligner":true}`), &roundTrip); err == nil {
		t.Error("Expected error for aligner: true in JSON")
	}
}

func TestAlignerTrueRejected(t *testing.T) {
	var sample Sample
	data := `
analysis: RNA-seq
algorithm:
  aligner: true
description: Bad
genome_build: hg38
`
	if err := yaml.Unmarshal([]byte(data), &sample); err == nil {
		t.Error("Expected error for aligner: true")
	}
}

func TestAlgorithmExtraKeysPreserved(t *testing.T) {
	var sample Sample
	data := `
analysis: RNA-seq
algorithm:
  aligner: star
  quantify_genome_alignments: true
  novel_thing: 3
description: Extras
genome_build: hg38
`
	if err := yaml.Unmarshal([]byte(data), &sample); err != nil {
		t.Fatalf("Failed to decode sample: %v", err)
	}

	if len(sample.Algorithm.Extra) != 2 {
		t.Fatalf("Extra has %d keys, want 2: %v", len(sample.Algorithm.Extra), sample.Algorithm.Extra)
	}
	if _, ok := sample.Algorithm.Extra["quantify_genome_alignments"]; !ok {
		t.Error("Extra missing quantify_genome_alignments")
	}

	out, err := yaml.Marshal(sample.Algorithm)
	if err != nil {
		t.Fatalf("Failed to marshal algorithm: %v", err)
	}
	for _, want := range []string{"quantify_genome_alignments", "novel_thing"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("Marshalled algorithm dropped extra key %s:\n%s", want, out)
		}
	}
}

func TestSharesBatch(t *testing.T) {
	chip := Sample{Metadata: Metadata{Batch: StringList{"b1", "b2"}}}
	input := Sample{Metadata: Metadata{Batch: StringList{"b2"}}}
	other := Sample{Metadata: Metadata{Batch: StringList{"b3"}}}

	if !chip.SharesBatch(input) {
		t.Error("Samples sharing b2 should share a batch")
	}
	if chip.SharesBatch(other) {
		t.Error("Samples with disjoint batches should not share a batch")
	}
}

func TestKnownTool(t *testing.T) {
	tests := []struct {
		key  string
		name string
		want bool
	}{
		{"aligner", "star", true},
		{"aligner", "novoalign", false},
		{"fusion_caller", "arriba", true},
		{"fusion_caller", "starfusion", false},
		{"expression_caller", "salmon", true},
		{"peakcaller", "macs2", true},
		{"spikein_fasta", "anything.fa", true}, // free-form key
	}

	for _, tt := range tests {
		if got := KnownTool(tt.key, tt.name); got != tt.want {
			t.Errorf("KnownTool(%q, %q) = %v, want %v", tt.key, tt.name, got, tt.want)
		}
	}
}

func TestVocabulary(t *testing.T) {
	if _, ok := Vocabulary("aligner"); !ok {
		t.Error("aligner should have a vocabulary")
	}
	if _, ok := Vocabulary("spikein_fasta"); ok {
		t.Error("spikein_fasta is free-form and should not have a vocabulary")
	}
}
