package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/omicsops/samplectl/internal/model"
)

const metadataCSV = `samplename,file1,file2,batch,phenotype
Test1,data/Test1_1.fq.gz,data/Test1_2.fq.gz,fusion-batch,
Test2,data/Test2.fq.gz,,fusion-batch,
Chip1,data/Chip1_1.fq.gz,data/Chip1_2.fq.gz,b1,chip
`

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meta.csv")
	if err := os.WriteFile(path, []byte(metadataCSV), 0644); err != nil {
		t.Fatalf("Failed to write CSV: %v", err)
	}
	return path
}

func TestReadCSV(t *testing.T) {
	rows, err := ReadCSV(writeCSV(t))
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("Read %d rows, want 3", len(rows))
	}
	if rows[0].SampleName != "Test1" {
		t.Errorf("rows[0].SampleName = %q, want Test1", rows[0].SampleName)
	}
	if rows[1].File2 != "" {
		t.Errorf("rows[1].File2 = %q, want empty (single-end)", rows[1].File2)
	}
	if rows[2].Phenotype != "chip" {
		t.Errorf("rows[2].Phenotype = %q, want chip", rows[2].Phenotype)
	}
}

func TestBuild(t *testing.T) {
	rows, err := ReadCSV(writeCSV(t))
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}

	sheet, err := Build(rows, Options{
		Analysis:    "RNA-seq",
		GenomeBuild: "hg38",
		Algorithm: model.Algorithm{
			Aligner: model.Aligner{Name: "star"},
		},
		UploadDir: "../final",
	})
	if err != nil {
		t.Fatalf("Failed to build sheet: %v", err)
	}

	if len(sheet.Details) != 3 {
		t.Fatalf("Built %d samples, want 3", len(sheet.Details))
	}
	if sheet.Upload == nil || sheet.Upload.Dir != "../final" {
		t.Errorf("Upload = %+v, want dir ../final", sheet.Upload)
	}

	first := sheet.Details[0]
	if first.Analysis != "RNA-seq" || first.GenomeBuild != "hg38" {
		t.Errorf("Record did not pick up shared options: %+v", first)
	}
	if len(first.Files) != 2 {
		t.Errorf("Test1 should be paired-end, got files %v", first.Files)
	}
	if got := first.Metadata.Batch; len(got) != 1 || got[0] != "fusion-batch" {
		t.Errorf("Test1 batch = %v, want [fusion-batch]", got)
	}

	if len(sheet.Details[1].Files) != 1 {
		t.Errorf("Test2 should be single-end, got files %v", sheet.Details[1].Files)
	}
	if sheet.Details[2].Metadata.Phenotype != "chip" {
		t.Errorf("Chip1 phenotype = %q, want chip", sheet.Details[2].Metadata.Phenotype)
	}
}

func TestReadCSVExtraColumnsBecomeTags(t *testing.T) {
	const taggedCSV = `samplename,file1,file2,batch,phenotype,lab,replicate
Test1,data/Test1_1.fq.gz,data/Test1_2.fq.gz,fusion-batch,,core-3,1
Test2,data/Test2.fq.gz,,fusion-batch,,core-3,
`
	path := filepath.Join(t.TempDir(), "meta.csv")
	if err := os.WriteFile(path, []byte(taggedCSV), 0644); err != nil {
		t.Fatalf("Failed to write CSV: %v", err)
	}

	rows, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Read %d rows, want 2", len(rows))
	}

	if rows[0].Tags["lab"] != "core-3" {
		t.Errorf("rows[0].Tags[lab] = %q, want core-3", rows[0].Tags["lab"])
	}
	if rows[0].Tags["replicate"] != "1" {
		t.Errorf("rows[0].Tags[replicate] = %q, want 1", rows[0].Tags["replicate"])
	}
	if _, ok := rows[1].Tags["replicate"]; ok {
		t.Errorf("Empty cells should not become tags: %v", rows[1].Tags)
	}
	if rows[0].SampleName != "Test1" || rows[0].Batch != "fusion-batch" {
		t.Errorf("Known columns mis-parsed: %+v", rows[0])
	}

	sheet, err := Build(rows, Options{Analysis: "RNA-seq", GenomeBuild: "hg38"})
	if err != nil {
		t.Fatalf("Failed to build sheet: %v", err)
	}
	if got := sheet.Details[0].Metadata.Tags["lab"]; got != "core-3" {
		t.Errorf("Metadata.Tags[lab] = %q, want core-3", got)
	}
}

func TestBuildRejectsMissingOptions(t *testing.T) {
	rows := []*MetadataRow{{SampleName: "Test1", File1: "a.fq.gz"}}

	if _, err := Build(rows, Options{GenomeBuild: "hg38"}); err == nil {
		t.Error("Expected error for missing analysis")
	}
	if _, err := Build(rows, Options{Analysis: "RNA-seq"}); err == nil {
		t.Error("Expected error for missing genome build")
	}
	if _, err := Build(nil, Options{Analysis: "RNA-seq", GenomeBuild: "hg38"}); err == nil {
		t.Error("Expected error for empty table")
	}
}

func TestBuildRejectsBadRows(t *testing.T) {
	opts := Options{Analysis: "RNA-seq", GenomeBuild: "hg38"}

	if _, err := Build([]*MetadataRow{{File1: "a.fq.gz"}}, opts); err == nil {
		t.Error("Expected error for missing samplename")
	}
	if _, err := Build([]*MetadataRow{{SampleName: "Test1"}}, opts); err == nil {
		t.Error("Expected error for missing file1")
	}
}
