package model

// AlgorithmKeys lists the stage names the toolkit understands. Anything
// outside this set is preserved but flagged by the validator.
var AlgorithmKeys = []string{
	"aligner",
	"trim_reads",
	"adapters",
	"fusion_caller",
	"expression_caller",
	"peakcaller",
	"spikein_fasta",
	"known_fusions",
	"transcriptome_gtf",
	"quality_format",
	"umi_type",
	"strandedness",
}

// Aligners are the read aligners the pipeline ships
var Aligners = []string{
	"star",
	"hisat2",
	"tophat2",
	"bwa",
	"bowtie",
	"bowtie2",
	"minimap2",
	"snap",
}

// FusionCallers detect gene-fusion events from RNA-seq reads
var FusionCallers = []string{
	"arriba",
	"pizzly",
	"oncofuse",
	"ericscript",
}

// ExpressionCallers quantify transcript or gene expression levels
var ExpressionCallers = []string{
	"salmon",
	"kallisto",
	"sailfish",
	"stringtie",
	"cufflinks",
	"dexseq",
}

// PeakCallers detect binding regions in ChIP-seq data
var PeakCallers = []string{
	"macs2",
}

// AdapterNames are the built-in adapter sequences for read trimming
var AdapterNames = []string{
	"truseq",
	"truseq2",
	"illumina",
	"nextera",
	"nextera2",
	"polya",
	"polyx",
	"polyg",
}

// TrimModes are the accepted values for trim_reads
var TrimModes = []string{
	"read_through",
	"fastp",
	"atropos",
}

// Strandedness values accepted by the quantifiers
var Strandedness = []string{
	"unstranded",
	"firststrand",
	"secondstrand",
}

// GenomeBuilds lists reference assemblies with prebuilt indices. Builds
// outside this list still run but the validator flags them.
var GenomeBuilds = []string{
	"hg19",
	"hg38",
	"GRCh37",
	"GRCh38",
	"mm10",
	"mm39",
	"rn6",
	"canFam3",
	"dm3",
	"sacCer3",
	"TAIR10",
	"GRCz11",
}

// Analyses are the pipeline types with dedicated run logic
var Analyses = []string{
	"RNA-seq",
	"chip-seq",
	"variant2",
	"smallRNA-seq",
	"scRNA-seq",
}

// Phenotypes used to pair ChIP samples with their background controls
const (
	PhenotypeChip  = "chip"
	PhenotypeInput = "input"
)

// Vocabularies maps an algorithm key to its accepted tool names. Keys with
// free-form values (file paths, quality formats) have no entry.
var Vocabularies = map[string][]string{
	"aligner":           Aligners,
	"fusion_caller":     FusionCallers,
	"expression_caller": ExpressionCallers,
	"peakcaller":        PeakCallers,
	"adapters":          AdapterNames,
	"trim_reads":        TrimModes,
	"strandedness":      Strandedness,
}

// Vocabulary returns the accepted values for an algorithm key
func Vocabulary(key string) ([]string, bool) {
	vocab, ok := Vocabularies[key]
	return vocab, ok
}

// KnownTool reports whether name is an accepted value for the given key.
// Keys without a vocabulary accept anything.
func KnownTool(key, name string) bool {
	vocab, ok := Vocabularies[key]
	if !ok {
		return true
	}
	for _, v := range vocab {
		if v == name {
			return true
		}
	}
	return false
}

// KnownGenomeBuild reports whether the build has prebuilt indices
func KnownGenomeBuild(build string) bool {
	for _, b := range GenomeBuilds {
		if b == build {
			return true
		}
	}
	return false
}

// KnownAnalysis reports whether the analysis label has dedicated run logic
func KnownAnalysis(analysis string) bool {
	for _, a := range Analyses {
		if a == analysis {
			return true
		}
	}
	return false
}
