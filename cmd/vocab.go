package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/omicsops/samplectl/internal/model"
	"github.com/spf13/cobra"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab [algorithm-key]",
	Short: "Print the accepted tool vocabularies",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			vocab, ok := model.Vocabulary(args[0])
			if !ok {
				return fmt.Errorf("no vocabulary for key %q (free-form value)", args[0])
			}
			fmt.Println(strings.Join(vocab, "\n"))
			return nil
		}

		keys := make([]string, 0, len(model.Vocabularies))
		for key := range model.Vocabularies {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			fmt.Printf("%s: %s\n", key, strings.Join(model.Vocabularies[key], ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(vocabCmd)
}
