package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/corefsieve/internal/dict"
)

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Show the word lists in use",
	Long: `Print the size of every word list of the configured dictionary.

Example:
  corefsieve dict
  corefsieve dict --dict my-lists.toml
  corefsieve dict lookup she`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDictionary()
		if err != nil {
			return err
		}

		fmt.Printf("Dictionary: %s\n\n", d.Source())
		stats := d.Stats()
		for _, name := range d.StatNames() {
			fmt.Printf("  %-22s %5d\n", name, stats[name])
		}
		fmt.Println()
		return nil
	},
}

var dictLookupCmd = &cobra.Command{
	Use:   "lookup <word>...",
	Short: "Show the classes a word belongs to",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDictionary()
		if err != nil {
			return err
		}

		for _, word := range args {
			fmt.Println(describeWord(d, word))
		}
		return nil
	},
}

func loadDictionary() (*dict.Dictionaries, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	d, err := dict.Load(cfg.Dictionary.Path)
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}
	return d, nil
}

// describeWord formats the dictionary classes of word on one line
func describeWord(d *dict.Dictionaries, word string) string {
	var parts []string
	if d.IsPronoun(word) {
		kind := "pronoun"
		if d.IsPersonalPronoun(word) {
			kind = "personal pronoun"
		}
		parts = append(parts, kind,
			"person="+d.PronounPerson(word).String(),
			"gender="+string(d.PronounGender(word)),
			"number="+string(d.PronounNumber(word)),
			"animacy="+string(d.PronounAnimacy(word)))
	} else {
		parts = append(parts, "noun",
			"gender="+string(d.NounGender(word)),
			"number="+string(d.NounNumber(word)),
			"animacy="+string(d.NounAnimacy(word)))
	}
	return fmt.Sprintf("%s: %s", word, strings.Join(parts, " "))
}

func init() {
	rootCmd.AddCommand(dictCmd)
	dictCmd.AddCommand(dictLookupCmd)
}
