package cmd

import (
	"github.com/spf13/cobra"

	"github.com/heartmarshall/kanjiwords/internal/app"
	"github.com/heartmarshall/kanjiwords/internal/app/generator"
	"github.com/heartmarshall/kanjiwords/internal/app/generator/joyo"
	"github.com/heartmarshall/kanjiwords/internal/app/generator/output"
)

var (
	coverageInputFlag string
	coverageWordsFlag string
)

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "List target kanji that have no words in a generated table",
	Args:  cobra.NoArgs,
	RunE:  runCoverage,
}

func init() {
	coverageCmd.Flags().StringVar(&coverageInputFlag, "input", "", "kanji list JSON (default: generator.input_path)")
	coverageCmd.Flags().StringVar(&coverageWordsFlag, "words", "", "generated words JSON (default: generator.output_path)")
}

func runCoverage(cmd *cobra.Command, args []string) error {
	cfg, _, err := app.Bootstrap(configPath)
	if err != nil {
		return err
	}

	inputPath := cfg.Generator.InputPath
	if coverageInputFlag != "" {
		inputPath = coverageInputFlag
	}
	wordsPath := cfg.Generator.OutputPath
	if coverageWordsFlag != "" {
		wordsPath = coverageWordsFlag
	}

	kanji, _, err := joyo.Parse(inputPath)
	if err != nil {
		return err
	}
	words, err := output.ReadJSON(wordsPath)
	if err != nil {
		return err
	}

	_, err = generator.CheckCoverage(kanji, words).WriteTo(cmd.OutOrStdout())
	return err
}
