package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/kana-arcade/internal/vocab"
)

var (
	flagImportOut   string
	flagImportSheet string
)

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Convert a vocabulary spreadsheet to YAML",
	Long: `Read vocabulary rows from an XLSX spreadsheet and write them as a YAML
library that --vocab accepts.

The first row is a header. Columns, in order:
  category | level | kanji | hiragana | romaji | meaning | category name | level name

Rows that cannot be read are reported and skipped.

Examples:
  arcade import words.xlsx
  arcade import words.xlsx -o ~/.arcade/vocabulary.yaml --sheet Sheet2`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&flagImportOut, "output", "o", "", "Output YAML path (default: input name with .yaml)")
	importCmd.Flags().StringVar(&flagImportSheet, "sheet", "", "Sheet name (default: first sheet)")
}

func runImport(_ *cobra.Command, args []string) error {
	in := args[0]
	out := flagImportOut
	if out == "" {
		out = strings.TrimSuffix(in, filepath.Ext(in)) + ".yaml"
	}

	lib, report, err := vocab.LoadXLSX(vocab.XLSXOptions{Path: in, SheetName: flagImportSheet})
	if err != nil {
		return err
	}

	for _, e := range report.Errors {
		fmt.Fprintf(os.Stderr, "skipped %s\n", e)
	}
	if report.Imported == 0 {
		return fmt.Errorf("no vocabulary imported from %s (%d rows processed)", in, report.TotalProcessed)
	}

	data, err := vocab.MarshalYAML(lib)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	categories, levels, items := lib.Count()
	logger.Info("vocabulary imported", "in", in, "out", out, "items", items)
	fmt.Printf("Imported %d of %d rows: %d categories, %d levels, %d words\n",
		report.Imported, report.TotalProcessed, categories, levels, items)
	fmt.Printf("Wrote %s\n", out)
	return nil
}
