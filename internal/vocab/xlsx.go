package vocab

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSX column layout, one item per row:
//
//	category | level | kanji | hiragana | romaji | meaning | category name | level name
const (
	colCategory = iota
	colLevel
	colKanji
	colHiragana
	colRomaji
	colMeaning
	colCategoryName
	colLevelName
	minColumns = colHiragana + 1
)

// XLSXOptions configures a spreadsheet import.
type XLSXOptions struct {
	Path      string
	SheetName string // empty means the first sheet
	StartRow  int    // 1-based first data row; 0 means 2 (skip header)
}

// ImportReport summarizes a spreadsheet import.
type ImportReport struct {
	TotalProcessed int
	Imported       int
	Errors         []string
}

// LoadXLSX reads vocabulary rows from a spreadsheet. Bad rows are reported
// and skipped; only file-level problems return an error.
func LoadXLSX(opts XLSXOptions) (*Library, ImportReport, error) {
	var report ImportReport

	f, err := excelize.OpenFile(opts.Path)
	if err != nil {
		return nil, report, fmt.Errorf("vocab: open spreadsheet %s: %w", opts.Path, err)
	}
	defer f.Close()

	sheet := opts.SheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, report, fmt.Errorf("vocab: spreadsheet %s has no sheets", opts.Path)
		}
		sheet = sheets[0]
	}
	startRow := opts.StartRow
	if startRow <= 0 {
		startRow = 2
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, report, fmt.Errorf("vocab: read sheet %q: %w", sheet, err)
	}

	b := newBuilder()
	for i, row := range rows {
		if i < startRow-1 || blankRow(row) {
			continue
		}
		report.TotalProcessed++
		if err := b.addRow(row); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		report.Imported++
	}

	return b.library(), report, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// builder groups flat rows into categories and levels.
type builder struct {
	categories map[string]*Category
	order      []string
}

func newBuilder() *builder {
	return &builder{categories: make(map[string]*Category)}
}

func (b *builder) addRow(row []string) error {
	if len(row) < minColumns {
		return fmt.Errorf("expected at least %d columns, got %d", minColumns, len(row))
	}
	cell := func(i int) string {
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	catID := strings.ToLower(cell(colCategory))
	if catID == "" {
		return fmt.Errorf("missing category")
	}
	levelNum, err := strconv.Atoi(cell(colLevel))
	if err != nil || levelNum <= 0 {
		return fmt.Errorf("invalid level %q", cell(colLevel))
	}
	item := Item{
		Kanji:    cell(colKanji),
		Hiragana: cell(colHiragana),
		Romaji:   cell(colRomaji),
		Meaning:  cell(colMeaning),
	}
	if item.Kanji == "" || item.Hiragana == "" {
		return fmt.Errorf("kanji and hiragana are required")
	}

	cat, ok := b.categories[catID]
	if !ok {
		cat = &Category{ID: catID, Order: len(b.order) + 1}
		b.categories[catID] = cat
		b.order = append(b.order, catID)
	}
	if name := cell(colCategoryName); name != "" && cat.Name == "" {
		cat.Name = name
	}

	lvl, ok := cat.Level(levelNum)
	if !ok {
		cat.Levels = append(cat.Levels, Level{Number: levelNum, Name: fmt.Sprintf("Level %d", levelNum)})
		lvl = &cat.Levels[len(cat.Levels)-1]
	}
	if name := cell(colLevelName); name != "" {
		lvl.Name = name
	}
	lvl.Vocabulary = append(lvl.Vocabulary, item)
	return nil
}

func (b *builder) library() *Library {
	cats := make([]Category, 0, len(b.order))
	for _, id := range b.order {
		cats = append(cats, *b.categories[id])
	}
	return NewLibrary(cats)
}
