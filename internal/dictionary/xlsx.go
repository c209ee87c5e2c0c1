package dictionary

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/growthdesk/clinic-intel/internal/model"
)

// ImportOptions configures the XLSX dictionary importer.
type ImportOptions struct {
	EntrySheet    string // default "entries"
	CompoundSheet string // default "compounds"; missing sheet is not an error
	SkipRows      int    // header rows to skip, default 1
}

func (o ImportOptions) withDefaults() ImportOptions {
	if o.EntrySheet == "" {
		o.EntrySheet = "entries"
	}
	if o.CompoundSheet == "" {
		o.CompoundSheet = "compounds"
	}
	if o.SkipRows == 0 {
		o.SkipRows = 1
	}
	return o
}

// ImportXLSX parses a curated dictionary workbook.
//
// The entry sheet carries columns standard_name, category, base_unit_type,
// aliases (comma-separated). The compound sheet carries compound_name,
// decomposed_to (comma-separated), scoring_note. Blank first-column rows are
// skipped.
func ImportXLSX(path string, opts ImportOptions) ([]model.DictionaryEntry, []model.CompoundEntry, error) {
	opts = opts.withDefaults()

	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, nil, eris.Wrap(err, "dictionary: open workbook")
	}

	entrySheet, ok := f.Sheet[opts.EntrySheet]
	if !ok {
		return nil, nil, eris.Errorf("dictionary: sheet %q not found", opts.EntrySheet)
	}

	var entries []model.DictionaryEntry
	for i, row := range entrySheet.Rows {
		if i < opts.SkipRows {
			continue
		}
		cells := rowToStrings(row)
		if cell(cells, 0) == "" {
			continue
		}
		entries = append(entries, model.DictionaryEntry{
			StandardName: cell(cells, 0),
			Category:     cell(cells, 1),
			BaseUnitType: cell(cells, 2),
			Aliases:      splitList(cell(cells, 3)),
		})
	}

	var compounds []model.CompoundEntry
	if sheet, ok := f.Sheet[opts.CompoundSheet]; ok {
		for i, row := range sheet.Rows {
			if i < opts.SkipRows {
				continue
			}
			cells := rowToStrings(row)
			if cell(cells, 0) == "" {
				continue
			}
			compounds = append(compounds, model.CompoundEntry{
				CompoundName: cell(cells, 0),
				DecomposedTo: splitList(cell(cells, 1)),
				ScoringNote:  cell(cells, 2),
			})
		}
	}

	return entries, compounds, nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, c := range row.Cells {
		cells[j] = strings.TrimSpace(c.String())
	}
	return cells
}

func cell(cells []string, i int) string {
	if i >= len(cells) {
		return ""
	}
	return cells[i]
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
