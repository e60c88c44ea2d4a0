// Package importer provides CSV and Excel import of bulk shape lists.
// It supports automatic delimiter detection, flexible column mapping,
// and case-insensitive header recognition, producing shape elements
// ready to be merged into a scene.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/drawdeck/drawdeck/scene"
)

// ImportResult holds the outcome of an import: parsed elements plus
// per-row errors and warnings. Errors are fatal to the whole import;
// warnings mark skipped or corrected rows.
type ImportResult struct {
	Elements []*scene.Element
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the
// data, -1 when a column was not found.
type ColumnMapping struct {
	Label  int
	Width  int
	Height int
	Kind   int
}

// headerAliases maps canonical column names to accepted aliases (all
// lowercase).
var headerAliases = map[string][]string{
	"label":  {"label", "name", "title", "text", "description", "desc"},
	"width":  {"width", "w", "x size"},
	"height": {"height", "h", "y size"},
	"kind":   {"kind", "type", "shape", "variant"},
}

// variantAliases maps spelled-out kinds to shape variants.
var variantAliases = map[string]scene.ShapeVariant{
	"rectangle": scene.VariantRectangle,
	"rect":      scene.VariantRectangle,
	"box":       scene.VariantRectangle,
	"ellipse":   scene.VariantEllipse,
	"circle":    scene.VariantEllipse,
	"oval":      scene.VariantEllipse,
	"diamond":   scene.VariantDiamond,
	"decision":  scene.VariantDiamond,
	"sticky":    scene.VariantSticky,
	"note":      scene.VariantSticky,
}

// DetectCSVDelimiter determines the most likely CSV delimiter by trying
// comma, semicolon, tab, and pipe; the delimiter producing the most
// consistent multi-column row shape wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	best := ','
	bestScore := 0
	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1
		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}
		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			best = delim
		}
	}
	return best
}

// DetectColumns inspects a row and maps known headers to indices.
// The second return reports whether the row looked like a header at
// all; a data row maps to positional defaults instead.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Label: -1, Width: -1, Height: -1, Kind: -1}
	matched := 0
	for i, cell := range row {
		name := strings.ToLower(strings.TrimSpace(cell))
		for canonical, aliases := range headerAliases {
			for _, alias := range aliases {
				if name != alias {
					continue
				}
				switch canonical {
				case "label":
					mapping.Label = i
				case "width":
					mapping.Width = i
				case "height":
					mapping.Height = i
				case "kind":
					mapping.Kind = i
				}
				matched++
			}
		}
	}
	if matched == 0 {
		// Positional fallback: label, width, height, kind.
		mapping.Label = 0
		if len(row) > 1 {
			mapping.Width = 1
		}
		if len(row) > 2 {
			mapping.Height = 2
		}
		if len(row) > 3 {
			mapping.Kind = 3
		}
		return mapping, false
	}
	return mapping, true
}

// ImportCSV parses a CSV shape list.
func ImportCSV(data []byte) ImportResult {
	result := ImportResult{}
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "CSV data is empty")
		return result
	}
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = DetectCSVDelimiter(data)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot parse CSV: %v", err))
		return result
	}
	return importFromRows(rows, "Line")
}

// ImportExcel parses the first sheet of an XLSX workbook as a shape
// list.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}
	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}
	return importFromRows(rows, "Row")
}

// importFromRows is the shared import logic for CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string) ImportResult {
	result := ImportResult{}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}
	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		if mapping.Width == -1 || mapping.Height == -1 {
			result.Errors = append(result.Errors, "Header found but width/height columns missing")
			return result
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}
		el, warn := parseRow(row, mapping)
		if warn != "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s %d: %s", rowPrefix, i+1, warn))
			continue
		}
		result.Elements = append(result.Elements, el)
	}
	if len(result.Elements) == 0 {
		result.Errors = append(result.Errors, "No valid rows found")
	}
	return result
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseRow turns one data row into a shape element. Returns a warning
// message instead when the row is unusable.
func parseRow(row []string, mapping ColumnMapping) (*scene.Element, string) {
	cell := func(idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	width, err := parseDimension(cell(mapping.Width))
	if err != nil {
		return nil, fmt.Sprintf("bad width %q", cell(mapping.Width))
	}
	height, err := parseDimension(cell(mapping.Height))
	if err != nil {
		return nil, fmt.Sprintf("bad height %q", cell(mapping.Height))
	}

	variant := scene.VariantRectangle
	if kind := strings.ToLower(cell(mapping.Kind)); kind != "" {
		v, ok := variantAliases[kind]
		if !ok {
			return nil, fmt.Sprintf("unknown kind %q", kind)
		}
		variant = v
	}

	el := scene.NewShape(variant, 0, 0, width, height)
	el.Shape.Label = cell(mapping.Label)
	return el, ""
}

// parseDimension accepts "120", "120.5", and "120,5" styles and floors
// the result at the minimum element size.
func parseDimension(raw string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("empty")
	}
	raw = strings.ReplaceAll(raw, ",", ".")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, fmt.Errorf("not a positive number")
	}
	return max(v, scene.MinElementSize), nil
}

// ApplyImport merges imported elements into the scene as one
// checkpointed batch, placing them row-major on a grid sized by the
// largest element, and selects them. Returns the added ids.
func ApplyImport(s *scene.Store, elements []*scene.Element) []string {
	if len(elements) == 0 {
		return nil
	}
	cols := int(math.Ceil(math.Sqrt(float64(len(elements)))))
	cellW, cellH := 0.0, 0.0
	for _, el := range elements {
		cellW = max(cellW, el.Width)
		cellH = max(cellH, el.Height)
	}
	pad := s.GridSize()
	for i, el := range elements {
		el.X = float64(i%cols) * (cellW + pad)
		el.Y = float64(i/cols) * (cellH + pad)
	}
	return s.AddBatch(elements)
}
