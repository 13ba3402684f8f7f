package readings

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/fuelbook/internal/apperr"
)

// Parse reads a shift sheet, detecting its encoding and column profile.
// Blank rows are skipped. Any malformed row fails the whole sheet with a
// ValidationError naming the row.
func Parse(r io.Reader) (*Sheet, error) {
	utf8r, charset, err := decodeUTF8(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}

	for i := range profiles {
		rows, err := readRows(data, profiles[i].Comma)
		if err != nil {
			continue
		}

		cols, headerIdx, ok := findHeader(&profiles[i], rows)
		if !ok {
			continue
		}

		sheet, err := parseRows(&profiles[i], cols, rows[headerIdx+1:], headerIdx+1)
		if err != nil {
			return nil, err
		}

		sheet.Charset = charset

		return sheet, nil
	}

	return nil, &apperr.ValidationError{Field: "header", Message: "no known sheet layout: expected Tipo;Referência;Fase;Valor or type,subject,phase,value"}
}

func readRows(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

type colIndex map[string]int

func findHeader(p *Profile, rows [][]string) (colIndex, int, bool) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		matched := true

		for _, name := range p.requiredCols() {
			if _, ok := cols[name]; !ok {
				matched = false
				break
			}
		}

		if matched {
			return cols, rowIdx, true
		}
	}

	return nil, 0, false
}

type readingKey struct {
	kind    Kind
	subject string
	phase   Phase
}

func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) (*Sheet, error) {
	kindIdx, refIdx, phaseIdx, valueIdx := cols[p.KindCol], cols[p.RefCol], cols[p.PhaseCol], cols[p.ValueCol]

	sheet := &Sheet{}
	seen := make(map[readingKey]int)

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		rawKind := cellValue(row, kindIdx)
		if rawKind == "" && cellValue(row, valueIdx) == "" {
			continue
		}

		rowErr := func(format string, args ...any) error {
			return &apperr.ValidationError{Field: fmt.Sprintf("row %d", rowNum), Message: fmt.Sprintf(format, args...)}
		}

		kind, ok := p.Kinds[strings.ToLower(rawKind)]
		if !ok {
			return nil, rowErr("unknown row type %q", rawKind)
		}

		value, err := parseQuantity(cellValue(row, valueIdx), p.DecComma)
		if err != nil {
			return nil, rowErr("%v", err)
		}

		if value.IsNegative() {
			return nil, rowErr("value must not be negative")
		}

		ref := cellValue(row, refIdx)

		switch kind {
		case KindMeter, KindGauge:
			if ref == "" {
				return nil, rowErr("%s row needs a reference", kind)
			}

			rawPhase := cellValue(row, phaseIdx)

			phase, ok := p.Phases[strings.ToLower(rawPhase)]
			if !ok {
				return nil, rowErr("unknown phase %q", rawPhase)
			}

			key := readingKey{kind: kind, subject: ref, phase: phase}
			if prev, dup := seen[key]; dup {
				return nil, rowErr("duplicate %s %s reading for %s (first on row %d)", phase, kind, ref, prev)
			}

			seen[key] = rowNum

			sheet.Readings = append(sheet.Readings, Reading{Kind: kind, Subject: ref, Phase: phase, Value: value})

		case KindDelivery:
			if ref == "" {
				return nil, rowErr("delivery row needs a tank")
			}

			sheet.Deliveries = append(sheet.Deliveries, Delivery{TankID: ref, Liters: value})

		case KindCash:
			if sheet.CashCount != nil {
				return nil, rowErr("more than one cash count")
			}

			sheet.CashCount = &value
		}
	}

	return sheet, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
