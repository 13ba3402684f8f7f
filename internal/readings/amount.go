package readings

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// parseQuantity parses a liter or money figure. With decComma set it reads
// the European form "1.234,56"; otherwise "1,234.56".
func parseQuantity(s string, decComma bool) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\u00a0", "")
	s = strings.ReplaceAll(s, " ", "")

	if decComma {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	if s == "" {
		return decimal.Zero, fmt.Errorf("empty value")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid value %q: %w", s, err)
	}

	return d, nil
}
