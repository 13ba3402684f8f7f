package readings_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/MrJamesThe3rd/fuelbook/internal/apperr"
	"github.com/MrJamesThe3rd/fuelbook/internal/readings"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

const ptSheet = `Posto;Norte
Turno;2026-03-10 manhã

Tipo;Referência;Fase;Valor
Contador;n1;Início;1.000,50
contador;n1;fim;1.100,50
Sonda;t1;início;5.000
Sonda;t1;fim;4.900
Descarga;t1;;3.000,25
Caixa;;;800,00
`

const enSheet = `type,subject,phase,value
meter,n1,start,"1,000.50"
meter,n1,end,1100.5
gauge,t1,start,5000
gauge,t1,end,4900
delivery,t1,,3000.25
cash,,,800
`

func assertSheet(t *testing.T, sheet *readings.Sheet) {
	t.Helper()

	require.Len(t, sheet.Readings, 4)

	assert.Equal(t, readings.KindMeter, sheet.Readings[0].Kind)
	assert.Equal(t, "n1", sheet.Readings[0].Subject)
	assert.Equal(t, readings.PhaseStart, sheet.Readings[0].Phase)
	assert.True(t, sheet.Readings[0].Value.Equal(dec("1000.50")))

	assert.Equal(t, readings.PhaseEnd, sheet.Readings[1].Phase)
	assert.True(t, sheet.Readings[1].Value.Equal(dec("1100.5")))

	assert.Equal(t, readings.KindGauge, sheet.Readings[2].Kind)
	assert.True(t, sheet.Readings[3].Value.Equal(dec("4900")))

	require.Len(t, sheet.Deliveries, 1)
	assert.Equal(t, "t1", sheet.Deliveries[0].TankID)
	assert.True(t, sheet.Deliveries[0].Liters.Equal(dec("3000.25")))

	require.NotNil(t, sheet.CashCount)
	assert.True(t, sheet.CashCount.Equal(dec("800")))
}

func TestParse_Portuguese(t *testing.T) {
	sheet, err := readings.Parse(strings.NewReader(ptSheet))
	require.NoError(t, err)

	assertSheet(t, sheet)
	assert.Equal(t, "UTF-8", sheet.Charset)
}

func TestParse_English(t *testing.T) {
	sheet, err := readings.Parse(strings.NewReader(enSheet))
	require.NoError(t, err)

	assertSheet(t, sheet)
}

func TestParse_Windows1252(t *testing.T) {
	encoded, _, err := transform.String(charmap.Windows1252.NewEncoder(), ptSheet)
	require.NoError(t, err)

	sheet, err := readings.Parse(strings.NewReader(encoded))
	require.NoError(t, err)

	assertSheet(t, sheet)
	assert.NotEqual(t, "UTF-8", sheet.Charset)
}

func TestParse_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte(ptSheet)...)

	sheet, err := readings.Parse(bytes.NewReader(input))
	require.NoError(t, err)

	assertSheet(t, sheet)
}

func TestParse_UTF16LE(t *testing.T) {
	encoded, _, err := transform.String(unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder(), enSheet)
	require.NoError(t, err)

	sheet, err := readings.Parse(strings.NewReader(encoded))
	require.NoError(t, err)

	assertSheet(t, sheet)
	assert.Equal(t, "UTF-16LE", sheet.Charset)
}

func TestParse_NoCashRow(t *testing.T) {
	sheet, err := readings.Parse(strings.NewReader("type,subject,phase,value\nmeter,n1,start,10\n\n"))
	require.NoError(t, err)

	assert.Nil(t, sheet.CashCount)
	assert.Len(t, sheet.Readings, 1)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{name: "no header", input: "a,b,c\n1,2,3\n", field: "header"},
		{name: "unknown kind", input: "type,subject,phase,value\npump,n1,start,1\n", field: "row 2"},
		{name: "bad value", input: "type,subject,phase,value\nmeter,n1,start,abc\n", field: "row 2"},
		{name: "negative", input: "type,subject,phase,value\nmeter,n1,start,-1\n", field: "row 2"},
		{name: "missing subject", input: "type,subject,phase,value\ngauge,,end,1\n", field: "row 2"},
		{name: "bad phase", input: "type,subject,phase,value\nmeter,n1,middle,1\n", field: "row 2"},
		{name: "duplicate reading", input: "type,subject,phase,value\nmeter,n1,start,1\nmeter,n1,start,2\n", field: "row 3"},
		{name: "two cash counts", input: "type,subject,phase,value\ncash,,,1\ncash,,,2\n", field: "row 3"},
		{name: "delivery without tank", input: "type,subject,phase,value\ndelivery,,,100\n", field: "row 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readings.Parse(strings.NewReader(tt.input))

			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}
