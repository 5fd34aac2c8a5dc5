package fundamentus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brfin/fiiradar/internal/normalize"
)

const fixtureHTML = `<!DOCTYPE html>
<html>
<body>
<table>
  <tr><th>Menu</th><th>Link</th></tr>
  <tr><td>Home</td><td>/</td></tr>
</table>
<table id="tabelaResultado">
  <thead>
    <tr>
      <th>Papel</th><th>Segmento</th><th>Cotação</th><th>FFO Yield</th>
      <th>Dividend Yield</th><th>P/VP</th><th>Valor de Mercado</th>
      <th>Liquidez</th><th>Qtd de imóveis</th><th>Vacância Média</th>
    </tr>
  </thead>
  <tbody>
    <tr>
      <td>HGLG11</td><td>Logística</td><td>160,50</td><td>9,10%</td>
      <td>8,50%</td><td>0,95</td><td>500.000.000,00</td>
      <td>1.200.000,00</td><td>18</td><td>2,10%</td>
    </tr>
    <tr>
      <td>MXRF11</td><td>Papéis e Outros</td><td>10,12</td><td>-</td>
      <td>12,30%</td><td>1,02</td><td>2.500.000.000,00</td>
      <td>9.800.000,00</td><td>-</td><td>—</td>
    </tr>
    <tr><td colspan="10">publicidade</td></tr>
  </tbody>
</table>
</body>
</html>`

func TestParseResultTable(t *testing.T) {
	records, columns, err := parseResultTable(fixtureHTML)
	require.NoError(t, err)

	// The decoy menu table must be ignored
	require.Len(t, records, 2, "spacer row skipped, decoy table skipped")

	assert.Contains(t, columns, normalize.ColTicker)
	assert.Contains(t, columns, normalize.ColVacancy)

	first := records[0]
	assert.Equal(t, "HGLG11", first[normalize.ColTicker])
	assert.Equal(t, "Logística", first[normalize.ColSegment])
	assert.Equal(t, "8,50%", first[normalize.ColDividendYield])
	assert.Equal(t, "1.200.000,00", first[normalize.ColLiquidity])

	second := records[1]
	assert.Equal(t, "MXRF11", second[normalize.ColTicker])
	assert.Equal(t, "-", second[normalize.ColFFOYield])
	assert.Equal(t, "—", second[normalize.ColVacancy])
}

func TestParseResultTable_NoMatchingTable(t *testing.T) {
	html := `<html><body>
		<table><tr><th>A</th><th>B</th></tr><tr><td>1</td><td>2</td></tr></table>
	</body></html>`

	_, _, err := parseResultTable(html)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "column signature")
}

func TestParseResultTable_HeaderWithoutThead(t *testing.T) {
	html := `<html><body><table>
		<tr><th>Papel</th><th>Segmento</th><th>Cotação</th><th>Dividend Yield</th><th>P/VP</th><th>Liquidez</th></tr>
		<tr><td>VILG11</td><td>Logística</td><td>100,00</td><td>8,00%</td><td>1,00</td><td>800.000,00</td></tr>
	</table></body></html>`

	records, _, err := parseResultTable(html)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "VILG11", records[0][normalize.ColTicker])
}
