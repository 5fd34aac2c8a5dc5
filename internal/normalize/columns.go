package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Canonical column keys used throughout the pipeline.
const (
	ColTicker        = "papel"
	ColSegment       = "segmento"
	ColPrice         = "cotacao"
	ColFFOYield      = "ffo_yield"
	ColDividendYield = "dividend_yield"
	ColPVP           = "p_vp"
	ColMarketValue   = "valor_de_mercado"
	ColLiquidity     = "liquidez"
	ColPropertyCount = "qtd_de_imoveis"
	ColPricePerSqm   = "preco_do_m2"
	ColRentPerSqm    = "aluguel_por_m2"
	ColCapRate       = "cap_rate"
	ColVacancy       = "vacancia_media"
)

// columnAliases maps canonicalized scraped labels to canonical keys.
// Display-label drift on the Fundamentus side lands here, not in code.
var columnAliases = map[string]string{
	"papel":            ColTicker,
	"fundo":            ColTicker,
	"segmento":         ColSegment,
	"setor":            ColSegment,
	"cotacao":          ColPrice,
	"ffo_yield":        ColFFOYield,
	"dividend_yield":   ColDividendYield,
	"div_yield":        ColDividendYield,
	"p_vp":             ColPVP,
	"valor_de_mercado": ColMarketValue,
	"valor_mercado":    ColMarketValue,
	"liquidez":         ColLiquidity,
	"liquidez_diaria":  ColLiquidity,
	"qtd_de_imoveis":   ColPropertyCount,
	"qtd_imoveis":      ColPropertyCount,
	"preco_do_m2":      ColPricePerSqm,
	"preco_m2":         ColPricePerSqm,
	"aluguel_por_m2":   ColRentPerSqm,
	"aluguel_m2":       ColRentPerSqm,
	"cap_rate":         ColCapRate,
	"vacancia_media":   ColVacancy,
	"vacancia":         ColVacancy,
}

// stripAccents removes diacritics ("Vacância" -> "Vacancia")
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CanonicalKey converts a scraped column label into a stable lookup key:
// accents stripped, lowercased, whitespace collapsed to underscores,
// "%" dropped, "/" and "." folded.
//
//	"Dividend Yield"   -> "dividend_yield"
//	"Vacância Média"   -> "vacancia_media"
//	"P/VP"             -> "p_vp"
func CanonicalKey(label string) string {
	s, _, err := transform.String(stripAccents, label)
	if err != nil {
		s = label
	}

	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), "_")
	s = strings.ReplaceAll(s, "%", "")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Trim(s, "_")

	return s
}

// ResolveColumn maps a scraped label to its canonical key.
// Unknown labels keep their canonicalized form so extra source columns
// pass through without breaking anything.
func ResolveColumn(label string) string {
	key := CanonicalKey(label)
	if canonical, ok := columnAliases[key]; ok {
		return canonical
	}
	return key
}
