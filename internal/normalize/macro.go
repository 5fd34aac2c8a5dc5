package normalize

import "strings"

// Macro-segment categories, a closed set over the finer-grained segments.
const (
	MacroPaper    = "Papéis / CRI"
	MacroLogistic = "Logístico"
	MacroMall     = "Shoppings"
	MacroFOF      = "FOF / FII de FIIs"
	MacroOffice   = "Lajes / Escritórios"
	MacroOther    = "Outros"
	MacroUnknown  = "Desconhecido"
)

// macroRules maps segment substrings to macro categories, checked in order.
var macroRules = []struct {
	needles []string
	macro   string
}{
	{[]string{"papel", "papéis", "cri", "receb"}, MacroPaper},
	{[]string{"logist", "logíst"}, MacroLogistic},
	{[]string{"shopp"}, MacroMall},
	{[]string{"fundo de fundos", "fii de fiis", "fundo de fii", "fof"}, MacroFOF},
	{[]string{"laje", "escritorio", "escritório"}, MacroOffice},
}

// MacroSegment derives the coarse grouping for a fund segment.
// Unmapped segments land in "Outros" rather than failing; an absent
// segment is "Desconhecido".
func MacroSegment(segment string) string {
	s := strings.ToLower(strings.TrimSpace(segment))
	if s == "" {
		return MacroUnknown
	}

	for _, rule := range macroRules {
		for _, needle := range rule.needles {
			if strings.Contains(s, needle) {
				return rule.macro
			}
		}
	}
	return MacroOther
}
