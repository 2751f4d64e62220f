package grammar

import (
	"fmt"
	"sort"

	"github.com/madvorak/pumping-cfg/grammar/symbol"
)

type Terminal struct {
	Number    int    `json:"number"`
	Name      string `json:"name"`
	Anonymous bool   `json:"anonymous"`
	Pattern   string `json:"pattern"`
}

type NonTerminal struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Start  bool   `json:"start"`
}

type Production struct {
	LHS string   `json:"lhs"`
	RHS []string `json:"rhs"`
}

type Description struct {
	Name         string         `json:"name"`
	Terminals    []*Terminal    `json:"terminals"`
	NonTerminals []*NonTerminal `json:"non_terminals"`
	Productions  []*Production  `json:"productions"`
}

// Describe renders the grammar into a form suitable for presentation. The
// productions are sorted by LHS, with the start symbol first, and the RHS
// symbols are spelled the way the source format spells them: named terminals
// and non-terminals by name, anonymous terminals as quoted patterns.
func (g *Grammar) Describe() (*Description, error) {
	r := g.symbolTable.Reader()

	var terms []*Terminal
	for _, sym := range r.TerminalSymbols() {
		name, ok := r.ToText(sym)
		if !ok {
			return nil, fmt.Errorf("a terminal symbol was not found in the symbol table: %v", sym)
		}
		_, anon := g.sym2AnonPat[sym]
		pat := g.term2Pattern[sym]
		if anon {
			pat = g.sym2AnonPat[sym]
		}
		terms = append(terms, &Terminal{
			Number:    sym.Num().Int(),
			Name:      name,
			Anonymous: anon,
			Pattern:   pat,
		})
	}

	var nonTerms []*NonTerminal
	for _, sym := range r.NonTerminalSymbols() {
		name, ok := r.ToText(sym)
		if !ok {
			return nil, fmt.Errorf("a non-terminal symbol was not found in the symbol table: %v", sym)
		}
		nonTerms = append(nonTerms, &NonTerminal{
			Number: sym.Num().Int(),
			Name:   name,
			Start:  sym == g.startSymbol,
		})
	}

	var prods []*Production
	for _, prod := range g.productionSet.getAllProductions() {
		lhs, ok := r.ToText(prod.lhs)
		if !ok {
			return nil, fmt.Errorf("a non-terminal symbol was not found in the symbol table: %v", prod.lhs)
		}
		rhs := make([]string, 0, prod.rhsLen)
		for _, sym := range prod.rhs {
			text, err := g.spellSymbol(sym)
			if err != nil {
				return nil, err
			}
			rhs = append(rhs, text)
		}
		prods = append(prods, &Production{
			LHS: lhs,
			RHS: rhs,
		})
	}
	sort.Slice(prods, func(i, j int) bool {
		if prods[i].LHS != prods[j].LHS {
			pi, pj := prods[i], prods[j]
			if start, _ := r.ToText(g.startSymbol); pi.LHS == start || pj.LHS == start {
				return pi.LHS == start
			}
			return pi.LHS < pj.LHS
		}
		return lessRHS(prods[i].RHS, prods[j].RHS)
	})

	return &Description{
		Name:         g.name,
		Terminals:    terms,
		NonTerminals: nonTerms,
		Productions:  prods,
	}, nil
}

func (g *Grammar) spellSymbol(sym symbol.Symbol) (string, error) {
	if pat, ok := g.sym2AnonPat[sym]; ok {
		return fmt.Sprintf("%q", pat), nil
	}
	text, ok := g.symbolTable.Reader().ToText(sym)
	if !ok {
		return "", fmt.Errorf("a symbol was not found in the symbol table: %v", sym)
	}
	return text, nil
}

func lessRHS(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
