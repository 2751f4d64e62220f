package grammar

import (
	"sort"
	"strings"
	"testing"

	"github.com/madvorak/pumping-cfg/grammar/symbol"
	"github.com/madvorak/pumping-cfg/spec"
)

func genGrammar(t *testing.T, src string) *Grammar {
	t.Helper()

	ast, err := spec.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	b := GrammarBuilder{
		AST: ast,
	}
	gram, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return gram
}

type testSymbolGenerator func(text string) symbol.Symbol

func newTestSymbolGenerator(t *testing.T, symTab *symbol.SymbolTableReader) testSymbolGenerator {
	return func(text string) symbol.Symbol {
		t.Helper()

		sym, ok := symTab.ToSymbol(text)
		if !ok {
			t.Fatalf("symbol was not found: %v", text)
		}
		return sym
	}
}

type testProductionGenerator func(lhs string, rhs ...string) *production

func newTestProductionGenerator(t *testing.T, genSym testSymbolGenerator) testProductionGenerator {
	return func(lhs string, rhs ...string) *production {
		t.Helper()

		rhsSym := []symbol.Symbol{}
		for _, text := range rhs {
			rhsSym = append(rhsSym, genSym(text))
		}
		prod, err := newProduction(genSym(lhs), rhsSym)
		if err != nil {
			t.Fatalf("failed to create a production: %v", err)
		}

		return prod
	}
}

// enumerate collects the terminal strings derivable from a symbol within the
// given number of rule applications, pruning sentential forms that already
// hold more than maxLen terminals. With a generous step bound this saturates
// the generated language up to maxLen for the small grammars the tests use.
func enumerate(g *Grammar, from symbol.Symbol, maxSteps, maxLen int) map[string]struct{} {
	out := map[string]struct{}{}
	deriveForm(g, []symbol.Symbol{from}, maxSteps, maxLen, out)
	return out
}

func language(g *Grammar, maxSteps, maxLen int) map[string]struct{} {
	return enumerate(g, g.startSymbol, maxSteps, maxLen)
}

func deriveForm(g *Grammar, form []symbol.Symbol, steps, maxLen int, out map[string]struct{}) {
	termCount := 0
	leftmost := -1
	for i, sym := range form {
		if sym.IsTerminal() {
			termCount++
			continue
		}
		if leftmost < 0 {
			leftmost = i
		}
	}
	if termCount > maxLen {
		return
	}
	if leftmost < 0 {
		out[spellForm(g, form)] = struct{}{}
		return
	}
	if steps == 0 {
		return
	}
	prods, ok := g.productionSet.findByLHS(form[leftmost])
	if !ok {
		return
	}
	for _, prod := range prods {
		next := make([]symbol.Symbol, 0, len(form)+prod.rhsLen-1)
		next = append(next, form[:leftmost]...)
		next = append(next, prod.rhs...)
		next = append(next, form[leftmost+1:]...)
		deriveForm(g, next, steps-1, maxLen, out)
	}
}

func spellForm(g *Grammar, form []symbol.Symbol) string {
	texts := make([]string, 0, len(form))
	for _, sym := range form {
		text, _ := g.spellSymbol(sym)
		texts = append(texts, text)
	}
	return strings.Join(texts, " ")
}

func testLanguageEquality(t *testing.T, want, got map[string]struct{}) {
	t.Helper()

	if len(want) != len(got) {
		t.Fatalf("unexpected language; want: %v, got: %v", sortedStrings(want), sortedStrings(got))
	}
	for s := range want {
		if _, ok := got[s]; !ok {
			t.Fatalf("unexpected language; want: %v, got: %v", sortedStrings(want), sortedStrings(got))
		}
	}
}

func sortedStrings(set map[string]struct{}) []string {
	ss := make([]string, 0, len(set))
	for s := range set {
		ss = append(ss, s)
	}
	sort.Strings(ss)
	return ss
}

func nullableTexts(t *testing.T, g *Grammar, nul *nullableSet) []string {
	t.Helper()

	r := g.symbolTable.Reader()
	var texts []string
	for sym := range nul.set {
		text, ok := r.ToText(sym)
		if !ok {
			t.Fatalf("a symbol was not found in the symbol table: %v", sym)
		}
		texts = append(texts, text)
	}
	sort.Strings(texts)
	return texts
}
