package grammar

import (
	"github.com/madvorak/pumping-cfg/grammar/symbol"
)

// eliminateNullableRules rewrites a rule set so that no production derives the
// empty sequence in one step, without changing the generated language except
// for the empty string. Every production is replaced by all variants obtained
// by keeping or dropping each nullable occurrence of its RHS; variants whose
// RHS became empty are discarded, and duplicates collapse through the
// production IDs.
func eliminateNullableRules(prods *productionSet, nul *nullableSet) (*productionSet, error) {
	newProds := newProductionSet()
	for _, prod := range prods.getAllProductions() {
		for _, rhs := range expandNullable(prod.rhs, nul) {
			if len(rhs) == 0 {
				continue
			}
			p, err := newProduction(prod.lhs, rhs)
			if err != nil {
				return nil, err
			}
			newProds.append(p)
		}
	}
	return newProds, nil
}

// expandNullable enumerates the subsequences of an RHS obtained by keeping or
// dropping each occurrence of a nullable non-terminal. Terminals and
// non-nullable non-terminals are always kept, so the enumeration yields at
// most 2^k candidates for k nullable occurrences, each preserving the
// relative order of the kept symbols.
func expandNullable(rhs []symbol.Symbol, nul *nullableSet) [][]symbol.Symbol {
	if len(rhs) == 0 {
		return [][]symbol.Symbol{nil}
	}

	head := rhs[0]
	tails := expandNullable(rhs[1:], nul)

	cands := make([][]symbol.Symbol, 0, len(tails)*2)
	for _, tail := range tails {
		kept := make([]symbol.Symbol, 0, len(tail)+1)
		kept = append(kept, head)
		kept = append(kept, tail...)
		cands = append(cands, kept)
	}
	if head.IsNonTerminal() && nul.contains(head) {
		cands = append(cands, tails...)
	}
	return cands
}
