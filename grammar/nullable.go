package grammar

import (
	"github.com/madvorak/pumping-cfg/grammar/symbol"
)

// nullableSet is the set of non-terminals that can derive the empty sequence.
type nullableSet struct {
	set map[symbol.Symbol]struct{}
}

func newNullableSet() *nullableSet {
	return &nullableSet{
		set: map[symbol.Symbol]struct{}{},
	}
}

func (s *nullableSet) add(sym symbol.Symbol) bool {
	if _, ok := s.set[sym]; ok {
		return false
	}
	s.set[sym] = struct{}{}
	return true
}

func (s *nullableSet) contains(sym symbol.Symbol) bool {
	_, ok := s.set[sym]
	return ok
}

func (s *nullableSet) size() int {
	return len(s.set)
}

// genNullableSet computes the nullable set of a rule set as a monotone
// fixpoint starting from the empty set. A round marks the LHS of every
// production whose RHS consists solely of non-terminals already marked
// nullable; an empty RHS qualifies immediately. The computation stops at the
// first round that marks nothing.
func genNullableSet(prods *productionSet) *nullableSet {
	nul := newNullableSet()

	// Every continuing round strictly grows the set, and the set is bounded
	// by the generators, so the round count cannot exceed their number.
	maxRounds := len(prods.generators()) + 1
	rounds := 0
	for {
		rounds++
		if rounds > maxRounds {
			panic("nullable set computation exceeded its round bound")
		}

		more := false
		for _, prod := range prods.getAllProductions() {
			if nul.contains(prod.lhs) {
				continue
			}
			if !derivesEmpty(nul, prod) {
				continue
			}
			nul.add(prod.lhs)
			more = true
		}
		if !more {
			break
		}
	}
	return nul
}

// derivesEmpty reports whether every symbol of the RHS is a non-terminal
// already known to be nullable. A terminal anywhere in the RHS blocks the
// production for good; an unmarked non-terminal blocks it for this round.
func derivesEmpty(nul *nullableSet, prod *production) bool {
	for _, sym := range prod.rhs {
		if sym.IsTerminal() {
			return false
		}
		if !nul.contains(sym) {
			return false
		}
	}
	return true
}
