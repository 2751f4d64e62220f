package grammar

import (
	"github.com/madvorak/pumping-cfg/grammar/symbol"
)

// unitPairSet is the reflexive-transitive closure of the chain productions:
// (u, v) is a member iff u can derive the one-symbol sequence [v] through
// zero or more chain productions. The relation is reflexive on the
// generators and transitive by construction, but not generally symmetric.
type unitPairSet struct {
	pairs map[symbol.Symbol]map[symbol.Symbol]struct{}
}

func newUnitPairSet(prods *productionSet) *unitPairSet {
	ups := &unitPairSet{
		pairs: map[symbol.Symbol]map[symbol.Symbol]struct{}{},
	}
	for _, gen := range prods.generators() {
		ups.add(gen, gen)
	}
	return ups
}

func (ups *unitPairSet) add(u, v symbol.Symbol) bool {
	row, ok := ups.pairs[u]
	if !ok {
		row = map[symbol.Symbol]struct{}{}
		ups.pairs[u] = row
	}
	if _, ok := row[v]; ok {
		return false
	}
	row[v] = struct{}{}
	return true
}

func (ups *unitPairSet) contains(u, v symbol.Symbol) bool {
	row, ok := ups.pairs[u]
	if !ok {
		return false
	}
	_, ok = row[v]
	return ok
}

// tails returns every v with (u, v) in the relation.
func (ups *unitPairSet) tails(u symbol.Symbol) map[symbol.Symbol]struct{} {
	return ups.pairs[u]
}

func (ups *unitPairSet) size() int {
	n := 0
	for _, row := range ups.pairs {
		n += len(row)
	}
	return n
}

// genUnitPairSet computes the unit-pair relation of a rule set as a monotone
// fixpoint starting from the diagonal over the generators. A round folds
// every chain production u → v against the partial relation, adding (u, w)
// for every (v, w) already present. The computation stops at the first round
// that adds nothing.
func genUnitPairSet(prods *productionSet) *unitPairSet {
	ups := newUnitPairSet(prods)

	// The relation grows monotonically within generators × generators, so a
	// continuing round shrinks the remaining capacity of that product.
	gens := len(prods.generators())
	maxRounds := gens*gens + 1
	rounds := 0
	for {
		rounds++
		if rounds > maxRounds {
			panic("unit pair computation exceeded its round bound")
		}

		more := false
		for _, prod := range prods.getAllProductions() {
			if !prod.isChain() {
				continue
			}
			for w := range ups.tails(prod.rhs[0]) {
				if ups.add(prod.lhs, w) {
					more = true
				}
			}
		}
		if !more {
			break
		}
	}
	return ups
}

// eliminateUnitRules rewrites a rule set so that no chain production remains,
// without changing the generated language. For every unit pair (u, v), every
// non-chain production of v is emitted with u as its LHS; chain productions
// are never copied, only their transitive effect survives. The reflexive
// pairs guarantee that the non-chain productions of each generator are
// preserved verbatim.
func eliminateUnitRules(prods *productionSet, ups *unitPairSet) (*productionSet, error) {
	newProds := newProductionSet()
	for u, row := range ups.pairs {
		for v := range row {
			vProds, ok := prods.findByLHS(v)
			if !ok {
				continue
			}
			for _, prod := range vProds {
				if prod.isChain() {
					continue
				}
				p, err := newProduction(u, prod.rhs)
				if err != nil {
					return nil, err
				}
				newProds.append(p)
			}
		}
	}
	return newProds, nil
}
