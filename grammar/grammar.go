package grammar

import (
	"fmt"

	verr "github.com/madvorak/pumping-cfg/error"
	"github.com/madvorak/pumping-cfg/grammar/symbol"
	"github.com/madvorak/pumping-cfg/spec"
)

// Grammar is an immutable context-free grammar. The transformation passes
// never modify a Grammar in place; they construct a new value sharing the
// symbol table and the start symbol and carrying a fresh rule set.
type Grammar struct {
	name          string
	symbolTable   *symbol.SymbolTable
	startSymbol   symbol.Symbol
	productionSet *productionSet
	term2Pattern  map[symbol.Symbol]string
	sym2AnonPat   map[symbol.Symbol]string
}

func (g *Grammar) Name() string {
	return g.name
}

func (g *Grammar) derive(prods *productionSet) *Grammar {
	return &Grammar{
		name:          g.name,
		symbolTable:   g.symbolTable,
		startSymbol:   g.startSymbol,
		productionSet: prods,
		term2Pattern:  g.term2Pattern,
		sym2AnonPat:   g.sym2AnonPat,
	}
}

// EliminateNullableRules returns a grammar generating the same language as
// the receiver except for the empty string, in which no production has an
// empty RHS. The nullable set is computed from scratch; the symbol table and
// the start symbol carry over unchanged.
func EliminateNullableRules(g *Grammar) (*Grammar, error) {
	nul := genNullableSet(g.productionSet)
	prods, err := eliminateNullableRules(g.productionSet, nul)
	if err != nil {
		return nil, err
	}
	return g.derive(prods), nil
}

// EliminateUnitRules returns a grammar generating exactly the same language
// as the receiver, in which no production has a single non-terminal as its
// RHS. The unit-pair relation is computed from scratch; the symbol table and
// the start symbol carry over unchanged.
func EliminateUnitRules(g *Grammar) (*Grammar, error) {
	ups := genUnitPairSet(g.productionSet)
	prods, err := eliminateUnitRules(g.productionSet, ups)
	if err != nil {
		return nil, err
	}
	return g.derive(prods), nil
}

type GrammarBuilder struct {
	AST *spec.RootNode

	errs verr.SpecErrors
}

func (b *GrammarBuilder) Build() (*Grammar, error) {
	var name string
	for _, dir := range b.AST.Directives {
		if dir.Name != "name" {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrDirInvalidName,
				Detail: dir.Name,
				Row:    dir.Pos.Row,
				Col:    dir.Pos.Col,
			})
			continue
		}
		if len(dir.Parameters) != 1 {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrDirInvalidParam,
				Detail: "'name' takes just one ID parameter",
				Row:    dir.Pos.Row,
				Col:    dir.Pos.Col,
			})
			continue
		}
		name = dir.Parameters[0]
	}
	if name == "" {
		b.errs = append(b.errs, &verr.SpecError{
			Cause: semErrNoGrammarName,
		})
	}
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	// A production whose RHS is a single alternative holding a single pattern
	// defines a terminal; every other production defines a non-terminal.
	termDefs := map[string]*spec.ProductionNode{}
	var nonTermDefs []*spec.ProductionNode
	for _, prod := range b.AST.Productions {
		if isTerminalDefinition(prod) {
			if _, ok := termDefs[prod.LHS]; ok {
				b.errs = append(b.errs, &verr.SpecError{
					Cause:  semErrDuplicateProduction,
					Detail: prod.LHS,
					Row:    prod.Pos.Row,
					Col:    prod.Pos.Col,
				})
				continue
			}
			termDefs[prod.LHS] = prod
			continue
		}
		nonTermDefs = append(nonTermDefs, prod)
	}
	if len(nonTermDefs) == 0 {
		b.errs = append(b.errs, &verr.SpecError{
			Cause: semErrNoProduction,
		})
		return nil, b.errs
	}

	symTab := symbol.NewSymbolTable()
	w := symTab.Writer()
	term2Pat := map[symbol.Symbol]string{}
	anonPat := map[symbol.Symbol]string{}

	startSym, err := w.RegisterStartSymbol(nonTermDefs[0].LHS)
	if err != nil {
		return nil, err
	}
	for _, prod := range nonTermDefs {
		if _, ok := termDefs[prod.LHS]; ok {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrDuplicateName,
				Detail: prod.LHS,
				Row:    prod.Pos.Row,
				Col:    prod.Pos.Col,
			})
			continue
		}
		if _, err := w.RegisterNonTerminalSymbol(prod.LHS); err != nil {
			return nil, err
		}
	}
	for _, prod := range termDefs {
		sym, err := w.RegisterTerminalSymbol(prod.LHS)
		if err != nil {
			return nil, err
		}
		term2Pat[sym] = prod.RHS[0].Elements[0].Pattern
	}
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	r := symTab.Reader()
	prods := newProductionSet()
	for _, prod := range nonTermDefs {
		lhsSym, ok := r.ToSymbol(prod.LHS)
		if !ok {
			// The duplicate-name check above already rejected this LHS.
			continue
		}
		for _, alt := range prod.RHS {
			rhs := make([]symbol.Symbol, 0, len(alt.Elements))
			for _, elem := range alt.Elements {
				var sym symbol.Symbol
				if elem.Pattern != "" {
					// An inline pattern defines an anonymous terminal. Its
					// quoted spelling cannot collide with an identifier.
					var err error
					sym, err = w.RegisterTerminalSymbol(fmt.Sprintf("%q", elem.Pattern))
					if err != nil {
						return nil, err
					}
					anonPat[sym] = elem.Pattern
				} else {
					var ok bool
					sym, ok = r.ToSymbol(elem.ID)
					if !ok {
						b.errs = append(b.errs, &verr.SpecError{
							Cause:  semErrUndefinedSym,
							Detail: elem.ID,
							Row:    elem.Pos.Row,
							Col:    elem.Pos.Col,
						})
						continue
					}
				}
				rhs = append(rhs, sym)
			}
			p, err := newProduction(lhsSym, rhs)
			if err != nil {
				return nil, err
			}
			if !prods.append(p) {
				b.errs = append(b.errs, &verr.SpecError{
					Cause:  semErrDuplicateProduction,
					Detail: prod.LHS,
					Row:    prod.Pos.Row,
					Col:    prod.Pos.Col,
				})
			}
		}
	}
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	return &Grammar{
		name:          name,
		symbolTable:   symTab,
		startSymbol:   startSym,
		productionSet: prods,
		term2Pattern:  term2Pat,
		sym2AnonPat:   anonPat,
	}, nil
}

func isTerminalDefinition(prod *spec.ProductionNode) bool {
	return len(prod.RHS) == 1 && len(prod.RHS[0].Elements) == 1 && prod.RHS[0].Elements[0].Pattern != ""
}
