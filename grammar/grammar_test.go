package grammar

import (
	"strings"
	"testing"

	verr "github.com/madvorak/pumping-cfg/error"
	"github.com/madvorak/pumping-cfg/spec"
)

func TestGrammarBuilder_Build(t *testing.T) {
	t.Run("a grammar holds terminals, non-terminals, and productions", func(t *testing.T) {
		src := `
#name test;

s
    : a b
    | "!"
    |
    ;
a: "a";
b: "b";
`
		gram := genGrammar(t, src)
		if gram.Name() != "test" {
			t.Fatalf("unexpected name; want: test, got: %v", gram.Name())
		}

		r := gram.symbolTable.Reader()
		startText, ok := r.ToText(gram.startSymbol)
		if !ok || startText != "s" {
			t.Fatalf("unexpected start symbol; want: s, got: %v", startText)
		}
		if !gram.startSymbol.IsStart() {
			t.Fatal("the start symbol must carry the start property")
		}

		if n := len(r.TerminalSymbols()); n != 3 {
			t.Fatalf("unexpected terminal count; want: 3, got: %v", n)
		}
		if n := len(r.NonTerminalSymbols()); n != 1 {
			t.Fatalf("unexpected non-terminal count; want: 1, got: %v", n)
		}
		if n := len(gram.productionSet.getAllProductions()); n != 3 {
			t.Fatalf("unexpected production count; want: 3, got: %v", n)
		}
	})

	tests := []struct {
		caption string
		src     string
		cause   error
	}{
		{
			caption: "a grammar needs a name",
			src: `
s
    : "a"
    |
    ;
`,
			cause: semErrNoGrammarName,
		},
		{
			caption: "a grammar needs at least one non-terminal production",
			src: `
#name test;

a: "a";
`,
			cause: semErrNoProduction,
		},
		{
			caption: "a symbol on the RHS must be defined",
			src: `
#name test;

s
    : a undefined
    ;
a: "a";
`,
			cause: semErrUndefinedSym,
		},
		{
			caption: "a duplicate alternative is not allowed",
			src: `
#name test;

s
    : a
    | a
    ;
a: "a";
`,
			cause: semErrDuplicateProduction,
		},
		{
			caption: "a name cannot denote both a terminal and a non-terminal",
			src: `
#name test;

s
    : foo
    ;
foo
    : s
    ;
foo: "foo";
`,
			cause: semErrDuplicateName,
		},
		{
			caption: "an unknown directive is not allowed",
			src: `
#foo bar;

s
    : "a"
    ;
`,
			cause: semErrDirInvalidName,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			ast, err := spec.Parse(strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			b := GrammarBuilder{
				AST: ast,
			}
			_, err = b.Build()
			if err == nil {
				t.Fatal("the builder must fail")
			}
			specErrs, ok := err.(verr.SpecErrors)
			if !ok {
				t.Fatalf("unexpected error type: %T", err)
			}
			found := false
			for _, specErr := range specErrs {
				if specErr.Cause == tt.cause {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("an expected cause is missing; want: %v, got: %v", tt.cause, specErrs)
			}
		})
	}
}

func TestGrammar_Describe(t *testing.T) {
	src := `
#name test;

s
    : a s
    | "!"
    ;
a: "a";
`
	gram := genGrammar(t, src)
	desc, err := gram.Describe()
	if err != nil {
		t.Fatal(err)
	}

	if desc.Name != "test" {
		t.Fatalf("unexpected name; want: test, got: %v", desc.Name)
	}
	if len(desc.Terminals) != 2 {
		t.Fatalf("unexpected terminal count; want: 2, got: %v", len(desc.Terminals))
	}
	anons := 0
	for _, term := range desc.Terminals {
		if term.Anonymous {
			anons++
			if term.Pattern != "!" {
				t.Fatalf("unexpected anonymous pattern; want: !, got: %v", term.Pattern)
			}
		}
	}
	if anons != 1 {
		t.Fatalf("unexpected anonymous terminal count; want: 1, got: %v", anons)
	}
	if len(desc.NonTerminals) != 1 || !desc.NonTerminals[0].Start {
		t.Fatalf("unexpected non-terminals: %+v", desc.NonTerminals)
	}

	expected := []*Production{
		{LHS: "s", RHS: []string{`"!"`}},
		{LHS: "s", RHS: []string{"a", "s"}},
	}
	if len(desc.Productions) != len(expected) {
		t.Fatalf("unexpected production count; want: %v, got: %v", len(expected), len(desc.Productions))
	}
	for i, prod := range desc.Productions {
		eProd := expected[i]
		if prod.LHS != eProd.LHS {
			t.Fatalf("unexpected LHS; want: %v, got: %v", eProd.LHS, prod.LHS)
		}
		if strings.Join(prod.RHS, " ") != strings.Join(eProd.RHS, " ") {
			t.Fatalf("unexpected RHS; want: %v, got: %v", eProd.RHS, prod.RHS)
		}
	}
}
