package spec

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		ast     *RootNode
		synErr  *SyntaxError
	}{
		{
			caption: "a grammar can contain directives, non-terminals, and terminals",
			src: `
#name test;

s
    : foo bar
    |
    ;
foo: "foo";
bar: "bar";
`,
			ast: &RootNode{
				Directives: []*DirectiveNode{
					dir("name", "test"),
				},
				Productions: []*ProductionNode{
					prod("s",
						alt(id("foo"), id("bar")),
						alt(),
					),
					prod("foo", alt(pat("foo"))),
					prod("bar", alt(pat("bar"))),
				},
			},
		},
		{
			caption: "an alternative can be empty",
			src:     `s: ;`,
			ast: &RootNode{
				Productions: []*ProductionNode{
					prod("s", alt()),
				},
			},
		},
		{
			caption: "a grammar must have at least one production",
			src:     `#name test;`,
			synErr:  synErrNoProduction,
		},
		{
			caption: "a directive needs a name",
			src:     `#;`,
			synErr:  synErrNoDirectiveName,
		},
		{
			caption: "a production needs a colon",
			src:     `s foo;`,
			synErr:  synErrNoColon,
		},
		{
			caption: "a production needs a semicolon",
			src:     `s: foo`,
			synErr:  synErrNoSemicolon,
		},
		{
			caption: "an unknown character makes the parse fail",
			src:     `s: ?;`,
			synErr:  synErrInvalidToken,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			ast, err := Parse(strings.NewReader(tt.src))
			if tt.synErr != nil {
				if err != tt.synErr {
					t.Fatalf("unexpected error; want: %v, got: %v", tt.synErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			testRootNode(t, ast, tt.ast)
		})
	}
}

func dir(name string, params ...string) *DirectiveNode {
	return &DirectiveNode{
		Name:       name,
		Parameters: params,
	}
}

func prod(lhs string, alts ...*AlternativeNode) *ProductionNode {
	return &ProductionNode{
		LHS: lhs,
		RHS: alts,
	}
}

func alt(elems ...*ElementNode) *AlternativeNode {
	return &AlternativeNode{
		Elements: elems,
	}
}

func id(id string) *ElementNode {
	return &ElementNode{
		ID: id,
	}
}

func pat(p string) *ElementNode {
	return &ElementNode{
		Pattern: p,
	}
}

func testRootNode(t *testing.T, actual, expected *RootNode) {
	t.Helper()

	if len(actual.Directives) != len(expected.Directives) {
		t.Fatalf("unexpected directive count; want: %v, got: %v", len(expected.Directives), len(actual.Directives))
	}
	for i, dir := range actual.Directives {
		eDir := expected.Directives[i]
		if dir.Name != eDir.Name {
			t.Fatalf("unexpected directive name; want: %v, got: %v", eDir.Name, dir.Name)
		}
		if len(dir.Parameters) != len(eDir.Parameters) {
			t.Fatalf("unexpected directive parameter count; want: %v, got: %v", len(eDir.Parameters), len(dir.Parameters))
		}
		for j, param := range dir.Parameters {
			if param != eDir.Parameters[j] {
				t.Fatalf("unexpected directive parameter; want: %v, got: %v", eDir.Parameters[j], param)
			}
		}
	}
	if len(actual.Productions) != len(expected.Productions) {
		t.Fatalf("unexpected production count; want: %v, got: %v", len(expected.Productions), len(actual.Productions))
	}
	for i, prod := range actual.Productions {
		testProductionNode(t, prod, expected.Productions[i])
	}
}

func testProductionNode(t *testing.T, actual, expected *ProductionNode) {
	t.Helper()

	if actual.LHS != expected.LHS {
		t.Fatalf("unexpected LHS; want: %v, got: %v", expected.LHS, actual.LHS)
	}
	if len(actual.RHS) != len(expected.RHS) {
		t.Fatalf("unexpected alternative count; want: %v, got: %v", len(expected.RHS), len(actual.RHS))
	}
	for i, alt := range actual.RHS {
		eAlt := expected.RHS[i]
		if len(alt.Elements) != len(eAlt.Elements) {
			t.Fatalf("unexpected element count; want: %v, got: %v", len(eAlt.Elements), len(alt.Elements))
		}
		for j, elem := range alt.Elements {
			eElem := eAlt.Elements[j]
			if elem.ID != eElem.ID || elem.Pattern != eElem.Pattern {
				t.Fatalf("unexpected element; want: %+v, got: %+v", eElem, elem)
			}
		}
	}
}
