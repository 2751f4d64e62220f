package spec

import (
	"fmt"
	"io"
	"strings"
	"sync"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

type tokenKind string

const (
	tokenKindID        = tokenKind("id")
	tokenKindPattern   = tokenKind("pattern")
	tokenKindColon     = tokenKind(":")
	tokenKindOr        = tokenKind("|")
	tokenKindSemicolon = tokenKind(";")
	tokenKindDirective = tokenKind("#")
	tokenKindEOF       = tokenKind("eof")
	tokenKindInvalid   = tokenKind("invalid")
)

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type token struct {
	kind tokenKind
	text string
	pos  Position
}

func newSymbolToken(kind tokenKind, pos Position) *token {
	return &token{
		kind: kind,
		pos:  pos,
	}
}

func newIDToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindID,
		text: text,
		pos:  pos,
	}
}

func newPatternToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindPattern,
		text: text,
		pos:  pos,
	}
}

func newEOFToken() *token {
	return &token{
		kind: tokenKindEOF,
	}
}

func newInvalidToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindInvalid,
		text: text,
		pos:  pos,
	}
}

var (
	lexSpecOnce     sync.Once
	compiledLexSpec *mlspec.CompiledLexSpec
	lexSpecErr      error
)

// The lexical specification of the grammar-definition format. It is compiled
// on first use and shared by all lexers.
func lexSpec() (*mlspec.CompiledLexSpec, error) {
	lexSpecOnce.Do(func() {
		s := &mlspec.LexSpec{
			Name: "grammar",
			Entries: []*mlspec.LexEntry{
				{
					Kind:    mlspec.LexKindName("white_space"),
					Pattern: mlspec.LexPattern(`[\u{0009}\u{000A}\u{000D}\u{0020}]+`),
				},
				{
					Kind:    mlspec.LexKindName("line_comment"),
					Pattern: mlspec.LexPattern(`//[^\u{000A}]*`),
				},
				{
					Kind:    mlspec.LexKindName("identifier"),
					Pattern: mlspec.LexPattern(`[a-z_][0-9a-z_]*`),
				},
				{
					Kind:    mlspec.LexKindName("pattern"),
					Pattern: mlspec.LexPattern(`"(\\.|[^"\\])*"`),
				},
				{
					Kind:    mlspec.LexKindName("colon"),
					Pattern: mlspec.LexPattern(`:`),
				},
				{
					Kind:    mlspec.LexKindName("or"),
					Pattern: mlspec.LexPattern(`\|`),
				},
				{
					Kind:    mlspec.LexKindName("semicolon"),
					Pattern: mlspec.LexPattern(`;`),
				},
				{
					Kind:    mlspec.LexKindName("directive_marker"),
					Pattern: mlspec.LexPattern(`#`),
				},
			},
		}
		clspec, err, cErrs := mlcompiler.Compile(s, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				var b strings.Builder
				fmt.Fprintf(&b, "%v: %v", cErrs[0].Kind, cErrs[0].Cause)
				for _, cErr := range cErrs[1:] {
					fmt.Fprintf(&b, "\n%v: %v", cErr.Kind, cErr.Cause)
				}
				lexSpecErr = fmt.Errorf("%v", b.String())
				return
			}
			lexSpecErr = err
			return
		}
		compiledLexSpec = clspec
	})
	return compiledLexSpec, lexSpecErr
}

type lexer struct {
	s *mlspec.CompiledLexSpec
	d *mldriver.Lexer
}

func newLexer(src io.Reader) (*lexer, error) {
	s, err := lexSpec()
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(s), src)
	if err != nil {
		return nil, err
	}
	return &lexer{
		s: s,
		d: d,
	}, nil
}

func (l *lexer) next() (*token, error) {
	var tok *mldriver.Token
	for {
		var err error
		tok, err = l.d.Next()
		if err != nil {
			return nil, err
		}
		if tok.Invalid {
			return newInvalidToken(string(tok.Lexeme), newPosition(tok.Row+1, tok.Col+1)), nil
		}
		if tok.EOF {
			return newEOFToken(), nil
		}
		switch l.s.KindNames[tok.KindID].String() {
		case "white_space":
			continue
		case "line_comment":
			continue
		}

		break
	}

	switch l.s.KindNames[tok.KindID].String() {
	case "identifier":
		return newIDToken(string(tok.Lexeme), newPosition(tok.Row+1, tok.Col+1)), nil
	case "pattern":
		// Remove the delimiting quotation marks and interpret the escape
		// sequences the format defines, \" and \\.
		text := string(tok.Lexeme)
		text = text[1 : len(text)-1]
		if text == "" {
			return nil, synErrEmptyPattern
		}
		var b strings.Builder
		for i := 0; i < len(text); i++ {
			c := text[i]
			if c == '\\' && i+1 < len(text) {
				i++
				c = text[i]
			}
			b.WriteByte(c)
		}
		return newPatternToken(b.String(), newPosition(tok.Row+1, tok.Col+1)), nil
	case "colon":
		return newSymbolToken(tokenKindColon, newPosition(tok.Row+1, tok.Col+1)), nil
	case "or":
		return newSymbolToken(tokenKindOr, newPosition(tok.Row+1, tok.Col+1)), nil
	case "semicolon":
		return newSymbolToken(tokenKindSemicolon, newPosition(tok.Row+1, tok.Col+1)), nil
	case "directive_marker":
		return newSymbolToken(tokenKindDirective, newPosition(tok.Row+1, tok.Col+1)), nil
	default:
		return newInvalidToken(string(tok.Lexeme), newPosition(tok.Row+1, tok.Col+1)), nil
	}
}
