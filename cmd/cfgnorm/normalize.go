package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	verr "github.com/madvorak/pumping-cfg/error"
	"github.com/madvorak/pumping-cfg/grammar"
	"github.com/madvorak/pumping-cfg/spec"
	"github.com/spf13/cobra"
)

var normalizeFlags = struct {
	nullableOnly *bool
	unitOnly     *bool
	json         *bool
	output       *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "normalize",
		Short:   "Remove nullable and unit productions from a grammar",
		Example: `  cfgnorm normalize grammar.bnf -o normalized.bnf`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runNormalize,
	}
	normalizeFlags.nullableOnly = cmd.Flags().Bool("nullable-only", false, "apply only the nullable elimination")
	normalizeFlags.unitOnly = cmd.Flags().Bool("unit-only", false, "apply only the unit elimination")
	normalizeFlags.json = cmd.Flags().Bool("json", false, "write the grammar description as JSON")
	normalizeFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runNormalize(cmd *cobra.Command, args []string) (retErr error) {
	var src io.Reader
	sourceName := "stdin"
	if len(args) > 0 {
		sourceName = args[0]
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	} else {
		src = os.Stdin
	}
	defer func() {
		specErrs, ok := retErr.(verr.SpecErrors)
		if !ok {
			return
		}
		for _, err := range specErrs {
			err.SourceName = sourceName
		}
	}()

	ast, err := spec.Parse(src)
	if err != nil {
		return err
	}
	b := grammar.GrammarBuilder{
		AST: ast,
	}
	gram, err := b.Build()
	if err != nil {
		return err
	}

	if !*normalizeFlags.unitOnly {
		gram, err = grammar.EliminateNullableRules(gram)
		if err != nil {
			return err
		}
	}
	if !*normalizeFlags.nullableOnly {
		gram, err = grammar.EliminateUnitRules(gram)
		if err != nil {
			return err
		}
	}

	desc, err := gram.Describe()
	if err != nil {
		return err
	}

	w := os.Stdout
	if *normalizeFlags.output != "" {
		f, err := os.OpenFile(*normalizeFlags.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if *normalizeFlags.json {
		out, err := json.MarshalIndent(desc, "", "    ")
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%v\n", string(out))
		return nil
	}
	return writeGrammar(w, desc)
}

// writeGrammar renders a grammar description back into the source format, so
// the output of one run can feed the next.
func writeGrammar(w io.Writer, desc *grammar.Description) error {
	if _, err := fmt.Fprintf(w, "#name %v;\n", desc.Name); err != nil {
		return err
	}

	var lastLHS string
	for _, prod := range desc.Productions {
		if prod.LHS != lastLHS {
			if lastLHS != "" {
				fmt.Fprintf(w, "    ;\n")
			}
			fmt.Fprintf(w, "\n%v\n", prod.LHS)
			fmt.Fprintf(w, "    : %v\n", strings.Join(prod.RHS, " "))
			lastLHS = prod.LHS
			continue
		}
		fmt.Fprintf(w, "    | %v\n", strings.Join(prod.RHS, " "))
	}
	if lastLHS != "" {
		fmt.Fprintf(w, "    ;\n")
	}

	wroteBlank := false
	for _, term := range desc.Terminals {
		if term.Anonymous {
			continue
		}
		if !wroteBlank {
			fmt.Fprintf(w, "\n")
			wroteBlank = true
		}
		if _, err := fmt.Fprintf(w, "%v: %q;\n", term.Name, term.Pattern); err != nil {
			return err
		}
	}
	return nil
}
