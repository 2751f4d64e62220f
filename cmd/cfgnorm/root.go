package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cfgnorm",
	Short: "Normalize a context-free grammar",
	Long: `cfgnorm transforms a context-free grammar into an equivalent grammar free of
degenerate productions:
- Nullable elimination removes every production deriving the empty sequence.
- Unit elimination removes every production whose RHS is a single non-terminal.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	return rootCmd.Execute()
}
