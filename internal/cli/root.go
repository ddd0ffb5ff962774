// Package cli wires the cobra command tree: parse, analyze, and serve
// (§6's "CLI (external collaborator)" surface).
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kon1790/cparser/internal/typesys"
)

var (
	targetFlag string
	logger     = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
)

// NewRootCommand builds the cparser command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "cparser",
		Short:         "A static analyzer for C translation units",
		Long:          "cparser parses C headers and sources into a typed, JSON-serializable model: struct/union/enum/typedef definitions and shaped variable initializers.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&targetFlag, "target", "lp64", "target ABI for size/alignment/offset computation (lp64, ilp32, llp64)")

	root.AddCommand(newParseCommand())
	root.AddCommand(newAnalyzeCommand())
	root.AddCommand(newServeCommand())
	return root
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

func resolveABI() typesys.ABI {
	switch targetFlag {
	case "ilp32":
		return typesys.ILP32
	case "llp64":
		return typesys.LLP64
	default:
		return typesys.LP64
	}
}
