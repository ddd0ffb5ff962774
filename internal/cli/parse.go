package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kon1790/cparser/internal/analyzer"
	"github.com/kon1790/cparser/internal/typesys"
)

func newParseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <header>",
		Short: "Run only the type pass over a header, printing its type table as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := analyzer.New(resolveABI(), logger)
			tm, err := a.ParseHeader(args[0])
			if err != nil {
				return err
			}
			types := tm.ExportTypes("current")
			out, err := json.MarshalIndent(map[string]any{
				"structs":  types[typesys.KindStruct],
				"unions":   types[typesys.KindUnion],
				"enums":    types[typesys.KindEnum],
				"typedefs": types[typesys.KindTypedef],
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal types: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	return cmd
}
