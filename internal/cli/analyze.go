package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kon1790/cparser/internal/analyzer"
	"github.com/kon1790/cparser/internal/typesys"
)

func newAnalyzeCommand() *cobra.Command {
	var header, format, output string

	cmd := &cobra.Command{
		Use:   "analyze <source>",
		Short: "Run the full pipeline over a C source file and emit its type/variable model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := analyzer.New(resolveABI(), logger)

			var imported *typesys.Manager
			if header != "" {
				tm, err := a.ParseHeader(header)
				if err != nil {
					return err
				}
				imported = tm
			}

			res, err := a.Analyze(args[0], imported)
			if err != nil {
				return err
			}

			var payload any
			switch format {
			case "json-simple":
				payload = analyzer.BuildSimplified(res)
			case "text":
				return writeText(cmd, res)
			default:
				payload = analyzer.BuildDocument(res, "all")
			}

			out, err := json.MarshalIndent(payload, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal output: %w", err)
			}
			return writeOutput(cmd, output, out)
		},
	}

	cmd.Flags().StringVar(&header, "header", "", "header file to parse first and merge into the global scope")
	cmd.Flags().StringVar(&format, "format", "json", "output format: text, json, json-simple")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write output to this path instead of stdout")
	return cmd
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func writeText(cmd *cobra.Command, res *analyzer.Result) error {
	doc := analyzer.BuildDocument(res, "all")
	fmt.Fprintf(cmd.OutOrStdout(), "structs: %d, unions: %d, enums: %d, typedefs: %d\n",
		len(doc.Types.Structs), len(doc.Types.Unions), len(doc.Types.Enums), len(doc.Types.Typedefs))
	fmt.Fprintf(cmd.OutOrStdout(), "variables: %d, pointers: %d, arrays: %d, structs: %d\n",
		len(doc.Variables.Variables), len(doc.Variables.PointerVars), len(doc.Variables.ArrayVars), len(doc.Variables.StructVars))
	for _, d := range res.Diagnostics {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s: %s\n", d.Location.String(), d.Kind, d.Message)
	}
	return nil
}
