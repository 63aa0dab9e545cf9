package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vine-io/flowlayout"
	"github.com/vine-io/flowlayout/importer"
	"github.com/vine-io/flowlayout/schema"
)

var (
	importOutput string
	importSuffix bool
)

var importCmd = &cobra.Command{
	Use:   "import <layout_file>",
	Short: "Build a BPMN diagram from a layout config",
	Long: `The import command recreates the process, lanes, elements, flows and data
associations of a layout config and writes them as BPMN 2.0 XML. Items that
can not be created are reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		format, err := resolveFormat(input)
		if err != nil {
			return err
		}
		data, err := readInput(input)
		if err != nil {
			return err
		}
		cfg, err := schema.Unmarshal(data, format)
		if err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}

		opts := importerOptions()
		if importSuffix {
			opts = append(opts, importer.WithExecutionSuffix())
		}
		out, result, err := flowlayout.BuildXML(cmd.Context(), cfg, opts...)
		stderr := cmd.ErrOrStderr()
		if result != nil {
			printDiagnostics(stderr, result.Report)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}

		output := outputFor(input, importOutput, "bpmn")
		if err = writeOutput(output, out); err != nil {
			return err
		}
		okColor.Fprintf(stderr, "%s -> %s: %d elements, %d positioned, %s\n",
			input, output, len(result.Elements), result.Positioned, result.Report.Summary())
		if len(result.Missing) > 0 {
			warnColor.Fprintf(stderr, "  no graphic: %v\n", result.Missing)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importOutput, "output", "o", "", "output file, - for stdout")
	importCmd.Flags().BoolVar(&importSuffix, "suffix", false, "append an execution suffix to the process name")
	AddCommand(importCmd)
}
