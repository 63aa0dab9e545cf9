package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vine-io/flowlayout/schema"
)

var (
	convertTo     string
	convertOutput string
)

var convertCmd = &cobra.Command{
	Use:   "convert <layout_file>",
	Short: "Convert a layout config to another format",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		from, err := resolveFormat(input)
		if err != nil {
			return err
		}
		to, err := schema.ParseFormat(convertTo)
		if err != nil {
			return err
		}

		data, err := readInput(input)
		if err != nil {
			return err
		}
		cfg, err := schema.Unmarshal(data, from)
		if err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
		out, err := schema.Marshal(cfg, to)
		if err != nil {
			return err
		}

		output := outputFor(input, convertOutput, string(to))
		if err = writeOutput(output, out); err != nil {
			return err
		}
		okColor.Fprintf(cmd.ErrOrStderr(), "%s -> %s\n", input, output)
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVarP(&convertTo, "to", "t", "yaml", "target format")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output file, - for stdout")
	AddCommand(convertCmd)
}
