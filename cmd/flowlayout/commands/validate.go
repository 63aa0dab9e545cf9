package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vine-io/flowlayout/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate <layout_file...>",
	Short: "Validate layout configs",
	Long: `The validate command checks layout configs against the document schema,
decodes them and reports references that would be skipped at import time.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stderr := cmd.ErrOrStderr()
		invalid := 0
		for _, path := range args {
			issues, err := validateFile(path)
			if err != nil {
				invalid++
				errColor.Fprintf(stderr, "%s: %v\n", path, err)
				continue
			}
			if len(issues) == 0 {
				okColor.Fprintf(stderr, "%s: ok\n", path)
				continue
			}
			warnColor.Fprintf(stderr, "%s: %d issues\n", path, len(issues))
			printIssues(stderr, issues)
		}
		if invalid > 0 {
			return fmt.Errorf("%d of %d configs are invalid", invalid, len(args))
		}
		return nil
	},
}

func init() {
	AddCommand(validateCmd)
}

func validateFile(path string) ([]schema.Issue, error) {
	format, err := resolveFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	if err = schema.ValidateDocument(data, format); err != nil {
		return nil, err
	}
	cfg, err := schema.Unmarshal(data, format)
	if err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg.Check(), nil
}
