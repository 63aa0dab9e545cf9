package commands

import (
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/spf13/cobra"
	"github.com/vine-io/flowlayout"
	"github.com/vine-io/flowlayout/report"
	"github.com/vine-io/flowlayout/schema"
	"go.uber.org/atomic"
)

var (
	exportOutput  string
	exportProcess string
)

var exportCmd = &cobra.Command{
	Use:   "export <bpmn_file...>",
	Short: "Export BPMN diagrams to layout configs",
	Long: `The export command reads BPMN 2.0 XML files and writes the layout config of
one process per file. With a single input, --output selects the target
("-" for stdout); otherwise every config is written next to its input.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 && exportOutput != "" {
			return fmt.Errorf("--output needs a single input file")
		}
		return runExport(cmd, args)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file, - for stdout")
	exportCmd.Flags().StringVarP(&exportProcess, "process", "p", "", "process name or id, the first process by default")
	AddCommand(exportCmd)
}

type exportOutcome struct {
	input  string
	output string
	cfg    *schema.LayoutConfig
	report *report.Report
	err    error
}

func runExport(cmd *cobra.Command, files []string) error {
	pool, err := ants.NewPool(settings.workers())
	if err != nil {
		return err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	succeeded := atomic.NewInt32(0)
	failed := atomic.NewInt32(0)
	outcomes := make([]*exportOutcome, len(files))
	for i := range files {
		i := i
		outcomes[i] = &exportOutcome{input: files[i]}
		wg.Add(1)
		err = pool.Submit(func() {
			defer wg.Done()
			if exportFile(cmd, outcomes[i]) != nil {
				failed.Inc()
				return
			}
			succeeded.Inc()
		})
		if err != nil {
			wg.Done()
			outcomes[i].err = err
			failed.Inc()
		}
	}
	wg.Wait()

	stderr := cmd.ErrOrStderr()
	for _, out := range outcomes {
		if out.err != nil {
			errColor.Fprintf(stderr, "%s: %v\n", out.input, out.err)
			continue
		}
		okColor.Fprintf(stderr, "%s -> %s: %s\n", out.input, out.output, configSummary(out.cfg))
		printDiagnostics(stderr, out.report)
	}
	fmt.Fprintf(stderr, "exported %d, failed %d\n", succeeded.Load(), failed.Load())

	if failed.Load() > 0 {
		return fmt.Errorf("%d exports failed", failed.Load())
	}
	return nil
}

func exportFile(cmd *cobra.Command, out *exportOutcome) error {
	target := exportOutput
	if target == "" {
		target = out.input
	}
	format, err := resolveFormat(target)
	if err != nil {
		out.err = err
		return err
	}
	out.output = outputFor(out.input, exportOutput, string(format))

	data, err := readInput(out.input)
	if err != nil {
		out.err = err
		return err
	}
	out.cfg, out.report, err = flowlayout.ExportXML(cmd.Context(), data, exportProcess, exporterOptions()...)
	if err != nil {
		out.err = err
		return err
	}

	encoded, err := schema.Marshal(out.cfg, format)
	if err != nil {
		out.err = err
		return err
	}
	if err = writeOutput(out.output, encoded); err != nil {
		out.err = err
		return err
	}
	return nil
}
