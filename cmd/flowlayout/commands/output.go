package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/vine-io/flowlayout/report"
	"github.com/vine-io/flowlayout/schema"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed, color.Bold)
)

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// outputFor picks the target of one command: the --output value, stdout
// when reading stdin, else the input path with ext.
func outputFor(input, output, ext string) string {
	switch {
	case output != "":
		return output
	case input == "-":
		return "-"
	}
	return withExt(input, ext)
}

// withExt replaces the extension of path.
func withExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
}

func printDiagnostics(w io.Writer, rpt *report.Report) {
	if rpt == nil {
		return
	}
	for _, d := range rpt.Filter(report.LevelWarn) {
		c := warnColor
		if d.Level >= report.LevelError {
			c = errColor
		}
		c.Fprintln(w, "  "+d.String())
	}
}

func printIssues(w io.Writer, issues []schema.Issue) {
	for _, issue := range issues {
		warnColor.Fprintln(w, "  "+issue.String())
	}
}

func configSummary(cfg *schema.LayoutConfig) string {
	return fmt.Sprintf("%d lanes, %d elements, %d flows, %d data associations (%s)",
		len(cfg.Lanes), len(cfg.Elements), len(cfg.Flows), len(cfg.DataAssociations), cfg.Mode())
}
