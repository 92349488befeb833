package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/wgraj/famplot/internal/batch"
	"github.com/wgraj/famplot/internal/chart"
	"github.com/wgraj/famplot/internal/cli"
	"github.com/wgraj/famplot/internal/cli/config"
	"github.com/wgraj/famplot/internal/cli/output"
	"github.com/wgraj/famplot/internal/dataset"
)

// modeDescriptions documents each --output mode.
var modeDescriptions = map[output.Mode]string{
	output.ModeAuto:     "styled table on a terminal, markdown when piped",
	output.ModeText:     "styled table",
	output.ModeMarkdown: "markdown table",
	output.ModeJSON:     "one JSON document per command",
}

// generateCLIDocs writes index.md and one page per visible command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rootCmd := cli.NewRootCmd()
	cmds := visibleCommands(rootCmd)

	if err := writePage(outDir, "index.md", cliIndex(rootCmd, cmds)); err != nil {
		return fmt.Errorf("failed to generate index: %w", err)
	}
	for _, cmd := range cmds {
		if err := writePage(outDir, cmd.Name()+".md", commandPage(cmd)); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", cmd.Name(), err)
		}
	}
	return nil
}

func writePage(outDir, name string, w *MarkdownWriter) error {
	if err := os.WriteFile(filepath.Join(outDir, name), w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated %s", name)
	return nil
}

func visibleCommands(root *cobra.Command) []*cobra.Command {
	var cmds []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "__complete" {
			continue
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}

func cliIndex(rootCmd *cobra.Command, cmds []*cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for famplot")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("famplot reads the dependency family summary CSVs from " + InlineCode("data_dir") +
		", renders " + fmt.Sprint(len(batch.Jobs())) + " charts and writes them to " + InlineCode("plots_dir") + ".")
	w.CodeBlock("bash", `go install github.com/wgraj/famplot/cmd/famplot@latest

famplot config > famplot.yaml   # start from the effective settings
famplot list                    # show the chart catalog
famplot render                  # render every chart
famplot render --watch          # re-render when an input CSV changes`)

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range cmds {
		link := fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Input Files")
	w.Paragraph("A chart fails if its input file is missing, lacks a required column or has a non-numeric value. " +
		"Rows with an empty required cell are skipped and reported as not shown.")
	w.Table([]string{"File", "Columns", "Charts"}, inputRows())

	w.Header(2, "Output Formats")
	w.Paragraph("Each chart is written once per format in " + InlineCode("formats") +
		" (default " + InlineCode(strings.Join(chart.DefaultFormats, ",")) + "). " +
		InlineCode(chart.FormatTeX) + " is PGF/TikZ for inclusion in LaTeX documents.")
	var formats []string
	for _, f := range chart.Formats {
		formats = append(formats, InlineCode(f))
	}
	w.BulletList(formats)

	w.Header(2, "Summary Output")
	w.Paragraph("Command results go to stdout in the mode chosen by " + InlineCode("--output") +
		"; warnings and logs go to stderr.")
	var modes [][]string
	for _, m := range output.Modes {
		modes = append(modes, []string{InlineCode(string(m)), modeDescriptions[m]})
	}
	w.Table([]string{"Mode", "Format"}, modes)

	w.Header(2, "Global Options")
	writeFlagsTable(w, rootCmd.PersistentFlags())

	w.Header(2, "Environment Variables")
	w.Paragraph("Settings are layered as defaults, then famplot.yaml, then " + InlineCode(config.EnvPrefix) +
		" variables, then flags. Nested keys use a double underscore.")
	var envRows [][]string
	for _, f := range configFields() {
		envRows = append(envRows, []string{InlineCode(envName(f.Name)), f.Description})
	}
	w.Table([]string{"Variable", "Description"}, envRows)

	return w
}

// inputRows lists each CSV with the charts that read it.
func inputRows() [][]string {
	var rows [][]string
	for _, t := range dataset.Tables() {
		var ids []string
		for _, j := range batch.Jobs() {
			if j.Table.Name == t.Name {
				ids = append(ids, InlineCode(j.ID))
			}
		}
		rows = append(rows, []string{InlineCode(t.File), InlineCode(strings.Join(t.Columns, ",")), strings.Join(ids, " ")})
	}
	return rows
}

func commandPage(cmd *cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	desc := cmd.Long
	if desc == "" {
		desc = cmd.Short
	}
	w.Paragraph(desc)

	w.Header(2, "Usage")
	useLine := cmd.UseLine()
	if cmd.HasSubCommands() {
		useLine = fmt.Sprintf("famplot %s <subcommand> [options]", cmd.Name())
	} else if !strings.HasPrefix(useLine, "famplot") {
		useLine = "famplot " + useLine
	}
	w.CodeBlock("bash", useLine)

	if len(cmd.Aliases) > 0 {
		w.Paragraph("Aliases: " + InlineCode(strings.Join(cmd.Aliases, ", ")))
	}

	if cmd.HasSubCommands() {
		w.Header(2, "Subcommands")
		var rows [][]string
		for _, sub := range cmd.Commands() {
			if !sub.Hidden {
				rows = append(rows, []string{InlineCode(sub.Name()), cleanDescription(sub.Short)})
			}
		}
		w.Table([]string{"Subcommand", "Description"}, rows)
	}

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}
	if cmd.HasInheritedFlags() {
		w.Header(2, "Global Options")
		writeFlagsTable(w, cmd.InheritedFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}
	return w
}

// writeFlagsTable writes one row per visible flag, shorthand first.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		name := "--" + f.Name
		if f.Shorthand != "" {
			name = "-" + f.Shorthand + ", " + name
		}
		def := f.DefValue
		if def != "" && f.Value.Type() != "bool" {
			def = InlineCode(def)
		}
		rows = append(rows, []string{InlineCode(name), def, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Flag", "Default", "Description"}, rows)
}

// cleanExample strips the indentation shared by all non-blank lines.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent == -1 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return strings.TrimSpace(example)
	}
	for i, line := range lines {
		if len(line) >= indent {
			lines[i] = line[indent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
