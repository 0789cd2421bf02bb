package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docxwriter/pkg/docxwriter"
)

// stylesCommand creates the styles subcommand.
func (c *CLI) stylesCommand() *cobra.Command {
	var sorted bool
	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List the built-in document styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), renderStyles(docxwriter.DefaultRegistry(), sorted))
			return nil
		},
	}
	cmd.Flags().BoolVar(&sorted, "sort", false, "sort styles by name")
	return cmd
}

// renderStyles formats the registry as a table
func renderStyles(r *docxwriter.Registry, sorted bool) string {
	names := r.Names()
	if sorted {
		names = r.SortedNames()
	}

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		s, _ := r.Get(name)
		size := ""
		if s.Size > 0 {
			size = fmt.Sprintf("%gpt", s.Size.Points())
		}
		rows = append(rows, []string{s.Name, s.Kind.String(), s.BasedOn, s.Font, size, formatting(s)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Kind", "Based on", "Font", "Size", "Format").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

func formatting(s *docxwriter.Style) string {
	var parts []string
	if s.Bold {
		parts = append(parts, "bold")
	}
	if s.Italic {
		parts = append(parts, "italic")
	}
	if s.Underline != "" {
		parts = append(parts, "underline")
	}
	if s.Color != nil {
		parts = append(parts, "#"+s.Color.Hex())
	}
	if s.Alignment != "" && s.Alignment != docxwriter.AlignLeft {
		parts = append(parts, string(s.Alignment))
	}
	return strings.Join(parts, " ")
}
