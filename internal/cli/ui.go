package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan  = lipgloss.Color("36")  // Teal - names
	colorGreen = lipgloss.Color("35")  // Green - success
	colorGray  = lipgloss.Color("245") // Gray - headers
	colorDim   = lipgloss.Color("240") // Dim gray - borders
)

var styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)

const iconSuccess = "✓"

// printSuccess prints a success line prefixed with a check mark.
func printSuccess(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", styleIconSuccess.Render(iconSuccess), fmt.Sprintf(format, args...))
}
