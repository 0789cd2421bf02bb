// Package cli implements the docxwriter command-line interface.
//
// The root command builds a document from a JSON input file, so running
// the tool with no arguments reads data.json and writes into data/. The
// styles subcommand lists the built-in style registry.
//
// # Configuration
//
// Settings are resolved in this order, later ones winning: built-in
// defaults, the TOML file given with --config, DOCXWRITER_* environment
// variables, command-line flags.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docxwriter/pkg/docxwriter"
)

const appName = "docxwriter"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

var (
	version = "dev" // semantic version (e.g., "v1.2.3")
	commit  string  // git commit SHA
	date    string  // build timestamp
)

// SetVersion sets the version information displayed by --version.
// It is normally called from main with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: docxwriter.NewLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Without a subcommand it behaves like build.
func (c *CLI) RootCommand() *cobra.Command {
	opts := &buildOptions{}
	root := &cobra.Command{
		Use:           appName,
		Short:         "Generate Word documents from structured JSON",
		Long:          `docxwriter turns a JSON description of a paper (title, sections, tables, lists, images) into a formatted .docx file.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd, opts)
		},
	}
	root.SetVersionTemplate(versionTemplate())
	opts.bind(root)

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.stylesCommand())

	return root
}

func versionTemplate() string {
	s := appName + " " + version + "\n"
	if commit != "" {
		s += "commit: " + commit + "\n"
	}
	if date != "" {
		s += "built: " + date + "\n"
	}
	return s
}
