package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docxwriter/pkg/docxwriter"
)

const (
	defaultInput     = "data.json"
	defaultOutputDir = "data"
)

// buildOptions are the flags shared by the root and build commands
type buildOptions struct {
	input       string
	outputDir   string
	watermark   string
	noWatermark bool
	configPath  string
	verbose     bool
}

func (o *buildOptions) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&o.input, "input", "i", defaultInput, "JSON input file")
	flags.StringVarP(&o.outputDir, "output", "o", defaultOutputDir, "output directory")
	flags.StringVarP(&o.watermark, "watermark", "w", docxwriter.DefaultWatermarkText, "hidden watermark text")
	flags.BoolVar(&o.noWatermark, "no-watermark", false, "do not add the watermark")
	flags.StringVar(&o.configPath, "config", "", "TOML configuration file")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "enable verbose logging")
}

// buildCommand creates the build subcommand.
func (c *CLI) buildCommand() *cobra.Command {
	opts := &buildOptions{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a .docx document from a JSON input file",
		Example: `  docxwriter build -i paper.json -o out
  docxwriter build --no-watermark --config docxwriter.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd, opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

func (c *CLI) runBuild(cmd *cobra.Command, opts *buildOptions) error {
	config, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	level, err := log.ParseLevel(config.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", config.LogLevel, err)
	}
	if opts.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)
	c.Logger.Debug("configuration resolved", "output", config.OutputDir, "watermark", config.WatermarkText() != "")

	w := docxwriter.New(
		docxwriter.WithConfig(config),
		docxwriter.WithLogger(c.Logger),
	)
	path, err := w.BuildFile(cmd.Context(), opts.input)
	if err != nil {
		return err
	}

	printSuccess(cmd.OutOrStdout(), "Document saved as %s", path)
	return nil
}

// resolveConfig layers defaults, the config file, the environment and the
// flags that were set explicitly
func resolveConfig(cmd *cobra.Command, opts *buildOptions) (*docxwriter.Config, error) {
	var (
		config *docxwriter.Config
		err    error
	)
	if opts.configPath != "" {
		config, err = docxwriter.LoadConfigFile(opts.configPath)
		if err != nil {
			return nil, err
		}
	} else {
		config = docxwriter.ConfigFromEnvironment()
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		config.OutputDir = opts.outputDir
	}
	if flags.Changed("watermark") {
		config.Watermark = opts.watermark
	}
	if flags.Changed("no-watermark") {
		config.DisableWatermark = opts.noWatermark
	}
	return config, nil
}
