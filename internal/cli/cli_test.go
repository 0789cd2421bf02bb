package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docxwriter/pkg/docxwriter"
)

const sampleInput = `{
	"title": "Sample",
	"file_name": "sample.docx",
	"content": {"Intro": "Hello", "Steps": {"list": ["a", "b"], "list_type": "numbered"}}
}`

// execute runs the root command with args and returns stdout and stderr
func execute(t *testing.T, ctx context.Context, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	c := New(&stderr, LogInfo)
	root := c.RootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

// clearEnv blanks the DOCXWRITER_* variables a build reads
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"DOCXWRITER_OUTPUT_DIR",
		"DOCXWRITER_NO_WATERMARK",
		"DOCXWRITER_LOG_LEVEL",
		"DOCXWRITER_AUTHOR",
		"DOCXWRITER_LANGUAGE",
	} {
		t.Setenv(name, "")
	}
	if val, ok := os.LookupEnv("DOCXWRITER_WATERMARK"); ok {
		os.Unsetenv("DOCXWRITER_WATERMARK")
		t.Cleanup(func() { os.Setenv("DOCXWRITER_WATERMARK", val) })
	}
}

func writeInput(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "data.json")
	if err := os.WriteFile(path, []byte(sampleInput), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuildCommands(t *testing.T) {
	tests := []struct {
		name string
		args func(input, out string) []string
	}{
		{name: "root", args: func(input, out string) []string { return []string{"-i", input, "-o", out} }},
		{name: "build", args: func(input, out string) []string { return []string{"build", "-i", input, "-o", out} }},
		{name: "long flags", args: func(input, out string) []string {
			return []string{"build", "--input", input, "--output", out, "--no-watermark", "--verbose"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			input := writeInput(t, dir)
			out := filepath.Join(dir, "out")

			stdout, stderr, err := execute(t, context.Background(), tt.args(input, out)...)
			if err != nil {
				t.Fatalf("execute error = %v\n%s", err, stderr)
			}
			path := filepath.Join(out, "sample.docx")
			if _, err := os.Stat(path); err != nil {
				t.Fatalf("document not written: %v", err)
			}
			if !strings.Contains(stdout, path) {
				t.Errorf("stdout = %q, want it to name %s", stdout, path)
			}
			if !strings.Contains(stderr, "document written") {
				t.Errorf("stderr missing build log:\n%s", stderr)
			}
		})
	}
}

func TestBuildMissingInput(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	_, _, err := execute(t, context.Background(), "-i", filepath.Join(dir, "nope.json"), "-o", dir)
	if !docxwriter.IsInputError(err) {
		t.Errorf("expected InputError, got %v", err)
	}
}

func TestBuildCanceled(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	input := writeInput(t, dir)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := execute(t, ctx, "-i", input, "-o", dir)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "sample.docx")); !os.IsNotExist(statErr) {
		t.Error("document written despite cancellation")
	}
}

func TestUnknownArgument(t *testing.T) {
	if _, _, err := execute(t, context.Background(), "extra"); err == nil {
		t.Error("expected error for positional argument")
	}
}

func TestResolveConfigPrecedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	configPath := filepath.Join(dir, "docxwriter.toml")
	content := "output_dir = \"from-file\"\nauthor = \"File Author\"\nwatermark = \"file mark\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOCXWRITER_AUTHOR", "Env Author")

	tests := []struct {
		name          string
		args          []string
		wantOutput    string
		wantAuthor    string
		wantWatermark string
	}{
		{
			name:          "file and environment",
			args:          []string{"--config", configPath},
			wantOutput:    "from-file",
			wantAuthor:    "Env Author",
			wantWatermark: "file mark",
		},
		{
			name:          "flags win",
			args:          []string{"--config", configPath, "-o", "from-flag", "-w", "flag mark"},
			wantOutput:    "from-flag",
			wantAuthor:    "Env Author",
			wantWatermark: "flag mark",
		},
		{
			name:          "no watermark flag",
			args:          []string{"--config", configPath, "--no-watermark"},
			wantOutput:    "from-file",
			wantAuthor:    "Env Author",
			wantWatermark: "",
		},
		{
			name:          "defaults",
			args:          nil,
			wantOutput:    defaultOutputDir,
			wantAuthor:    "Env Author",
			wantWatermark: docxwriter.DefaultWatermarkText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "test"}
			opts := &buildOptions{}
			opts.bind(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}

			config, err := resolveConfig(cmd, opts)
			if err != nil {
				t.Fatalf("resolveConfig() error = %v", err)
			}
			if config.OutputDir != tt.wantOutput {
				t.Errorf("OutputDir = %q, want %q", config.OutputDir, tt.wantOutput)
			}
			if config.Author != tt.wantAuthor {
				t.Errorf("Author = %q, want %q", config.Author, tt.wantAuthor)
			}
			if got := config.WatermarkText(); got != tt.wantWatermark {
				t.Errorf("WatermarkText() = %q, want %q", got, tt.wantWatermark)
			}
		})
	}
}

func TestResolveConfigBadFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	configPath := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(configPath, []byte("unknown_key = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	input := writeInput(t, dir)

	_, _, err := execute(t, context.Background(), "-i", input, "--config", configPath)
	if !docxwriter.IsInputError(err) {
		t.Errorf("expected InputError, got %v", err)
	}
}

func TestStylesCommand(t *testing.T) {
	stdout, _, err := execute(t, context.Background(), "styles")
	if err != nil {
		t.Fatalf("styles error = %v", err)
	}
	for _, want := range []string{"Name", "Heading 1", "List Number", "Table Grid", "table", "Hidden", "#FFFFFF"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("styles output missing %q", want)
		}
	}

	sorted := renderStyles(docxwriter.DefaultRegistry(), true)
	if strings.Index(sorted, "Abstract") > strings.Index(sorted, "Title") {
		t.Error("--sort did not order styles by name")
	}
}

func TestVersion(t *testing.T) {
	SetVersion("v1.2.3", "abc123", "2024-01-01")
	defer SetVersion("dev", "", "")

	stdout, _, err := execute(t, context.Background(), "--version")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"docxwriter v1.2.3", "commit: abc123", "built: 2024-01-01"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("version output %q missing %q", stdout, want)
		}
	}
}
