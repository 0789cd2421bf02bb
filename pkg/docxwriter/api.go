package docxwriter

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Writer builds documents from input. It holds no per-document state, so
// one Writer may run several builds, each with its own Builder.
// Use New() to create a writer.
type Writer struct {
	config   *Config
	registry *Registry
	logger   *log.Logger
	now      func() time.Time
	pictures *PictureCache
}

// Option represents a configuration option for the writer.
type Option func(*Writer)

// WithConfig returns an option that sets the writer configuration.
func WithConfig(config *Config) Option {
	return func(w *Writer) {
		if config != nil {
			w.config = config
		}
	}
}

// WithRegistry returns an option that replaces the style registry.
func WithRegistry(registry *Registry) Option {
	return func(w *Writer) {
		if registry != nil {
			w.registry = registry
		}
	}
}

// WithLogger returns an option that sets the logger used for build events.
func WithLogger(logger *log.Logger) Option {
	return func(w *Writer) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithClock returns an option that sets the time source for document
// timestamps.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		if now != nil {
			w.now = now
		}
	}
}

// New creates a writer configured from the environment, then applies opts.
func New(opts ...Option) *Writer {
	w := &Writer{
		config:   ConfigFromEnvironment(),
		registry: DefaultRegistry(),
		logger:   GetLogger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.pictures = NewPictureCache(CacheConfig{
		MaxSize: w.config.ImageCacheSize,
		TTL:     w.config.ImageCacheTTL,
	})
	return w
}

// Config returns a copy of the writer's configuration.
func (w *Writer) Config() Config {
	return *w.config
}

// Assemble renders in into a new Builder without writing anything.
func (w *Writer) Assemble(ctx context.Context, in *Input) (*Builder, error) {
	if err := w.config.Validate(); err != nil {
		return nil, &InputError{Field: "config", Cause: err}
	}

	b := NewBuilder(w.registry)
	b.SetPictureCache(w.pictures)
	if in != nil {
		b.SetProperties(NewDocumentProperties(in.Title, w.config.Author, w.config.LanguageTag(), w.now()))
	}
	if err := Assemble(ctx, b, in, w.config.WatermarkText()); err != nil {
		return nil, err
	}
	return b, nil
}

// OutputPath returns where the document for in is written
func (w *Writer) OutputPath(in *Input) string {
	return filepath.Join(w.config.OutputDir, in.FileName)
}

// Build renders in and saves it under the output directory. It returns the
// path of the written file. On error nothing is written.
func (w *Writer) Build(ctx context.Context, in *Input) (string, error) {
	start := time.Now()

	b, err := w.Assemble(ctx, in)
	if err != nil {
		w.logError(err)
		return "", err
	}

	path := w.OutputPath(in)
	if err := b.Save(path); err != nil {
		w.logError(err)
		return "", err
	}

	w.logger.Info("document written",
		"path", path,
		"elements", b.Len(),
		"duration", time.Since(start).Round(time.Millisecond))
	return path, nil
}

// BuildFile loads a JSON input file and builds it.
func (w *Writer) BuildFile(ctx context.Context, inputPath string) (string, error) {
	w.logger.Debug("reading input", "path", inputPath)
	in, err := LoadInput(inputPath)
	if err != nil {
		w.logError(err)
		return "", err
	}
	return w.Build(ctx, in)
}

// logError logs err once with the context its type carries
func (w *Writer) logError(err error) {
	var (
		inputErr   *InputError
		renderErr  *RenderError
		persistErr *PersistenceError
	)
	switch {
	case errors.As(err, &renderErr):
		w.logger.Error("render failed", "key", renderErr.Key, "kind", renderErr.Kind, "path", renderErr.Path, "err", err)
	case errors.As(err, &inputErr):
		w.logger.Error("invalid input", "path", inputErr.Path, "field", inputErr.Field, "err", err)
	case errors.As(err, &persistErr):
		w.logger.Error("write failed", "path", persistErr.Path, "err", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		w.logger.Warn("build interrupted", "err", err)
	default:
		w.logger.Error("build failed", "err", fmt.Sprint(err))
	}
}

// Build renders in with a writer using the default configuration.
func Build(ctx context.Context, in *Input, opts ...Option) (string, error) {
	return New(opts...).Build(ctx, in)
}
