package kfbx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/twinfer/kfbx/internal/cel"
	"github.com/twinfer/kfbx/pkg/combinator"
	"github.com/twinfer/kfbx/pkg/fbx"
)

// ErrInputTooLarge is returned when the input exceeds the configured maximum size.
var ErrInputTooLarge = errors.New("input exceeds maximum size")

// Decoder decodes binary FBX data with logging, size limits and cached node
// queries.
type Decoder struct {
	logger  *slog.Logger
	options options

	poolOnce sync.Once
	pool     *cel.ExpressionPool
	poolErr  error
}

type options struct {
	logger         *slog.Logger
	debugMode      bool
	maxInputSize   int64
	queryCacheSize int
}

// Option configures a Decoder.
type Option func(*options)

// WithLogger sets a custom logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDebugMode enables debug logging of decode failures and query results.
func WithDebugMode(enabled bool) Option {
	return func(o *options) {
		o.debugMode = enabled
	}
}

// WithMaxInputSize rejects inputs larger than n bytes. Zero disables the check.
func WithMaxInputSize(n int64) Option {
	return func(o *options) {
		o.maxInputSize = n
	}
}

// WithQueryCacheSize bounds the number of compiled query expressions kept.
func WithQueryCacheSize(n int) Option {
	return func(o *options) {
		o.queryCacheSize = n
	}
}

func defaultOptions() options {
	return options{
		logger:         slog.Default(),
		maxInputSize:   1 << 30,
		queryCacheSize: 128,
	}
}

var (
	globalDecoder     *Decoder
	globalDecoderOnce sync.Once
)

func getGlobalDecoder() *Decoder {
	globalDecoderOnce.Do(func() {
		globalDecoder = NewDecoder()
	})
	return globalDecoder
}

// NewDecoder creates a decoder with the given options.
func NewDecoder(opts ...Option) *Decoder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.debugMode {
		o.logger = o.logger.With("debug", true)
	}
	return &Decoder{logger: o.logger, options: o}
}

// Decode decodes data with the global decoder.
func Decode(data []byte) (fbx.Document, error) {
	return getGlobalDecoder().Decode(context.Background(), data)
}

// DecodeFile reads and decodes the file at path with the global decoder.
func DecodeFile(path string) (fbx.Document, error) {
	return getGlobalDecoder().DecodeFile(context.Background(), path)
}

// ToJSON decodes data and renders the document as indented JSON.
func ToJSON(data []byte) ([]byte, error) {
	return getGlobalDecoder().ToJSON(context.Background(), data)
}

// ToYAML decodes data and renders the document as YAML.
func ToYAML(data []byte) ([]byte, error) {
	return getGlobalDecoder().ToYAML(context.Background(), data)
}

// Header decodes only the file header of data.
func Header(data []byte) (fbx.Format, error) {
	return getGlobalDecoder().Header(data)
}

// Query returns the nodes of doc matching the CEL predicate expr.
func Query(doc fbx.Document, expr string) ([]Match, error) {
	return getGlobalDecoder().Query(context.Background(), doc.Nodes, expr)
}

// Decode decodes a complete file held in data. Decoding failures wrap a
// *combinator.Failure[fbx.Format] carrying the label path and offset.
func (d *Decoder) Decode(ctx context.Context, data []byte) (fbx.Document, error) {
	select {
	case <-ctx.Done():
		return fbx.Document{}, ctx.Err()
	default:
	}
	if err := d.checkSize(int64(len(data))); err != nil {
		return fbx.Document{}, err
	}

	doc, err := fbx.DecodeDocument(data)
	if err != nil {
		d.logFailure(ctx, err)
		return fbx.Document{}, fmt.Errorf("decoding FBX: %w", err)
	}

	if d.options.debugMode {
		d.logger.DebugContext(ctx, "decoded FBX document",
			"version", doc.Format.Version,
			"nodes", len(doc.Nodes),
			"bytes", len(data))
	}
	return doc, nil
}

// DecodeFile reads and decodes the file at path.
func (d *Decoder) DecodeFile(ctx context.Context, path string) (fbx.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fbx.Document{}, fmt.Errorf("reading FBX file: %w", err)
	}
	if err := d.checkSize(info.Size()); err != nil {
		return fbx.Document{}, fmt.Errorf("reading FBX file %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fbx.Document{}, fmt.Errorf("reading FBX file: %w", err)
	}
	doc, err := d.Decode(ctx, data)
	if err != nil {
		return fbx.Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Header decodes only the file header of data.
func (d *Decoder) Header(data []byte) (fbx.Format, error) {
	f, err := fbx.Header(data)
	if err != nil {
		return fbx.Format{}, fmt.Errorf("decoding FBX header: %w", err)
	}
	return f, nil
}

// ToJSON decodes data and renders the document as indented JSON.
func (d *Decoder) ToJSON(ctx context.Context, data []byte) ([]byte, error) {
	doc, err := d.Decode(ctx, data)
	if err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling to JSON: %w", err)
	}
	return out, nil
}

// ToYAML decodes data and renders the document as YAML.
func (d *Decoder) ToYAML(ctx context.Context, data []byte) ([]byte, error) {
	doc, err := d.Decode(ctx, data)
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling to YAML: %w", err)
	}
	return out, nil
}

func (d *Decoder) checkSize(n int64) error {
	if limit := d.options.maxInputSize; limit > 0 && n > limit {
		return fmt.Errorf("%w: %d > %d bytes", ErrInputTooLarge, n, limit)
	}
	return nil
}

func (d *Decoder) logFailure(ctx context.Context, err error) {
	var f *combinator.Failure[fbx.Format]
	if !errors.As(err, &f) {
		d.logger.ErrorContext(ctx, "decoding FBX failed", "error", err)
		return
	}
	d.logger.DebugContext(ctx, "decoding FBX failed",
		"path", strings.Join(f.Path(), " > "),
		"offset", f.Offset(),
		"error", f.Cause)
}
