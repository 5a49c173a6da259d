package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redpanda-data/benthos/v4/public/service"

	"github.com/twinfer/kfbx/pkg/combinator"
	"github.com/twinfer/kfbx/pkg/fbx"
	"github.com/twinfer/kfbx/pkg/kfbx"
)

// Metadata keys set on processed messages.
const (
	metaVersion     = "fbx_version"
	metaPath        = "fbx_path"
	metaErrorPath   = "fbx_error_path"
	metaErrorOffset = "fbx_error_offset"
)

// FBXProcessor is a Benthos processor that decodes binary FBX messages into
// structured node trees.
type FBXProcessor struct {
	config  FBXConfig
	decoder *kfbx.Decoder
	logger  *service.Logger

	mDecoded    *service.MetricCounter
	mErrors     *service.MetricCounter
	mMatched    *service.MetricCounter
	mDecodeTime *service.MetricTimer
}

// FBXConfig contains configuration parameters for the FBX processor.
type FBXConfig struct {
	Where        string `json:"where" yaml:"where"`
	Split        bool   `json:"split" yaml:"split"`
	InlineArrays bool   `json:"inline_arrays" yaml:"inline_arrays"`
	MaxInputSize int64  `json:"max_input_size" yaml:"max_input_size"`
}

func init() {
	err := service.RegisterProcessor(
		"fbx",
		fbxProcessorConfig(),
		func(conf *service.ParsedConfig, mgr *service.Resources) (service.Processor, error) {
			return newFBXProcessorFromConfig(conf, mgr)
		},
	)
	if err != nil {
		panic(err)
	}
}

// fbxProcessorConfig returns a config spec for an fbx processor.
func fbxProcessorConfig() *service.ConfigSpec {
	return service.NewConfigSpec().
		Summary("Decodes binary FBX files into structured node trees.").
		Description("Each message must hold one complete binary FBX file. The decoded tree replaces the message payload. " +
			"Decoding failures are set as the message error together with the label path and byte offset in metadata.").
		Field(service.NewStringField("where").
			Description("CEL predicate selecting nodes. Variables: name, props, types, depth, path, children. Leave empty to keep the whole tree.").
			Example(`name == "Model" && objectClass(props[1]) == "Model"`).
			Default("")).
		Field(service.NewBoolField("split").
			Description("Emit one message per node selected by `where` instead of a single message holding all of them.").
			Default(false)).
		Field(service.NewBoolField("inline_arrays").
			Description("Include array property elements. When false arrays are replaced by their type and length.").
			Default(true)).
		Field(service.NewIntField("max_input_size").
			Description("Reject messages larger than this many bytes. Zero disables the check.").
			Default(1 << 30)).
		Version("0.1.0")
}

// newFBXProcessorFromConfig creates a new FBXProcessor from a parsed config.
func newFBXProcessorFromConfig(conf *service.ParsedConfig, mgr *service.Resources) (*FBXProcessor, error) {
	where, err := conf.FieldString("where")
	if err != nil {
		return nil, err
	}

	split, err := conf.FieldBool("split")
	if err != nil {
		return nil, err
	}

	inlineArrays, err := conf.FieldBool("inline_arrays")
	if err != nil {
		return nil, err
	}

	maxInputSize, err := conf.FieldInt("max_input_size")
	if err != nil {
		return nil, err
	}

	config := FBXConfig{
		Where:        where,
		Split:        split,
		InlineArrays: inlineArrays,
		MaxInputSize: int64(maxInputSize),
	}
	if config.Split && config.Where == "" {
		return nil, errors.New("split requires a where predicate")
	}

	decoder := kfbx.NewDecoder(kfbx.WithMaxInputSize(config.MaxInputSize))
	if config.Where != "" {
		// Compile once up front so a broken predicate fails the config.
		if _, err := decoder.Query(context.Background(), nil, config.Where); err != nil {
			return nil, fmt.Errorf("where: %w", err)
		}
	}

	metrics := mgr.Metrics()
	return &FBXProcessor{
		config:      config,
		decoder:     decoder,
		logger:      mgr.Logger(),
		mDecoded:    metrics.NewCounter("fbx_decoded_messages"),
		mErrors:     metrics.NewCounter("fbx_processing_errors"),
		mMatched:    metrics.NewCounter("fbx_matched_nodes"),
		mDecodeTime: metrics.NewTimer("fbx_decode_time"),
	}, nil
}

// Process decodes the FBX file held by msg.
func (p *FBXProcessor) Process(ctx context.Context, msg *service.Message) (service.MessageBatch, error) {
	data, err := msg.AsBytes()
	if err != nil {
		return p.fail(msg, fmt.Errorf("failed to get binary data from message: %w", err))
	}
	if len(data) == 0 {
		return p.fail(msg, errors.New("empty binary data provided"))
	}

	start := time.Now()
	doc, err := p.decoder.Decode(ctx, data)
	p.mDecodeTime.Timing(time.Since(start).Nanoseconds())
	if err != nil {
		return p.fail(msg, err)
	}
	p.logger.Debugf("Decoded %d bytes of FBX %d data into %d top-level nodes", len(data), doc.Format.Version, len(doc.Nodes))
	p.mDecoded.Incr(1)

	if p.config.Where == "" {
		return service.MessageBatch{p.derive(msg, kfbx.Structured(doc, p.config.InlineArrays), doc.Format)}, nil
	}

	matches, err := p.decoder.Query(ctx, doc.Nodes, p.config.Where)
	if err != nil {
		return p.fail(msg, err)
	}
	p.mMatched.Incr(int64(len(matches)))

	if !p.config.Split {
		doc.Nodes = make([]fbx.Node, len(matches))
		for i, m := range matches {
			doc.Nodes[i] = m.Node
		}
		return service.MessageBatch{p.derive(msg, kfbx.Structured(doc, p.config.InlineArrays), doc.Format)}, nil
	}

	batch := make(service.MessageBatch, 0, len(matches))
	for _, m := range matches {
		out := p.derive(msg, kfbx.StructuredNode(m.Node, p.config.InlineArrays), doc.Format)
		out.MetaSet(metaPath, m.PathString())
		batch = append(batch, out)
	}
	return batch, nil
}

// derive builds an output message carrying v and the metadata of msg.
func (p *FBXProcessor) derive(msg *service.Message, v any, f fbx.Format) *service.Message {
	out := service.NewMessage(nil)
	out.SetStructured(v)
	_ = msg.MetaWalk(func(key, value string) error {
		out.MetaSet(key, value)
		return nil
	})
	out.MetaSet(metaVersion, strconv.FormatUint(uint64(f.Version), 10))
	return out
}

// fail records err on msg and passes it on unchanged.
func (p *FBXProcessor) fail(msg *service.Message, err error) (service.MessageBatch, error) {
	p.logger.Errorf("Failed to decode FBX message: %v", err)
	p.mErrors.Incr(1)
	var f *combinator.Failure[fbx.Format]
	if errors.As(err, &f) {
		msg.MetaSet(metaErrorPath, strings.Join(f.Path(), " > "))
		msg.MetaSet(metaErrorOffset, strconv.Itoa(f.Offset()))
	}
	msg.SetError(err)
	return service.MessageBatch{msg}, nil
}

// Close the processor resources
func (p *FBXProcessor) Close(ctx context.Context) error {
	return nil
}

func main() {
	service.RunCLI(context.Background())
}
