package rebase

import (
	"fmt"

	"github.com/erraggy/oasrebase/schema"
)

// Option is a function that configures a rebase operation.
type Option func(*rebaseConfig) error

// rebaseConfig holds configuration for a rebase operation.
type rebaseConfig struct {
	doc          *schema.Document
	filePath     *string
	bytes        []byte
	namingPolicy NamingPolicy
	logger       schema.Logger
}

// RebaseWithOptions rebases a document using functional options.
// Exactly one input source must be given.
//
// Example:
//
//	result, err := rebase.RebaseWithOptions(
//	    rebase.WithFilePath("api.yaml"),
//	    rebase.WithNamingPolicy(rebase.NamingStrict),
//	)
func RebaseWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("rebase: invalid options: %w", err)
	}

	doc := cfg.doc
	switch {
	case cfg.filePath != nil:
		doc, err = schema.ParseFile(*cfg.filePath)
	case cfg.bytes != nil:
		doc, err = schema.Parse(cfg.bytes)
	}
	if err != nil {
		return nil, fmt.Errorf("rebase: %w", err)
	}

	r := &Rebaser{
		NamingPolicy: cfg.namingPolicy,
		Logger:       cfg.logger,
	}
	return r.Rebase(doc)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*rebaseConfig, error) {
	cfg := &rebaseConfig{
		namingPolicy: NamingLeaf,
		logger:       schema.NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	sources := 0
	for _, set := range []bool{cfg.doc != nil, cfg.filePath != nil, cfg.bytes != nil} {
		if set {
			sources++
		}
	}
	switch sources {
	case 0:
		return nil, fmt.Errorf("must specify an input source (use WithDocument, WithFilePath, or WithBytes)")
	case 1:
		return cfg, nil
	default:
		return nil, fmt.Errorf("must specify exactly one input source")
	}
}

// WithDocument specifies an already-parsed document as the input source.
func WithDocument(doc *schema.Document) Option {
	return func(cfg *rebaseConfig) error {
		if doc == nil {
			return fmt.Errorf("document cannot be nil")
		}
		cfg.doc = doc
		return nil
	}
}

// WithFilePath specifies a YAML or JSON file as the input source.
func WithFilePath(path string) Option {
	return func(cfg *rebaseConfig) error {
		if path == "" {
			return fmt.Errorf("file path cannot be empty")
		}
		cfg.filePath = &path
		return nil
	}
}

// WithBytes specifies YAML or JSON content as the input source.
func WithBytes(data []byte) Option {
	return func(cfg *rebaseConfig) error {
		if data == nil {
			return fmt.Errorf("bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithNamingPolicy sets how hoisted definitions are named.
// Default: NamingLeaf
func WithNamingPolicy(policy NamingPolicy) Option {
	return func(cfg *rebaseConfig) error {
		if _, ok := namingPolicyNames[policy]; !ok {
			return fmt.Errorf("unknown naming policy %d", int(policy))
		}
		cfg.namingPolicy = policy
		return nil
	}
}

// WithLogger sets a structured logger for debug output during rebasing.
// By default, no logging is performed.
func WithLogger(l schema.Logger) Option {
	return func(cfg *rebaseConfig) error {
		if l == nil {
			l = schema.NopLogger{}
		}
		cfg.logger = l
		return nil
	}
}
