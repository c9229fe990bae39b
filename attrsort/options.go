package attrsort

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	sorterrors "github.com/amp-labs/amp-attrsort/errors"
	"github.com/amp-labs/amp-attrsort/logger"
	"github.com/amp-labs/amp-attrsort/maps"
	"github.com/spf13/cast"
)

// Options configures a sort.
type Options struct {
	// CaseSensitive disables lowercasing of text sort keys.
	CaseSensitive bool `json:"caseSensitive" mapstructure:"caseSensitive" yaml:"caseSensitive"`

	// Logger receives debug records about excluded elements. Defaults to
	// logger.Get() for the configured context.
	Logger *slog.Logger `json:"-" mapstructure:"-" yaml:"-"`

	ctx context.Context //nolint:containedctx
}

// Option is a functional option for the Sort functions.
type Option func(*Options)

// WithCaseSensitive sets Options.CaseSensitive.
func WithCaseSensitive(caseSensitive bool) Option {
	return func(o *Options) {
		o.CaseSensitive = caseSensitive
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithContext derives the logger from ctx (see logger.Get) unless a logger
// was set explicitly.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		o.ctx = ctx
	}
}

// WithOptions copies every field of opts. A nil opts.Logger leaves the
// current logger in place.
func WithOptions(opts Options) Option {
	return func(o *Options) {
		o.CaseSensitive = opts.CaseSensitive

		if opts.Logger != nil {
			o.Logger = opts.Logger
		}

		if opts.ctx != nil {
			o.ctx = opts.ctx
		}
	}
}

// newOptions builds a fresh Options for one call.
func newOptions(opts []Option) Options {
	var options Options

	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	if options.ctx == nil {
		options.ctx = context.Background()
	}

	if options.Logger == nil {
		options.Logger = logger.Get(options.ctx)
	}

	return options
}

// DecodeOptions converts a loosely typed options value, as handed over by a
// template engine or read from a document, into Options. It accepts nil,
// Options, *Options, *maps.OrderedMap[any] and anything spf13/cast can turn
// into a map[string]any. Keys match case-insensitively; values are coerced
// with cast.ToBoolE. Every unknown key and bad value is reported.
func DecodeOptions(v any) (Options, error) {
	switch x := v.(type) {
	case nil:
		return Options{}, nil
	case Options:
		return x, nil
	case *Options:
		if x == nil {
			return Options{}, nil
		}

		return *x, nil
	case *maps.OrderedMap[any]:
		m := make(map[string]any, x.Size())
		for key, value := range x.All() {
			m[key.String()] = value
		}

		v = m
	case map[string]bool:
		m := make(map[string]any, len(x))
		for key, value := range x {
			m[key] = value
		}

		v = m
	}

	raw, err := cast.ToStringMapE(v)
	if err != nil {
		return Options{}, fmt.Errorf("%w: options must be a mapping, got %T", sorterrors.ErrWrongType, v)
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	var (
		options Options
		errs    sorterrors.Collection
	)

	for _, key := range keys {
		switch strings.ToLower(key) {
		case "casesensitive":
			b, err := cast.ToBoolE(raw[key])
			if err != nil {
				errs.Addf(sorterrors.ErrWrongType, "option %q: %v", key, err)

				continue
			}

			options.CaseSensitive = b
		default:
			errs.Addf(sorterrors.ErrUnknownOption, "%q", key)
		}
	}

	return options, errs.GetError()
}
