package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/amp-labs/amp-attrsort/attrsort"
	sorterrors "github.com/amp-labs/amp-attrsort/errors"
	"github.com/amp-labs/amp-attrsort/logger"
	"github.com/amp-labs/amp-attrsort/maps"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const envPrefix = "SORTATTR"

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

type config struct {
	Attribute     string `mapstructure:"attribute"`
	CaseSensitive bool   `mapstructure:"case-sensitive"`
	Format        string `mapstructure:"format"`
	LogJSON       bool   `mapstructure:"log-json"`
	LogLevel      string `mapstructure:"log-level"`
}

func newRootCommand() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "sortattr [file]",
		Short: "Sort a YAML or JSON document by attribute",
		Long: `Sort the top-level sequence or mapping of a YAML or JSON document by an
attribute of its elements. Elements are maps, lists or scalars; lists are
indexed by position. Text is compared case-insensitively unless
--case-sensitive is given. Elements lacking the attribute keep their order
and go last.

Reads stdin when no file (or "-") is given.

Examples:
  sortattr -a name people.yaml
  sortattr -a 0 --format json pairs.json
  SORTATTR_CASE_SENSITIVE=true sortattr -a title < books.yaml`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg config
			if err := v.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("reading configuration: %w", err)
			}

			return run(cmd, args, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringP("attribute", "a", "", "attribute to sort by (required)")
	flags.Bool("case-sensitive", false, "compare text attributes case-sensitively")
	flags.String("format", formatYAML, "output format: yaml or json")
	flags.Bool("log-json", false, "write logs as JSON")
	flags.String("log-level", "warn", "minimum log level: debug, info, warn or error")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}

	return cmd
}

func run(cmd *cobra.Command, args []string, cfg config) error {
	if cfg.Attribute == "" {
		return fmt.Errorf("%w: --attribute is required", sorterrors.ErrWrongType)
	}

	format := strings.ToLower(cfg.Format)
	if format != formatYAML && format != formatJSON {
		return fmt.Errorf("%w: unsupported format %q", sorterrors.ErrWrongType, cfg.Format)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	log := logger.ConfigureLoggingWithOptions(logger.Options{
		Subsystem:   "sortattr",
		JSON:        cfg.LogJSON,
		MinLevel:    level,
		LegacyLevel: slog.LevelInfo,
		Output:      cmd.ErrOrStderr(),
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	input, name, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer input.Close() //nolint:errcheck

	document, err := decode(input)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}

	log.DebugContext(ctx, "document loaded", "source", name, "type", fmt.Sprintf("%T", document))

	sorted, err := sortDocument(document, cfg.Attribute,
		attrsort.WithCaseSensitive(cfg.CaseSensitive),
		attrsort.WithContext(ctx),
		attrsort.WithLogger(log))
	if err != nil {
		return fmt.Errorf("sorting %s: %w", name, err)
	}

	return encode(cmd.OutOrStdout(), format, sorted)
}

func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), "stdin", nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("opening input: %w", err)
	}

	return f, args[0], nil
}

// decode reads one YAML (or JSON) document, keeping mapping order.
func decode(r io.Reader) (any, error) {
	var node yaml.Node

	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if err == io.EOF { //nolint:errorlint
			return nil, nil //nolint:nilnil
		}

		return nil, err
	}

	return maps.DecodeNode(&node)
}

func sortDocument(document any, attribute string, opts ...attrsort.Option) (any, error) {
	switch doc := document.(type) {
	case nil:
		return nil, nil //nolint:nilnil
	case []any:
		return attrsort.Sort(doc, attribute, opts...), nil
	case *maps.OrderedMap[any]:
		return attrsort.SortMap(doc, attribute, opts...), nil
	default:
		return nil, fmt.Errorf("%w: top-level value is a %T, not a sequence or mapping",
			sorterrors.ErrUnsupportedCollection, document)
	}
}

func encode(w io.Writer, format string, value any) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(value)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2) //nolint:mnd

	if err := enc.Encode(value); err != nil {
		return err
	}

	return enc.Close()
}
