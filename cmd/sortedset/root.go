package main

import (
	"github.com/knadh/koanf/providers/file"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/sortedset"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const keyTraceLevel = "trace.sortedset"

type options struct {
	maxBucketSize int
	capacity      int
	configFile    string
	traceLevel    string
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "sortedset [flags]",
		Short:        "interactive shell for bucketed sorted sets",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfiguration(cmd, opts)
			if err != nil {
				return err
			}
			if err := setupTracing(conf); err != nil {
				return err
			}
			cfg, err := sortedset.ConfigurationFrom(conf)
			if err != nil {
				return errors.Wrap(err, "sortedset configuration")
			}
			sh := newShell(cfg, conf.GetInt(sortedset.KeyInitialItemCapacity),
				cmd.InOrStdin(), cmd.OutOrStdout())
			return sh.run()
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&opts.maxBucketSize, "max-bucket-size", sortedset.DefaultMaxBucketSize,
		"split buckets when they reach this size")
	flags.IntVar(&opts.capacity, "capacity", 0, "expected number of items per set")
	flags.StringVar(&opts.configFile, "config", "", "NestedText configuration file")
	flags.StringVar(&opts.traceLevel, "trace", "Error", "trace level (Error, Info, Debug)")
	return cmd
}

// loadConfiguration layers defaults, the configuration file and explicitly
// set flags, in this order.
func loadConfiguration(cmd *cobra.Command, opts *options) (*koanfadapter.KConf, error) {
	conf := koanfadapter.New(nil, "", nil)
	conf.InitDefaults()
	if opts.configFile != "" {
		if err := conf.Koanf().Load(file.Provider(opts.configFile), koanfadapter.Parser()); err != nil {
			return nil, errors.Wrapf(err, "loading configuration from %s", opts.configFile)
		}
	}
	flags := cmd.Flags()
	if flags.Changed("max-bucket-size") || !conf.IsSet(sortedset.KeyMaxBucketSize) {
		conf.Set(sortedset.KeyMaxBucketSize, opts.maxBucketSize)
	}
	if flags.Changed("capacity") || !conf.IsSet(sortedset.KeyInitialItemCapacity) {
		conf.Set(sortedset.KeyInitialItemCapacity, opts.capacity)
	}
	if flags.Changed("trace") || !conf.IsSet(keyTraceLevel) {
		conf.Set(keyTraceLevel, opts.traceLevel)
	}
	return conf, nil
}

// setupTracing routes the library tracers to the Go logger and sets up the
// command tracer.
func setupTracing(conf schuko.Configuration) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return errors.Wrap(err, "configuring tracing")
	}
	tracing.SetTraceSelector(trace2go.Selector())
	if err := gtrace.CreateTracers(gologadapter.GetAdapter()); err != nil {
		return err
	}
	gtrace.CommandTracer.SetTraceLevel(tracing.TraceLevelFromString(conf.GetString(keyTraceLevel)))
	return nil
}
