package main

import (
	"assign-where/assign"
	"assign-where/internal/document"
	"assign-where/internal/filter"
	"assign-where/options"
	"assign-where/report"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootFlags struct {
	filter  filter.Options
	output  string
	strict  bool
	explain bool
	verbose bool
}

// newRootCmd builds the command tree, fresh for every call so tests do not share flag state.
func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "assign-where [flags] TARGET [SOURCE...]",
		Short: "Merge documents keeping only the entries that pass a filter",
		Long: `assign-where loads the TARGET document and merges the top-level entries of
every SOURCE onto it, left to right, last source wins. Only entries accepted by
the --key, --exclude-key and --value filters are copied. Null values are never
copied. Use "-" to read a document from stdin.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, args)
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&flags.filter.Keys, "key", "k", nil, "keep keys matching this glob (repeatable)")
	f.StringArrayVarP(&flags.filter.ExcludeKeys, "exclude-key", "x", nil, "drop keys matching this glob (repeatable)")
	f.StringArrayVar(&flags.filter.Values, "value", nil, "keep scalar values matching this regular expression (repeatable)")
	f.StringVarP(&flags.output, "output", "o", string(document.FormatYAML), "output format: yaml or json")
	f.BoolVar(&flags.strict, "strict", false, "reject sources that are not mappings")
	f.BoolVar(&flags.explain, "explain", false, "print what happened to every entry on stderr")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func run(cmd *cobra.Command, flags rootFlags, args []string) error {
	format, err := document.ParseFormat(flags.output)
	if err != nil {
		return err
	}

	logger, err := newLogger(flags.verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	keep, err := filter.Build(flags.filter)
	if err != nil {
		return err
	}

	target, err := document.LoadTarget(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	sources := make([]any, 0, len(args)-1)
	for _, path := range args[1:] {
		doc, err := document.LoadFile(path, cmd.InOrStdin())
		if err != nil {
			return err
		}
		logger.Debug("source loaded", zap.String("path", path))
		sources = append(sources, doc)
	}

	opts := []assign.Option{assign.WithLogger(logger)}

	if flags.strict {
		opts = append(opts, assign.WithCoercion(options.CoercionNone))
	}

	var rep report.Report
	if flags.explain {
		opts = append(opts, assign.WithReport(&rep))
	}

	merged, err := assign.New(opts...).Assign(keep, target, sources)
	if err != nil {
		return err
	}

	if flags.explain {
		fmt.Fprint(cmd.ErrOrStderr(), rep.String())
		if len(rep.Rejected) > 0 {
			fmt.Fprint(cmd.ErrOrStderr(), spew.Sdump(rejectedValues(rep)))
		}
	}

	data, err := document.Marshal(merged, format)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)

	return err
}

func rejectedValues(rep report.Report) map[string]any {
	out := make(map[string]any, len(rep.Rejected))
	for _, o := range rep.Rejected {
		out[o.Key] = o.Value
	}
	return out
}
