// internal/annotapp/app.go
package annotapp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"seqannot/internal/annot"
	"seqannot/internal/cli"
	"seqannot/internal/cliutil"
	"seqannot/internal/cmdutil"
	"seqannot/internal/merge"
	"seqannot/internal/report"
	"seqannot/internal/store"
	"seqannot/internal/writers"
)

// ErrUnused is returned with --fail-on-unused when annotations were left over.
var ErrUnused = errors.New("unused annotations")

func RunContext(ctx context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, outcome, err := cli.ParseAnnot(argv, stdout)
	if err != nil {
		return cmdutil.Fail(ctx, stderr, err)
	}
	switch outcome {
	case cli.ShowHelp:
		return cmdutil.ExitHelp
	case cli.ShowVersion:
		return cmdutil.ExitOK
	}
	return cmdutil.Fail(ctx, stderr, run(ctx, opts, stdin, stdout, stderr))
}

func Run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdin, stdout, stderr)
}

func run(ctx context.Context, opts cli.AnnotOptions, stdin io.Reader, stdout, stderr io.Writer) error {
	st := store.New()
	table, err := annot.Load(ctx, st, opts.Annotations, annot.Options{
		MinCopyStatus: opts.MinCopyStatus,
		Duplicates:    opts.DupPolicy,
		Warn: func(format string, a ...any) {
			cmdutil.Warnf(stderr, opts.Quiet, format, a...)
		},
	})
	if err != nil {
		return err
	}

	inputs, err := cliutil.ExpandInputs(ctx, st, opts.SeqFiles)
	if err != nil {
		return err
	}
	outputs, err := cliutil.OutputPaths(opts.Output, inputs)
	if err != nil {
		return err
	}
	if !opts.Force {
		targets := outputs
		if opts.UnusedReport != "" {
			targets = append(append([]string(nil), outputs...), opts.UnusedReport)
		}
		existing, err := cliutil.Existing(ctx, st, targets)
		if err != nil {
			return err
		}
		for _, p := range existing {
			cmdutil.Warnf(stderr, opts.Quiet, "The output sequence file (%s) already exists.", p)
		}
		if len(existing) > 0 {
			if err := cliutil.ConfirmOverwrite(stdin, stdout); err != nil {
				return err
			}
		}
	}

	mopts := merge.Options{
		FeatureType:  opts.FeatureType,
		IDQualifier:  opts.IDQualifier,
		Wanted:       opts.Wanted,
		KeepPrevious: opts.KeepPrevious,
	}
	var total merge.Stats
	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		recs, err := writers.ReadRecords(ctx, st, in, opts.In)
		if err != nil {
			return err
		}
		stats := merge.Merge(recs, table, mopts)
		if err := writers.WriteRecords(ctx, st, outputs[i], recs, opts.Out); err != nil {
			return err
		}
		total.Add(stats)
		cmdutil.Infof(stderr, opts.Quiet, "%s: %d %s features, %d annotated, %d values written -> %s",
			in, stats.Features, opts.FeatureType, stats.Matched, stats.Written, outputs[i])
	}

	unused := report.Unused(table)
	report.Warn(stderr, unused, opts.Quiet)
	if opts.UnusedReport != "" {
		doc := report.Build(table, unused, time.Now())
		if err := report.WriteYAML(ctx, st, opts.UnusedReport, doc); err != nil {
			return err
		}
	}
	cmdutil.Infof(stderr, opts.Quiet, "%d file(s), %d of %d annotations used",
		len(inputs), table.Len()-len(unused), table.Len())
	if opts.FailOnUnused && len(unused) > 0 {
		return fmt.Errorf("%w: %d of %d annotations were not copied", ErrUnused, len(unused), table.Len())
	}
	return nil
}
