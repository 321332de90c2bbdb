// internal/extractapp/app.go
package extractapp

import (
	"context"
	"io"

	"seqannot/internal/cli"
	"seqannot/internal/cliutil"
	"seqannot/internal/cmdutil"
	"seqannot/internal/extract"
	"seqannot/internal/store"
	"seqannot/internal/writers"
)

func RunContext(ctx context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, outcome, err := cli.ParseExtract(argv, stdout)
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

func run(ctx context.Context, opts cli.ExtractOptions, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	st := store.New()
	inputs, err := cliutil.ExpandInputs(ctx, st, opts.SeqFiles)
	if err != nil {
		return err
	}
	if opts.Output != writers.Stdout && !opts.Force {
		existing, err := cliutil.Existing(ctx, st, []string{opts.Output})
		if err != nil {
			return err
		}
		for _, p := range existing {
			cmdutil.Warnf(stderr, opts.Quiet, "The output file (%s) already exists.", p)
		}
		if len(existing) > 0 {
			if err := cliutil.ConfirmOverwrite(stdin, stdout); err != nil {
				return err
			}
		}
	}

	out, err := writers.Open(ctx, st, opts.Output, stdout)
	if err != nil {
		return err
	}
	defer func() { err = writers.Finish(out, err) }()

	ex := extract.New(opts.IDQualifier)
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		recs, err := writers.ReadRecords(ctx, st, in, opts.In)
		if err != nil {
			return err
		}
		proteins, err := ex.Extract(recs)
		if err != nil {
			return err
		}
		if err := extract.WriteFASTA(out, proteins); err != nil {
			return err
		}
		cmdutil.Infof(stderr, opts.Quiet, "%s: %d proteins", in, len(proteins))
	}
	cmdutil.Infof(stderr, opts.Quiet, "%d file(s), %d proteins -> %s", len(inputs), ex.Count(), opts.Output)
	return nil
}
