// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"seqannot/internal/annot"
	"seqannot/internal/merge"
	"seqannot/internal/seqfile"
)

// ErrUsage marks invalid flag combinations or values.
var ErrUsage = errors.New("usage error")

// AnnotOptions configures annot2seq.
type AnnotOptions struct {
	Annotations   string   `mapstructure:"annotations"`
	SeqFiles      []string `mapstructure:"seq-files"`
	InFormat      string   `mapstructure:"in-format"`
	OutFormat     string   `mapstructure:"out-format"`
	Output        string   `mapstructure:"output"`
	FeatureType   string   `mapstructure:"feature-type"`
	IDQualifier   string   `mapstructure:"id-qualifier"`
	Qualifiers    string   `mapstructure:"qualifiers"`
	KeepPrevious  bool     `mapstructure:"keep-previous"`
	MinCopyStatus int      `mapstructure:"min-copy-status"`
	Duplicates    string   `mapstructure:"duplicates"`
	UnusedReport  string   `mapstructure:"unused-report"`
	FailOnUnused  bool     `mapstructure:"fail-on-unused"`
	Force         bool     `mapstructure:"force"`
	Quiet         bool     `mapstructure:"quiet"`

	// Resolved by validation.
	In        seqfile.Format        `mapstructure:"-"`
	Out       seqfile.Format        `mapstructure:"-"`
	Wanted    []string              `mapstructure:"-"`
	DupPolicy annot.DuplicatePolicy `mapstructure:"-"`
}

// ExtractOptions configures seq2fasta.
type ExtractOptions struct {
	SeqFiles    []string `mapstructure:"seq-files"`
	InFormat    string   `mapstructure:"in-format"`
	Output      string   `mapstructure:"output"`
	IDQualifier string   `mapstructure:"id-qualifier"`
	Force       bool     `mapstructure:"force"`
	Quiet       bool     `mapstructure:"quiet"`

	In seqfile.Format `mapstructure:"-"`
}

const annotExample = `  # annotate every contig, replacing product and gene
  annot2seq -a annotations.tsv -s 'contigs/*.embl' -o annotated -w product,gene

  # keep the old values and write GenBank
  annot2seq -a annotations.tsv -s contig1.embl.gz -k -F genbank -o annotated`

const extractExample = `  # proteins of all annotated contigs to stdout
  seq2fasta -s 'annotated/*.embl' -o - | head`

// ParseAnnot registers and parses the annot2seq flags. Help and version text
// are written to out.
func ParseAnnot(argv []string, out io.Writer) (AnnotOptions, Outcome, error) {
	cmd := newCommand("annot2seq", "merge a functional annotation table into EMBL/GenBank files", annotExample)
	fs := cmd.Flags()
	fs.StringP("annotations", "a", "", "tab-delimited annotation table [*]")
	addCommonFlags(fs)
	fs.StringP("out-format", "F", "embl", "output format: embl | gb | genbank")
	fs.StringP("output", "o", ".", "output directory")
	fs.StringP("feature-type", "t", "CDS", "feature type to annotate")
	fs.StringP("qualifiers", "w", merge.DefaultQualifiers, "comma-separated qualifiers to copy: note,product,gene,function")
	fs.BoolP("keep-previous", "k", false, "append to existing qualifier values instead of replacing them")
	fs.IntP("min-copy-status", "m", 1, "minimum status for copying the gene name")
	fs.String("duplicates", "fatal", "duplicate annotation ids: fatal | warn")
	fs.String("unused-report", "", "write unused annotations to this YAML file")
	fs.Bool("fail-on-unused", false, "exit with an error when annotations were not used")
	v := newViper(fs)

	var opt AnnotOptions
	outcome, err := execute(cmd, v, argv, out, func(args []string) error {
		if err := v.Unmarshal(&opt); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		opt.SeqFiles = append(opt.SeqFiles, args...)
		return opt.validate()
	})
	return opt, outcome, err
}

func (o *AnnotOptions) validate() error {
	var err error
	if o.Annotations == "" {
		return fmt.Errorf("%w: --annotations is required", ErrUsage)
	}
	if len(o.SeqFiles) == 0 {
		return fmt.Errorf("%w: at least one --seq-files path is required", ErrUsage)
	}
	if o.In, err = seqfile.ParseFormat(o.InFormat); err != nil {
		return err
	}
	if o.Out, err = seqfile.ParseFormat(o.OutFormat); err != nil {
		return err
	}
	if o.Wanted, err = merge.ParseQualifiers(o.Qualifiers); err != nil {
		return err
	}
	if o.DupPolicy, err = annot.ParseDuplicatePolicy(o.Duplicates); err != nil {
		return err
	}
	if strings.TrimSpace(o.FeatureType) == "" {
		return fmt.Errorf("%w: --feature-type must not be empty", ErrUsage)
	}
	if strings.TrimSpace(o.IDQualifier) == "" {
		return fmt.Errorf("%w: --id-qualifier must not be empty", ErrUsage)
	}
	if o.Output == "" {
		o.Output = "."
	}
	return nil
}

// ParseExtract registers and parses the seq2fasta flags.
func ParseExtract(argv []string, out io.Writer) (ExtractOptions, Outcome, error) {
	cmd := newCommand("seq2fasta", "translate CDS features of EMBL/GenBank files into protein FASTA", extractExample)
	fs := cmd.Flags()
	addCommonFlags(fs)
	fs.StringP("output", "o", "", "output FASTA file, - for stdout [*]")
	v := newViper(fs)

	var opt ExtractOptions
	outcome, err := execute(cmd, v, argv, out, func(args []string) error {
		if err := v.Unmarshal(&opt); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		opt.SeqFiles = append(opt.SeqFiles, args...)
		return opt.validate()
	})
	return opt, outcome, err
}

func (o *ExtractOptions) validate() error {
	var err error
	if len(o.SeqFiles) == 0 {
		return fmt.Errorf("%w: at least one --seq-files path is required", ErrUsage)
	}
	if o.Output == "" {
		return fmt.Errorf("%w: --output is required (use - for stdout)", ErrUsage)
	}
	if o.In, err = seqfile.ParseFormat(o.InFormat); err != nil {
		return err
	}
	if strings.TrimSpace(o.IDQualifier) == "" {
		return fmt.Errorf("%w: --id-qualifier must not be empty", ErrUsage)
	}
	return nil
}
