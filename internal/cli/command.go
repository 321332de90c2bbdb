// internal/cli/command.go
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"seqannot/internal/store"
	"seqannot/internal/version"
)

// EnvPrefix namespaces environment overrides, e.g. SEQANNOT_MIN_COPY_STATUS.
const EnvPrefix = "SEQANNOT"

// Outcome tells the caller what a parse did.
type Outcome int

const (
	Run Outcome = iota
	ShowHelp
	ShowVersion
)

func newCommand(name, short, example string) *cobra.Command {
	return &cobra.Command{
		Use:     name + " [flags] [sequence files...]",
		Short:   short,
		Example: example,
		Long:    fmt.Sprintf("%s: %s\n\nVersion: %s", name, short, version.Version),
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
	}
}

func newViper(fs *pflag.FlagSet) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(fs)
	return v
}

// readConfig merges the optional --config settings file. Flags given on the
// command line still win over it.
func readConfig(v *viper.Viper) error {
	path := v.GetString("config")
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("%w: config %s: %v", store.ErrIO, path, err)
	}
	return nil
}

// execute parses argv with cmd. load runs only when neither help nor
// version was requested.
func execute(cmd *cobra.Command, v *viper.Viper, argv []string, out io.Writer, load func(args []string) error) (Outcome, error) {
	ran := false
	cmd.RunE = func(_ *cobra.Command, args []string) error {
		ran = true
		if err := readConfig(v); err != nil {
			return err
		}
		return load(args)
	}
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetOut(out)
	cmd.SetErr(out)
	if argv == nil {
		argv = []string{}
	}
	cmd.SetArgs(argv)

	if err := cmd.Execute(); err != nil {
		return Run, err
	}
	if ran {
		return Run, nil
	}
	if f := cmd.Flags().Lookup("version"); f != nil && f.Changed {
		return ShowVersion, nil
	}
	return ShowHelp, nil
}

func addCommonFlags(fs *pflag.FlagSet) {
	fs.StringArrayP("seq-files", "s", nil, "sequence file(s): path or glob, repeatable")
	fs.StringP("in-format", "f", "embl", "input format: embl | gb | genbank")
	fs.StringP("id-qualifier", "i", "locus_tag", "qualifier holding the annotation id")
	fs.BoolP("force", "y", false, "overwrite existing outputs without asking")
	fs.BoolP("quiet", "q", false, "suppress warnings and progress lines")
	fs.StringP("config", "c", "", "YAML settings file")
}
