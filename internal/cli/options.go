// Package cli builds the lrdecomp command. Flags, LRDECOMP_* environment
// variables and an optional config file are merged by viper, in that order of
// precedence, into Options.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"lrdecomp/internal/app"
	"lrdecomp/internal/config"
	"lrdecomp/internal/version"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LRDECOMP"

// Options holds all CLI flags and arguments.
type Options struct {
	Reads      string
	Monomers   string
	Out        string
	Threads    int
	ConfigFile string

	Header          bool
	Progress        bool
	Quiet           bool
	NoMatchExitCode int

	Params config.Params
}

// AppOptions converts Options for app.Run.
func (o Options) AppOptions() app.Options {
	return app.Options{
		ReadsPath:       o.Reads,
		MonomersPath:    o.Monomers,
		OutPath:         o.Out,
		Threads:         o.Threads,
		Header:          o.Header,
		Progress:        o.Progress,
		Quiet:           o.Quiet,
		NoMatchExitCode: o.NoMatchExitCode,
		Params:          o.Params,
	}
}

// NewCommand returns the root command. run receives the resolved options.
func NewCommand(run func(cmd *cobra.Command, o Options) error) *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "lrdecomp -s reads.fa -m monomers.fa",
		Short: "Decompose long reads into tandem-repeat monomers",
		Long: `lrdecomp finds the highest-scoring decomposition of every long read into
monomers from a library (and their reverse complements). Calls are written to
a TSV file; alternate monomers for each call go to <out>_alt.tsv.`,
		Example: `  lrdecomp -s reads.fa -m monomers.fa -o decomposition.tsv -t 8
  lrdecomp -s reads.fa.gz -m monomers.fa --mode exact --header
  zcat reads.fa.gz | lrdecomp -s - -m monomers.fa -o - > calls.tsv`,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o, err := resolve(v)
			if err != nil {
				return err
			}
			return run(cmd, o)
		},
	}

	fs := cmd.Flags()
	fs.StringP("sequences", "s", "", "FASTA file with long reads (.gz or '-' for stdin) [required]")
	fs.StringP("monomers", "m", "", "FASTA file with monomers [required]")
	fs.StringP("out", "o", "decomposition.tsv", "output TSV ('-' for stdout, no alternates table)")
	fs.IntP("threads", "t", 1, "number of worker threads (0 = all CPUs)")
	fs.String("config", "", "YAML/TOML/JSON file with any of the long options")
	fs.Bool("header", false, "write a header line to the output tables")
	fs.Bool("progress", false, "show a progress bar over reads on stderr")
	fs.BoolP("quiet", "q", false, "suppress informational and warning messages")
	fs.Int("no-match-exit-code", 0, "exit code when no monomer is called")
	addParamFlags(fs)

	config.SetDefaults(v)
	_ = v.BindPFlags(fs)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return cmd
}

// resolve merges the sources into Options and validates them.
func resolve(v *viper.Viper) (Options, error) {
	var o Options
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return o, config.Errorf("reading %s: %v", path, err)
		}
	}
	o.Reads = v.GetString("sequences")
	o.Monomers = v.GetString("monomers")
	o.Out = v.GetString("out")
	o.Threads = v.GetInt("threads")
	o.ConfigFile = v.GetString("config")
	o.Header = v.GetBool("header")
	o.Progress = v.GetBool("progress")
	o.Quiet = v.GetBool("quiet")
	o.NoMatchExitCode = v.GetInt("no-match-exit-code")

	p, err := config.FromViper(v)
	if err != nil {
		return o, err
	}
	o.Params = p

	// Validation
	switch {
	case o.Reads == "":
		return o, config.Errorf("--sequences is required")
	case o.Monomers == "":
		return o, config.Errorf("--monomers is required")
	case o.Out == "":
		return o, config.Errorf("--out must not be empty")
	case o.Threads < 0:
		return o, config.Errorf("--threads must be ≥ 0")
	case o.Monomers == "-":
		return o, config.Errorf("--monomers cannot be read from stdin")
	}
	return o, nil
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	code := app.ExitOK
	cmd := NewCommand(func(cmd *cobra.Command, o Options) error {
		code = app.Run(cmd.Context(), stdout, stderr, o.AppOptions())
		return nil
	})
	cmd.SetArgs(argv)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		if !errors.Is(err, config.ErrConfig) {
			fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.Name())
		}
		return app.ExitConfig
	}
	return code
}
