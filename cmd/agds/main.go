// Command agds is a CLI front-end over lib/asa and lib/agds: it
// builds an in-memory ASA engine from a newline-delimited file of
// values and performs one operation against it per invocation
// (persistence is out of scope, per spec.md's Non-goals).
package main

import (
	"context"
	"os"

	"github.com/datawire/dlib/dgroup"
	"github.com/datawire/dlib/dlog"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/MaciejGeldon/agds/lib/profile"
	"github.com/MaciejGeldon/agds/lib/textui"
)

type logLevelFlag struct {
	logrus.Level
}

func (lvl *logLevelFlag) Type() string { return "loglevel" }
func (lvl *logLevelFlag) Set(str string) error {
	var err error
	lvl.Level, err = logrus.ParseLevel(str)
	return err
}

var _ pflag.Value = (*logLevelFlag)(nil)

// subcommand bundles a cobra.Command with a RunE that is wrapped with
// logging and run-group plumbing uniformly, the same separation
// cmd/btrfs-rec/main.go's `subcommand` type keeps between command
// definition and command execution.
type subcommand struct {
	cobra.Command
	RunE func(ctx context.Context, cmd *cobra.Command, args []string) error
}

var subcommands []subcommand

func main() {
	lvl := logLevelFlag{Level: logrus.InfoLevel}

	argparser := &cobra.Command{
		Use:           "agds {[flags]|SUBCOMMAND}",
		Short:         "Query an Aggregating Sorted Associative structure built from a file of values",
		SilenceErrors: true,
		SilenceUsage:  false,
	}
	argparser.PersistentFlags().Var(&lvl, "verbosity", "set the verbosity (error|warn|info|debug|trace)")
	argparser.PersistentFlags().String("kind", "numeric", "key domain to parse the data file as: `numeric`|`string`")
	profileStop := profile.AddProfileFlags(argparser.PersistentFlags(), "profile-")

	for _, sub := range subcommands {
		cmd := sub.Command
		runE := sub.RunE
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			logger := logrus.New()
			logger.SetLevel(lvl.Level)
			ctx := dlog.WithLogger(cmd.Context(), dlog.WrapLogrus(logger))

			grp := dgroup.NewGroup(ctx, dgroup.GroupConfig{
				EnableSignalHandling: true,
			})
			grp.Go("main", func(ctx context.Context) error {
				return runE(ctx, cmd, args)
			})
			return grp.Wait()
		}
		argparser.AddCommand(&cmd)
	}

	err := argparser.ExecuteContext(context.Background())
	if stopErr := profileStop(); err == nil {
		err = stopErr
	}
	if err != nil {
		textui.Fprintf(os.Stderr, "%v: error: %v\n", argparser.CommandPath(), err)
		os.Exit(1)
	}
}

func kindFlag(cmd *cobra.Command) string {
	kind, _ := cmd.Flags().GetString("kind")
	return kind
}
