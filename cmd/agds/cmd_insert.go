package main

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/MaciejGeldon/agds/lib/containers"
	"github.com/MaciejGeldon/agds/lib/textui"
)

func init() {
	subcommands = append(subcommands, subcommand{
		Command: cobra.Command{
			Use:   "insert DATAFILE VALUE",
			Short: "Load a column of values and insert one more, reporting its resulting multiplicity",
			Args:  cobra.ExactArgs(2),
		},
		RunE: func(ctx context.Context, cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if kindFlag(cmd) == "string" {
				e, err := loadStringEngine(ctx, args[0])
				if err != nil {
					return err
				}
				v := e.Insert(containers.NativeOrdered[string]{Val: args[1]})
				textui.Fprintf(out, "%q: count=%d\n", args[1], textui.Humanized(v.Count))
				return nil
			}

			e, err := loadNumericEngine(ctx, args[0])
			if err != nil {
				return err
			}
			val, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return errors.Wrapf(err, "parse numeric value %q", args[1])
			}
			v := e.Insert(containers.NumericKey[float64]{Val: val})
			textui.Fprintf(out, "%v: count=%d\n", val, textui.Humanized(v.Count))
			return nil
		},
	})
}
