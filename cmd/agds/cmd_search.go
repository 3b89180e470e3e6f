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
			Use:   "search DATAFILE VALUE",
			Short: "Load a column of values and report whether VALUE is present, and its multiplicity",
			Args:  cobra.ExactArgs(2),
		},
		RunE: func(ctx context.Context, cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if kindFlag(cmd) == "string" {
				e, err := loadStringEngine(ctx, args[0])
				if err != nil {
					return err
				}
				v, _ := e.Search(containers.NativeOrdered[string]{Val: args[1]})
				if v == nil {
					textui.Fprintf(out, "%q: not found\n", args[1])
					return nil
				}
				textui.Fprintf(out, "%q: found, count=%d\n", args[1], textui.Humanized(v.Count))
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
			v, _ := e.Search(containers.NumericKey[float64]{Val: val})
			if v == nil {
				textui.Fprintf(out, "%v: not found\n", val)
				return nil
			}
			textui.Fprintf(out, "%v: found, count=%d\n", val, textui.Humanized(v.Count))
			return nil
		},
	})
}
