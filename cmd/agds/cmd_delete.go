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
			Use:   "delete DATAFILE VALUE",
			Short: "Load a column of values and delete one occurrence, reporting whether it was found",
			Args:  cobra.ExactArgs(2),
		},
		RunE: func(ctx context.Context, cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if kindFlag(cmd) == "string" {
				e, err := loadStringEngine(ctx, args[0])
				if err != nil {
					return err
				}
				found := e.Delete(containers.NativeOrdered[string]{Val: args[1]})
				textui.Fprintf(out, "%q: found=%v remaining=%d\n", args[1], found, textui.Humanized(e.Len()))
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
			found := e.Delete(containers.NumericKey[float64]{Val: val})
			textui.Fprintf(out, "%v: found=%v remaining=%d\n", val, found, textui.Humanized(e.Len()))
			return nil
		},
	})
}
