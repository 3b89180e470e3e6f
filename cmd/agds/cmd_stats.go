package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/MaciejGeldon/agds/lib/asa"
	"github.com/MaciejGeldon/agds/lib/textui"
)

func init() {
	subcommands = append(subcommands, subcommand{
		Command: cobra.Command{
			Use:   "stats DATAFILE",
			Short: "Print count/min/max/sum/mean/median for a column of values",
			Args:  cobra.ExactArgs(1),
		},
		RunE: func(ctx context.Context, cmd *cobra.Command, args []string) error {
			if kindFlag(cmd) == "string" {
				e, err := loadStringEngine(ctx, args[0])
				if err != nil {
					return err
				}
				printStringStats(cmd, e)
				return nil
			}
			e, err := loadNumericEngine(ctx, args[0])
			if err != nil {
				return err
			}
			printNumericStats(cmd, e)
			return nil
		},
	})
}

// printStringStats prints the stats that make sense for a
// string-keyed column: sum/mean/median have no Numeric instance for
// containers.NativeOrdered[string], so asa.Sum/Mean/Median simply
// aren't callable here — a compile error, not a runtime one, per this
// module's resolution of spec.md §7's "domain mismatch" hard error.
func printStringStats(cmd *cobra.Command, e *asa.Engine[stringKey]) {
	out := cmd.OutOrStdout()
	textui.Fprintf(out, "count: %d\n", textui.Humanized(e.Len()))
	if min, ok := e.Min(); ok {
		textui.Fprintf(out, "min: %q\n", min.Key.Val)
	}
	if max, ok := e.Max(); ok {
		textui.Fprintf(out, "max: %q\n", max.Key.Val)
	}
}

func printNumericStats(cmd *cobra.Command, e *asa.Engine[numericKey]) {
	out := cmd.OutOrStdout()
	textui.Fprintf(out, "count: %d\n", textui.Humanized(e.Len()))
	if min, ok := e.Min(); ok {
		textui.Fprintf(out, "min: %v\n", min.Key.Val)
	}
	if max, ok := e.Max(); ok {
		textui.Fprintf(out, "max: %v\n", max.Key.Val)
	}
	if sum, ok := asa.Sum(e); ok {
		textui.Fprintf(out, "sum: %v\n", sum.Val)
	}
	if mean, ok := asa.Mean(e); ok {
		textui.Fprintf(out, "mean: %v\n", mean)
	}
	if median, ok := asa.Median(e); ok {
		textui.Fprintf(out, "median: %v\n", median)
	}
}
