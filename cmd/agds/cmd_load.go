package main

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/MaciejGeldon/agds/lib/agds"
	"github.com/MaciejGeldon/agds/lib/containers"
	"github.com/MaciejGeldon/agds/lib/textui"
)

const valueColumn = agds.ColumnName("value")

func init() {
	subcommands = append(subcommands, subcommand{
		Command: cobra.Command{
			Use:   "load DATAFILE",
			Short: "Ingest a column of values into a fresh AGDS row registry, one row per line",
			Args:  cobra.ExactArgs(1),
		},
		RunE: func(ctx context.Context, cmd *cobra.Command, args []string) error {
			lines, err := readLines(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if kindFlag(cmd) == "string" {
				store := agds.New[stringKey](256)
				for _, line := range lines {
					if line == "" {
						continue
					}
					row := store.NewRow()
					store.Set(row, valueColumn, containers.NativeOrdered[string]{Val: line})
				}
				textui.Fprintf(out, "rows: %d\n", textui.Humanized(store.Rows()))
				textui.Fprintf(out, "distinct values: %d\n", textui.Humanized(store.Column(valueColumn).Len()))
				return nil
			}

			store := agds.New[numericKey](256)
			for _, line := range lines {
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				val, err := strconv.ParseFloat(line, 64)
				if err != nil {
					return errors.Wrapf(err, "parse numeric value %q", line)
				}
				row := store.NewRow()
				store.Set(row, valueColumn, containers.NumericKey[float64]{Val: val})
			}
			textui.Fprintf(out, "rows: %d\n", textui.Humanized(store.Rows()))
			textui.Fprintf(out, "distinct values: %d\n", textui.Humanized(store.Column(valueColumn).Len()))
			return nil
		},
	})
}
