package main

import (
	"context"
	"fmt"

	"git.lukeshu.com/go/lowmemjson"
	"github.com/spf13/cobra"

	"github.com/MaciejGeldon/agds/lib/asa"
	"github.com/MaciejGeldon/agds/lib/containers"
)

type snapshotEntry[T any] struct {
	Value T   `json:"value"`
	Count int `json:"count"`
}

// snapshotEntries walks e in ascending order and extracts each
// key's exported scalar via val, shared by both the string- and
// numeric-keyed dump branches below.
func snapshotEntries[K containers.Ordered[K], T any](e *asa.Engine[K], val func(K) T) []snapshotEntry[T] {
	var entries []snapshotEntry[T]
	for it := e.Iterate(); ; {
		v, ok := it.Next()
		if !ok {
			break
		}
		entries = append(entries, snapshotEntry[T]{Value: val(v.Key), Count: v.Count})
	}
	return entries
}

func init() {
	cmd := subcommand{
		Command: cobra.Command{
			Use:   "dump DATAFILE",
			Short: "Print the tree as ASCII art, or with --json the queue as an ordered list",
			Args:  cobra.ExactArgs(1),
		},
	}
	cmd.Flags().Bool("json", false, "print a JSON snapshot of the queue instead of ASCII art")
	cmd.RunE = func(ctx context.Context, c *cobra.Command, args []string) error {
		asJSON, _ := c.Flags().GetBool("json")
		out := c.OutOrStdout()

		if kindFlag(c) == "string" {
			e, err := loadStringEngine(ctx, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				entries := snapshotEntries(e, func(k stringKey) string { return k.Val })
				return lowmemjson.Encode(out, entries)
			}
			fmt.Fprint(out, e.ASCIIArt())
			return nil
		}

		e, err := loadNumericEngine(ctx, args[0])
		if err != nil {
			return err
		}
		if asJSON {
			entries := snapshotEntries(e, func(k numericKey) float64 { return k.Val })
			return lowmemjson.Encode(out, entries)
		}
		fmt.Fprint(out, e.ASCIIArt())
		return nil
	}
	subcommands = append(subcommands, cmd)
}
