package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// importCommand builds an "import" subcommand that reads --data and prints
// the count the service returns.
func importCommand(short string, run func(cmd *cobra.Command) (int, error), a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.printCount(run(cmd))
		},
	}
	addDataFlags(cmd)
	return cmd
}

func parseInts(args []string) ([]int, error) {
	out := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", arg)
		}
		out = append(out, n)
	}
	return out, nil
}
