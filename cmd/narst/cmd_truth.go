package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ntoxeg/narst/pkg/narst/nal"
)

// truthCmd evaluates a binary truth function
var truthCmd = &cobra.Command{
	Use:   "truth [function] [s1] [c1] [s2] [c2]",
	Short: "Evaluate a truth function",
	Long: `Combines two truth values with a named truth function.

Functions: ` + strings.Join(nal.FunctionNames(), ", ") + `

Example:
  narst truth deduction 0.9 0.9 0.8 0.9`,
	Args: cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		fn, err := nal.LookupFunction(args[0])
		if err != nil {
			return err
		}

		var nums [4]float64
		for i, a := range args[1:] {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return fmt.Errorf("argument %d %q: %w", i+2, a, err)
			}
			nums[i] = v
		}

		t1, err := nal.NewTruthValue(nums[0], nums[1])
		if err != nil {
			return fmt.Errorf("first premise: %w", err)
		}
		t2, err := nal.NewTruthValue(nums[2], nums[3])
		if err != nil {
			return fmt.Errorf("second premise: %w", err)
		}

		tv, err := fn(t1, t2)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tv.String())
		return nil
	},
}
