package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ntoxeg/narst/pkg/narst/memory"
	"github.com/ntoxeg/narst/pkg/narst/nal"
)

var memoryFile string

// memoryCmd groups the memory file commands
var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Inspect and edit the JSON belief memory",
}

var memoryAddCmd = &cobra.Command{
	Use:   "add [term] [strength] [confidence]",
	Short: "Append a belief to the memory file",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("strength %q: %w", args[1], err)
		}
		c, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("confidence %q: %w", args[2], err)
		}
		tv, err := nal.NewTruthValue(s, c)
		if err != nil {
			return err
		}

		path := memoryPath()
		mem, err := memory.Load(path)
		if errors.Is(err, os.ErrNotExist) {
			mem = memory.New()
		} else if err != nil {
			return err
		}

		item := mem.Add(args[0], tv, nil)
		if err := memory.Store(path, mem); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added #%d %s %s\n", item.ID, item.Term, item.TV)
		return nil
	},
}

var memoryShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the memory file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mem, err := memory.Load(memoryPath())
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(mem, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func memoryPath() string {
	if memoryFile != "" {
		return memoryFile
	}
	return cfg.MemoryPath
}

func init() {
	memoryCmd.PersistentFlags().StringVar(&memoryFile, "path", "", "Memory file (default from config)")
	memoryCmd.AddCommand(memoryAddCmd, memoryShowCmd)
}
