package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ntoxeg/narst/pkg/narst/nal"
	"github.com/ntoxeg/narst/pkg/narst/narsese"
)

// parseCmd parses one Narsese sentence and prints it as JSON
var parseCmd = &cobra.Command{
	Use:   "parse [sentence]",
	Short: "Parse a Narsese sentence",
	Long: `Parses a sentence and prints its structure as JSON.

Example:
  narst parse "<bird --> animal>. :|: {0.9 0.9}"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := narsese.ParseSentence(strings.Join(args, " "))
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(sentenceView(s), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

type sentenceJSON struct {
	Kind    string           `json:"kind"`
	Term    string           `json:"term"`
	Tense   nal.Tense        `json:"tense"`
	Truth   *nal.TruthValue  `json:"tv,omitempty"`
	Desire  *nal.DesireValue `json:"d,omitempty"`
	Narsese string           `json:"narsese"`
}

func sentenceView(s nal.Sentence) sentenceJSON {
	v := sentenceJSON{
		Term:    s.Term().Name(),
		Tense:   s.Tense(),
		Narsese: s.String(),
	}
	switch x := s.(type) {
	case nal.Judgement:
		v.Kind = "judgement"
		v.Truth = &x.Truth
	case nal.Question:
		v.Kind = "question"
		v.Truth = &x.Truth
	case nal.Goal:
		v.Kind = "goal"
		v.Desire = &x.Desire
	}
	return v
}
