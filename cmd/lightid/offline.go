package main

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/nestjam/yap-sequencer/internal/numeral"
	"github.com/nestjam/yap-sequencer/internal/sequence"
	"github.com/nestjam/yap-sequencer/internal/switcher"
)

func newEncodeCommand() *cobra.Command {
	var (
		symbols   string
		minLength int
		take      int
	)

	cmd := &cobra.Command{
		Use:   "encode <count>",
		Short: "Print the id of a counter value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := sequence.ParseCount(args[0])
			if err != nil {
				return err
			}

			g, err := sequence.New(
				sequence.WithSymbols(symbols),
				sequence.WithMinLength(minLength),
				sequence.WithCount(count),
			)
			if err != nil {
				return err
			}

			for _, id := range g.TakeN(max(take, 1)) {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	alphabetFlag(cmd, &symbols, "alphabet", "alphabet symbols")
	cmd.Flags().IntVarP(&minLength, "min-length", "m", 0, "minimal id length")
	cmd.Flags().IntVarP(&take, "take", "n", 1, "number of consecutive ids to print")

	return cmd
}

func newDecodeCommand() *cobra.Command {
	var symbols string

	cmd := &cobra.Command{
		Use:   "decode <id>...",
		Short: "Print the counter value of ids",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := numeral.NewAlphabet(symbols)
			if err != nil {
				return err
			}

			for _, text := range args {
				var count *big.Int
				if count, err = numeral.Decode(text, a); err != nil {
					return fmt.Errorf("decode %q: %w", text, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), count.String())
			}
			return nil
		},
	}

	alphabetFlag(cmd, &symbols, "alphabet", "alphabet symbols")

	return cmd
}

func newSwitchCommand() *cobra.Command {
	var (
		source, target             string
		sourceMinLen, targetMinLen int
		reverse                    bool
	)

	cmd := &cobra.Command{
		Use:   "switch <id>...",
		Short: "Convert ids between two alphabets keeping the counter value",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sw, err := switcher.NewFromSymbols(source, target,
				switcher.WithSourceMinLength(sourceMinLen),
				switcher.WithTargetMinLength(targetMinLen))
			if err != nil {
				return err
			}

			direction := switcher.Forward
			if reverse {
				direction = switcher.Reverse
			}

			for _, text := range args {
				converted, err := sw.Convert(text, direction)
				if err != nil {
					return fmt.Errorf("switch %q: %w", text, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), converted)
			}
			return nil
		},
	}

	alphabetFlag(cmd, &source, "source", "source alphabet symbols")
	cmd.Flags().StringVar(&target, "target", "01", "target alphabet symbols")
	cmd.Flags().IntVar(&sourceMinLen, "source-min-length", 0, "minimal length of ids in the source alphabet")
	cmd.Flags().IntVar(&targetMinLen, "target-min-length", 0, "minimal length of ids in the target alphabet")
	cmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "convert from the target alphabet to the source one")

	return cmd
}
