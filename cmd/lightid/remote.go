package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nestjam/yap-sequencer/internal/api"
)

func newCreateCommand(flags *serverFlags) *cobra.Command {
	var req api.CreateSequenceRequest

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a sequence, the server picks a name if none is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				req.Name = args[0]
			}

			c := flags.client()
			seq, err := c.Create(cmd.Context(), req)
			if err != nil {
				return err
			}

			printSequence(cmd.OutOrStdout(), seq)
			if flags.token == "" && c.Token() != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), dimStyle.Render("token: "+c.Token()))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Alphabet, "alphabet", "", "alphabet symbols, server default if empty")
	cmd.Flags().IntVarP(&req.MinLength, "min-length", "m", 0, "minimal id length")
	cmd.Flags().StringVar(&req.Count, "count", "", "initial counter value")
	cmd.Flags().StringVar(&req.Text, "text", "", "initial id")

	return cmd
}

func newGetCommand(flags *serverFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Show a sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := flags.client().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printSequence(cmd.OutOrStdout(), seq)
			return nil
		},
	}
}

func newTakeCommand(flags *serverFlags) *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "take <name>",
		Short: "Take the next ids of a sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := flags.client().Take(cmd.Context(), args[0], n)
			if err != nil {
				return err
			}

			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&n, "count", "n", 1, "number of ids")

	return cmd
}

func newListCommand(flags *serverFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sequences of the user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sequences, err := flags.client().List(cmd.Context())
			if err != nil {
				return err
			}

			if len(sequences) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("no sequences"))
				return nil
			}

			printSequences(cmd.OutOrStdout(), sequences)
			return nil
		},
	}
}

func newDeleteCommand(flags *serverFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>...",
		Short: "Delete sequences of the user",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.client().Delete(cmd.Context(), args); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("deletion accepted"))
			return nil
		},
	}
}

func newConvertCommand(flags *serverFlags) *cobra.Command {
	var req api.ConvertRequest

	cmd := &cobra.Command{
		Use:   "convert <id>",
		Short: "Convert an id between alphabets on the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Text = args[0]

			result, err := flags.client().Convert(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Source, "source", "", "source alphabet symbols, server default if empty")
	cmd.Flags().StringVar(&req.Target, "target", "", "target alphabet symbols, server default if empty")
	cmd.Flags().IntVar(&req.SourceMinLength, "source-min-length", 0, "minimal length of ids in the source alphabet")
	cmd.Flags().IntVar(&req.TargetMinLength, "target-min-length", 0, "minimal length of ids in the target alphabet")
	cmd.Flags().BoolVarP(&req.Reverse, "reverse", "r", false, "convert from the target alphabet to the source one")

	return cmd
}
