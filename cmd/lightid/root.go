package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nestjam/yap-sequencer/internal/client"
	"github.com/nestjam/yap-sequencer/internal/numeral"
)

const tokenEnv = "LIGHTID_TOKEN"

type serverFlags struct {
	address  string
	token    string
	insecure bool
}

func (f *serverFlags) client() *client.Client {
	options := []client.Option{
		client.WithServerAddress(f.address),
		client.WithToken(f.token),
	}
	if f.insecure {
		options = append(options, client.WithInsecureSkipVerify())
	}
	return client.New(options...)
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "lightid",
		Short: "Sequential ids in arbitrary alphabets",
		Long: `lightid encodes counters as ids in an arbitrary alphabet, converts ids between alphabets
and works with sequences kept by a sequencer server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newEncodeCommand(), newDecodeCommand(), newSwitchCommand())

	flags := &serverFlags{}
	server := &cobra.Command{
		Use:   "server",
		Short: "Work with sequences kept by a sequencer server",
	}
	server.PersistentFlags().StringVarP(&flags.address, "address", "a", "http://localhost:8080", "sequencer server address")
	server.PersistentFlags().StringVar(&flags.token, "token", os.Getenv(tokenEnv), "user token, $"+tokenEnv+" by default")
	server.PersistentFlags().BoolVar(&flags.insecure, "insecure", false, "skip server certificate verification")
	server.AddCommand(
		newCreateCommand(flags),
		newGetCommand(flags),
		newTakeCommand(flags),
		newListCommand(flags),
		newDeleteCommand(flags),
		newConvertCommand(flags),
	)
	root.AddCommand(server)

	return root
}

func alphabetFlag(cmd *cobra.Command, target *string, name, usage string) {
	cmd.Flags().StringVar(target, name, numeral.DefaultSymbols, usage)
}
