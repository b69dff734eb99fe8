package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand creates the taginput command tree. Without a subcommand
// it behaves like pick.
func NewRootCommand(version string) *cobra.Command {
	globals := &globalOptions{}
	pick := NewPickCommand()

	root := &cobra.Command{
		Use:   "taginput",
		Short: "Terminal tag input with autocomplete suggestions",
		Long: `taginput is a keyboard-driven tag input for the terminal. It suggests
tags from a catalog as you type and prints the tags you pick, ready to be
piped into other tools.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          pick.RunE,
	}

	globals.register(root.PersistentFlags())
	root.Flags().AddFlagSet(pick.Flags())

	root.AddCommand(pick)
	root.AddCommand(NewSuggestCommand())
	root.AddCommand(NewReplayCommand())
	root.AddCommand(newVersionCommand(version))

	return root
}

func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of taginput",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taginput version %s\n", version)
		},
	}
}
