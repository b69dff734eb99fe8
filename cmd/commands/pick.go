package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pluqqy/taginput/internal/cli"
	"github.com/pluqqy/taginput/pkg/models"
	"github.com/pluqqy/taginput/pkg/taginput"
	"github.com/pluqqy/taginput/pkg/tui"
)

type pickOptions struct {
	input     inputOptions
	title     string
	clipboard bool
	altScreen bool
}

// NewPickCommand creates the pick command
func NewPickCommand() *cobra.Command {
	opts := &pickOptions{}

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose tags interactively",
		Long: `Open an interactive tag input and print the chosen tags.

Type to filter suggestions, use ↑/↓ to highlight one and Enter or Tab
to add it. Backspace on an empty input removes the last tag.
Press ctrl+s when done or ctrl+c to cancel.

Examples:
  # Pick from a catalog
  taginput pick --suggestions tags.yaml

  # Allow free-form tags and start with two
  taginput pick --allow-new --tags go,cli

  # Commit on comma as well and print JSON
  taginput pick --delimiters Enter,Tab,comma -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPick(cmd, opts)
		},
	}

	opts.input.register(cmd.Flags())
	cmd.Flags().StringVar(&opts.title, "title", "", "Heading shown above the input")
	cmd.Flags().BoolVar(&opts.clipboard, "clipboard", false, "Copy the chosen tags to the clipboard")
	cmd.Flags().BoolVar(&opts.altScreen, "alt-screen", false, "Run in the alternate screen buffer")

	return cmd
}

func runPick(cmd *cobra.Command, opts *pickOptions) error {
	// The TUI owns the terminal, so logs only go to --log-file
	ctx, g, err := newCommandContext(cmd, nil)
	if err != nil {
		return err
	}
	defer ctx.Close()

	if err := opts.input.apply(cmd.Flags(), ctx.Settings); err != nil {
		return err
	}
	if cmd.Flags().Changed("clipboard") {
		ctx.Settings.Output.Clipboard = opts.clipboard
	}

	// Warnings also reach the status line once the program is running
	statusHandler := tui.NewLogHandler(slog.LevelWarn)
	ctx.Logger = slog.New(fanoutHandler{ctx.Logger.Handler(), statusHandler})

	sess, err := newSession(ctx, &opts.input, taginput.Callbacks{})
	if err != nil {
		return err
	}

	editor := tui.NewEditor(sess.Machine, sess.Store, tui.Options{
		Title:       opts.title,
		Placeholder: ctx.Settings.UI.Placeholder,
		Width:       ctx.Settings.UI.Width,
		ShowHelp:    ctx.Settings.UI.ShowHelp,
		Logger:      ctx.Logger,
	})

	programOpts := []tea.ProgramOption{tea.WithReportFocus()}
	if opts.altScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(editor, programOpts...)
	statusHandler.SetProgram(p)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run the terminal user interface: %w", err)
	}
	statusHandler.SetProgram(nil)

	if editor.Canceled() {
		cli.PrintWarning("Canceled, no tags printed")
		return nil
	}

	result := sess.Store.List()
	if err := printTags(cmd.OutOrStdout(), g.Output, result); err != nil {
		return err
	}

	if ctx.Settings.Output.Clipboard {
		if err := copyTags(result, clipboard.WriteAll); err != nil {
			return err
		}
		cli.PrintSuccess("%s copied to clipboard", tui.Summary(result))
	}
	return nil
}

// copyTags writes the comma separated names through write
func copyTags(list []models.Tag, write func(string) error) error {
	if len(list) == 0 {
		cli.PrintInfo("No tags to copy")
		return nil
	}
	if err := write(joinTagNames(list)); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

func joinTagNames(list []models.Tag) string {
	return strings.Join(models.TagNames(list), ", ")
}
