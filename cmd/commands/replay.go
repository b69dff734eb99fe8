package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/taginput/internal/cli"
	"github.com/pluqqy/taginput/pkg/replay"
	"github.com/pluqqy/taginput/pkg/tags"
)

// ReplayResult is the printed form of a replayed session
type ReplayResult struct {
	Tags       []TagItem      `json:"tags" yaml:"tags"`
	Transcript []replay.Entry `json:"transcript" yaml:"transcript"`
	Query      string         `json:"query,omitempty" yaml:"query,omitempty"`
}

type replayOptions struct {
	input          inputOptions
	showTranscript bool
}

// NewReplayCommand creates the replay command
func NewReplayCommand() *cobra.Command {
	opts := &replayOptions{}

	cmd := &cobra.Command{
		Use:   "replay <script>",
		Short: "Run a scripted tag input session without a terminal",
		Long: `Feed a script of events to the tag input and print the resulting
tags and the intents it emitted along the way.

Scripts are YAML, TOML or JSON (comments allowed) and may carry their own
suggestions and initial tags:

  suggestions:
    - name: golang
    - name: rust
  tags: [cli]
  events:
    - {type: type, text: go}
    - {type: key, key: ArrowDown}
    - {type: key, key: Enter}

Event types: input, type, key, focus, blur, delete, update, clear.

Examples:
  # Replay a session
  taginput replay session.yaml

  # Only the final tags, as JSON
  taginput replay session.yaml --transcript=false -o json`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateFilePath(args[0])
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, opts, args[0])
		},
	}

	opts.input.register(cmd.Flags())
	cmd.Flags().BoolVar(&opts.showTranscript, "transcript", true, "Print the intents emitted by each event")

	return cmd
}

func runReplay(cmd *cobra.Command, opts *replayOptions, path string) error {
	ctx, g, err := newCommandContext(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer ctx.Close()

	if err := opts.input.apply(cmd.Flags(), ctx.Settings); err != nil {
		return err
	}

	script, err := replay.Load(path)
	if err != nil {
		return err
	}

	// Script tags and suggestions come after the ones given by flags
	opts.input.tags = append(opts.input.tags, script.Tags...)

	recorder := &replay.Recorder{}
	sess, err := newSession(ctx, &opts.input, recorder.Callbacks())
	if err != nil {
		return err
	}
	if len(script.Suggestions) > 0 {
		sess.Catalog.Merge(&tags.Catalog{Tags: script.Suggestions})
		sess.Machine.SetSuggestions(sess.Catalog.Candidates())
	}

	player := replay.NewPlayer(sess.Machine, sess.Store, recorder)
	if err := player.Play(script.Events); err != nil {
		return fmt.Errorf("replay stopped: %w", err)
	}
	ctx.Logger.Debug("replay finished", "events", len(script.Events), "tags", sess.Store.Len())

	result := ReplayResult{
		Tags:       newTagsResult(sess.Store.List()).Tags,
		Transcript: player.Transcript(),
		Query:      sess.Machine.Query(),
	}
	if !opts.showTranscript {
		result.Transcript = nil
	}

	switch g.Output {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), g.Output, result)
	default:
		return outputReplayText(cmd, result)
	}
}

func outputReplayText(cmd *cobra.Command, result ReplayResult) error {
	out := cmd.OutOrStdout()

	if len(result.Transcript) > 0 {
		table := cli.NewTableFormatter(out)
		table.Header("STEP", "EVENT", "INTENT")
		for _, entry := range result.Transcript {
			table.Row(fmt.Sprint(entry.Step), cli.TruncateString(entry.Event, 30), entry.Intent)
		}
		table.Flush()
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "Tags (%d):\n", len(result.Tags))
	for _, tag := range result.Tags {
		fmt.Fprintf(out, "  %s\n", tag.Name)
	}
	if result.Query != "" {
		fmt.Fprintf(out, "Pending query: %q\n", result.Query)
	}
	return nil
}
