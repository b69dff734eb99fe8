package commands

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/pluqqy/taginput/internal/cli"
	"github.com/pluqqy/taginput/pkg/models"
	"github.com/pluqqy/taginput/pkg/suggest"
)

// SuggestResult is the printed form of a suggestion list
type SuggestResult struct {
	Query   string        `json:"query" yaml:"query"`
	Options []SuggestItem `json:"options" yaml:"options"`
	Count   int           `json:"count" yaml:"count"`
}

// SuggestItem is a single option
type SuggestItem struct {
	Name        string `json:"name" yaml:"name"`
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Disabled    bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// NewSuggestCommand creates the suggest command
func NewSuggestCommand() *cobra.Command {
	opts := &inputOptions{}

	cmd := &cobra.Command{
		Use:   "suggest <query>",
		Short: "Print the suggestions offered for a query",
		Long: `Print the options the tag input would list for a query, in order.

Matching is a case-insensitive substring search over candidate names.
At most --max-suggestions options are listed; when nothing matches and
--no-suggestions-text is set, a single disabled entry with that text is.

Examples:
  # Suggestions from a catalog
  taginput suggest go --suggestions tags.yaml

  # Ad-hoc candidates as JSON
  taginput suggest an --candidates apple,banana,mango -o json`,
		Args:    cobra.ExactArgs(1),
		Aliases: []string{"match"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuggest(cmd, opts, args[0])
		},
	}

	opts.register(cmd.Flags())
	return cmd
}

func runSuggest(cmd *cobra.Command, opts *inputOptions, query string) error {
	ctx, g, err := newCommandContext(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer ctx.Close()

	if err := opts.apply(cmd.Flags(), ctx.Settings); err != nil {
		return err
	}

	catalog, err := loadCandidates(ctx, opts)
	if err != nil {
		return err
	}

	if n := ctx.Settings.Input.MinQueryLength; utf8.RuneCountInString(query) < n {
		cli.PrintInfo("The tag input only lists suggestions from %d characters", n)
	}

	result := suggest.ComputeOptions(catalog.Candidates(), query, suggest.Config{
		MaxSuggestionsLength: ctx.Settings.Suggestions.MaxLength,
		NoSuggestionsText:    ctx.Settings.Suggestions.NoResultsText,
	})
	ctx.Logger.Debug("suggestions computed", "query", query, "count", len(result.Options))

	out := SuggestResult{Query: query, Options: make([]SuggestItem, 0, len(result.Options))}
	for _, option := range result.Options {
		out.Options = append(out.Options, SuggestItem{
			Name:        option.Name,
			ID:          option.ID,
			Description: option.Description,
			Disabled:    option.Disabled,
			Placeholder: option.Placeholder,
		})
	}
	out.Count = len(out.Options)

	switch g.Output {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), g.Output, out)
	default:
		return outputSuggestText(cmd, result)
	}
}

func outputSuggestText(cmd *cobra.Command, result suggest.Result) error {
	if len(result.Options) == 0 {
		cli.PrintInfo("No suggestions for '%s'", result.HighlightedQuery)
		return nil
	}

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("#", "NAME", "ID", "DISABLED", "DESCRIPTION")
	for i, option := range result.Options {
		table.Row(
			strconv.Itoa(i+1),
			markMatches(option, result.HighlightedQuery),
			option.ID,
			cli.YesNo(option.Disabled),
			cli.TruncateString(option.Description, 40),
		)
	}
	table.Flush()
	return nil
}

// markMatches brackets the parts of the name that match the query
func markMatches(option models.Candidate, query string) string {
	if option.Placeholder {
		return fmt.Sprintf("(%s)", option.Name)
	}

	var b strings.Builder
	for _, seg := range suggest.Highlight(option.Name, query) {
		if seg.Matched {
			b.WriteString("[" + seg.Text + "]")
		} else {
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}
