package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pluqqy/taginput/internal/cli"
	"github.com/pluqqy/taginput/pkg/models"
	"github.com/pluqqy/taginput/pkg/taginput"
	"github.com/pluqqy/taginput/pkg/tags"
)

// globalOptions are the persistent flags registered on the root command
type globalOptions struct {
	ConfigPath string
	Output     string
	Quiet      bool
	NoColor    bool
	Debug      bool
	LogFile    string
}

func (o *globalOptions) register(fs *pflag.FlagSet) {
	fs.StringVar(&o.ConfigPath, "config", "", "Settings file (default: .taginput.yaml in the working directory)")
	fs.StringVarP(&o.Output, "output", "o", "", "Output format: text, json or yaml")
	fs.BoolVarP(&o.Quiet, "quiet", "q", false, "Suppress informational messages")
	fs.BoolVar(&o.NoColor, "no-color", false, "Disable coloured status symbols")
	fs.BoolVar(&o.Debug, "debug", false, "Log debug records")
	fs.StringVar(&o.LogFile, "log-file", "", "Write log records to this file")
}

// inputOptions configure the tag input. A flag only overrides the settings
// file when it was given on the command line.
type inputOptions struct {
	suggestions       string
	candidates        []string
	tags              []string
	allowNew          bool
	noBackspace       bool
	addOnBlur         bool
	normalize         bool
	allowDuplicates   bool
	minQueryLength    int
	maxSuggestions    int
	noSuggestionsText string
	delimiters        string
}

func (o *inputOptions) register(fs *pflag.FlagSet) {
	defaults := models.DefaultSettings()

	fs.StringVarP(&o.suggestions, "suggestions", "s", "", "Tag catalog file (yaml, toml or json)")
	fs.StringSliceVar(&o.candidates, "candidates", nil, "Extra suggestion names, comma separated")
	fs.StringSliceVarP(&o.tags, "tags", "t", nil, "Initial tags, comma separated")
	fs.BoolVar(&o.allowNew, "allow-new", false, "Accept tags that are not in the catalog")
	fs.BoolVar(&o.noBackspace, "no-backspace", false, "Do not remove the last tag on backspace")
	fs.BoolVar(&o.addOnBlur, "add-on-blur", false, "Commit the query when the input loses focus")
	fs.BoolVar(&o.normalize, "normalize", false, "Lowercase and hyphenate tag names before storing")
	fs.BoolVar(&o.allowDuplicates, "allow-duplicates", false, "Allow the same tag more than once")
	fs.IntVar(&o.minQueryLength, "min-query-length", defaults.Input.MinQueryLength, "Characters needed before suggestions show")
	fs.IntVar(&o.maxSuggestions, "max-suggestions", defaults.Suggestions.MaxLength, "Maximum suggestions listed")
	fs.StringVar(&o.noSuggestionsText, "no-suggestions-text", "", "Entry shown when nothing matches")
	fs.StringVar(&o.delimiters, "delimiters", "", "Commit keys, comma separated (e.g. Enter,Tab,comma)")
}

// apply folds explicitly set flags into settings
func (o *inputOptions) apply(fs *pflag.FlagSet, s *models.Settings) error {
	if fs.Changed("suggestions") {
		s.Suggestions.Source = o.suggestions
	}
	if fs.Changed("allow-new") {
		s.Input.AllowNew = o.allowNew
	}
	if fs.Changed("no-backspace") {
		s.Input.AllowBackspace = !o.noBackspace
	}
	if fs.Changed("add-on-blur") {
		s.Input.AddOnBlur = o.addOnBlur
	}
	if fs.Changed("normalize") {
		s.Input.Normalize = o.normalize
	}
	if fs.Changed("allow-duplicates") {
		s.Input.AllowDuplicates = o.allowDuplicates
	}
	if fs.Changed("min-query-length") {
		s.Input.MinQueryLength = o.minQueryLength
	}
	if fs.Changed("max-suggestions") {
		s.Suggestions.MaxLength = o.maxSuggestions
	}
	if fs.Changed("no-suggestions-text") {
		s.Suggestions.NoResultsText = o.noSuggestionsText
	}
	if fs.Changed("delimiters") {
		delimiters, err := cli.ParseDelimiters(o.delimiters)
		if err != nil {
			return err
		}
		s.Input.Delimiters = delimiters
	}

	return cli.ValidateLengths(s.Input.MinQueryLength, s.Suggestions.MaxLength)
}

// readGlobals returns the persistent flags seen by cmd. Commands built
// outside the root command get the zero value.
func readGlobals(cmd *cobra.Command) globalOptions {
	var g globalOptions
	fs := cmd.Flags()
	g.ConfigPath, _ = fs.GetString("config")
	g.Output, _ = fs.GetString("output")
	g.Quiet, _ = fs.GetBool("quiet")
	g.NoColor, _ = fs.GetBool("no-color")
	g.Debug, _ = fs.GetBool("debug")
	g.LogFile, _ = fs.GetString("log-file")
	return g
}

// newCommandContext loads settings and sets up logging for cmd. Log
// records go to --log-file when given, otherwise to logFallback.
func newCommandContext(cmd *cobra.Command, logFallback io.Writer) (*cli.CommandContext, globalOptions, error) {
	g := readGlobals(cmd)
	cli.SetGlobalFlags(g.Quiet, g.NoColor)

	ctx, err := cli.NewCommandContext(g.ConfigPath)
	if err != nil {
		return nil, g, err
	}
	if err := ctx.SetupLogging(g.Debug, g.LogFile, logFallback); err != nil {
		return nil, g, err
	}

	if g.Output == "" {
		g.Output = ctx.Settings.Output.Format
	}
	if err := cli.ValidateOutputFormat(g.Output); err != nil {
		ctx.Close()
		return nil, g, err
	}
	return ctx, g, nil
}

// loadCandidates merges the catalog file with --candidates names
func loadCandidates(ctx *cli.CommandContext, o *inputOptions) (*tags.Catalog, error) {
	catalog, err := ctx.LoadCatalog(ctx.Settings.Suggestions.Source)
	if err != nil {
		return nil, err
	}
	if len(o.candidates) > 0 {
		catalog.Merge(tags.FromNames(o.candidates))
	}
	return catalog, nil
}

// session is a machine wired to a store
type session struct {
	Machine *taginput.Machine
	Store   *tags.Store
	Catalog *tags.Catalog
}

// newSession builds the store and machine described by the settings. The
// store applies every intent; base adds the caller's own callbacks.
func newSession(ctx *cli.CommandContext, o *inputOptions, base taginput.Callbacks) (*session, error) {
	s := ctx.Settings

	catalog, err := loadCandidates(ctx, o)
	if err != nil {
		return nil, err
	}

	store := tags.NewStore(models.TagsFromNames(o.tags), tags.StoreOptions{
		Normalize:       s.Input.Normalize,
		AllowDuplicates: s.Input.AllowDuplicates,
		Logger:          ctx.Logger,
	})

	cfg := taginput.DefaultConfig()
	cfg.Tags = store.List()
	cfg.Suggestions = catalog.Candidates()
	cfg.Delimiters = s.Input.Delimiters
	cfg.MinQueryLength = s.Input.MinQueryLength
	cfg.MaxSuggestionsLength = s.Suggestions.MaxLength
	cfg.AllowNew = s.Input.AllowNew
	cfg.AllowBackspace = s.Input.AllowBackspace
	cfg.AddOnBlur = s.Input.AddOnBlur
	cfg.NoSuggestionsText = s.Suggestions.NoResultsText
	cfg.Callbacks = store.Callbacks(base)
	cfg.Logger = ctx.Logger

	machine, err := taginput.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag input: %w", err)
	}

	ctx.Logger.Debug("session ready",
		"candidates", catalog.Len(),
		"tags", store.Len(),
		"delimiters", cfg.Delimiters)

	return &session{Machine: machine, Store: store, Catalog: catalog}, nil
}

// TagsResult is the printed form of the committed tags
type TagsResult struct {
	Tags  []TagItem `json:"tags" yaml:"tags"`
	Count int       `json:"count" yaml:"count"`
}

// TagItem is a single committed tag
type TagItem struct {
	Name  string `json:"name" yaml:"name"`
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

func newTagsResult(list []models.Tag) TagsResult {
	result := TagsResult{Tags: make([]TagItem, 0, len(list)), Count: len(list)}
	for _, tag := range list {
		result.Tags = append(result.Tags, TagItem{
			Name:  tag.Name,
			ID:    tag.Field("id"),
			Color: tag.Field("color"),
		})
	}
	return result
}

// printTags writes tags in the chosen format; text is one name per line
func printTags(w io.Writer, format string, list []models.Tag) error {
	if format == string(cli.FormatText) {
		for _, name := range models.TagNames(list) {
			fmt.Fprintln(w, name)
		}
		return nil
	}
	return cli.OutputResults(w, format, newTagsResult(list))
}
