package models

// Settings represents the application configuration
type Settings struct {
	Input       InputSettings      `yaml:"input" toml:"input"`
	Suggestions SuggestionSettings `yaml:"suggestions" toml:"suggestions"`
	UI          UISettings         `yaml:"ui" toml:"ui"`
	Output      OutputSettings     `yaml:"output" toml:"output"`
}

// InputSettings controls how the query turns into tags
type InputSettings struct {
	Delimiters      []string `yaml:"delimiters" toml:"delimiters"`
	MinQueryLength  int      `yaml:"min_query_length" toml:"min_query_length"`
	AllowNew        bool     `yaml:"allow_new" toml:"allow_new"`
	AllowBackspace  bool     `yaml:"allow_backspace" toml:"allow_backspace"`
	AddOnBlur       bool     `yaml:"add_on_blur" toml:"add_on_blur"`
	Normalize       bool     `yaml:"normalize" toml:"normalize"`
	AllowDuplicates bool     `yaml:"allow_duplicates" toml:"allow_duplicates"`
}

// SuggestionSettings controls the suggestion list
type SuggestionSettings struct {
	Source        string `yaml:"source" toml:"source"` // path to a candidate catalog
	MaxLength     int    `yaml:"max_length" toml:"max_length"`
	NoResultsText string `yaml:"no_results_text" toml:"no_results_text"`
}

// UISettings controls UI preferences
type UISettings struct {
	Placeholder string `yaml:"placeholder" toml:"placeholder"`
	Width       int    `yaml:"width" toml:"width"`
	ShowHelp    bool   `yaml:"show_help" toml:"show_help"`
}

// OutputSettings controls how committed tags are printed
type OutputSettings struct {
	Format    string `yaml:"format" toml:"format"` // "text", "json" or "yaml"
	Clipboard bool   `yaml:"clipboard" toml:"clipboard"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Input: InputSettings{
			Delimiters:     []string{"Tab", "Enter"},
			MinQueryLength: 2,
			AllowNew:       false,
			AllowBackspace: true,
			AddOnBlur:      false,
		},
		Suggestions: SuggestionSettings{
			MaxLength: 6,
		},
		UI: UISettings{
			Placeholder: "Add new tag",
			Width:       60,
			ShowHelp:    true,
		},
		Output: OutputSettings{
			Format: "text",
		},
	}
}
