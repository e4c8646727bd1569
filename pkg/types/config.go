package types

// OutputFormat selects how a summary is written.
type OutputFormat string

const (
	OutputMarkdown OutputFormat = "markdown"
	OutputJSON     OutputFormat = "json"
	OutputYAML     OutputFormat = "yaml"
)

// ToolConfig holds settings for invoking xcresulttool.
type ToolConfig struct {
	// Xcrun is the xcrun binary used to reach xcresulttool (default "xcrun").
	Xcrun string `json:"xcrun" yaml:"xcrun" mapstructure:"xcrun"`
}

// ReportConfig holds settings for rendering a summary.
type ReportConfig struct {
	// Kind is the report section label (e.g. "Unit Tests", "UI Tests").
	Kind string `json:"kind" yaml:"kind" mapstructure:"kind"`

	// Format selects the output encoding: markdown, json, or yaml.
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`

	// Lang is a BCP 47 tag choosing the Markdown label language (e.g. "en", "pt-BR").
	Lang string `json:"lang" yaml:"lang" mapstructure:"lang"`
}

// HistoryConfig holds settings for the optional local run history.
type HistoryConfig struct {
	// Record enables appending each summary to the history database.
	Record bool `json:"record" yaml:"record" mapstructure:"record"`

	// DB is the SQLite database path (default ".xcsummary/history.db").
	DB string `json:"history_db" yaml:"history_db" mapstructure:"history_db"`
}

// Config groups all settings for one xcsummary invocation.
type Config struct {
	ToolConfig    `yaml:",inline" mapstructure:",squash"`
	ReportConfig  `yaml:",inline" mapstructure:",squash"`
	HistoryConfig `yaml:",inline" mapstructure:",squash"`
}
