package loam

// DocumentMetadata is the front matter of a Markdown document.
type DocumentMetadata struct {
	ID    string `json:"id" mapstructure:"id"`
	Title string `json:"title" mapstructure:"title"`
	Draft bool   `json:"draft" mapstructure:"draft"`

	// Flexmark overrides the marker configuration for this document only.
	// Keys follow the configuration file (dictionary, tag_name, ...).
	Flexmark map[string]any `json:"flexmark" mapstructure:"flexmark"`
}
