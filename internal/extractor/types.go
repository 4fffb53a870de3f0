package extractor

// Example is a titled, language-tagged code snippet extracted from
// documentation, with an optional one-line description.
type Example struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Code        string `json:"code"`
	Language    string `json:"language"`
}
