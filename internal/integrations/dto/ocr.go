package dto

// RecognizedText is the provider-neutral result of reading an image, typically an
// equipment rating plate.
type RecognizedText struct {
	Provider   string   `json:"provider"`
	Text       string   `json:"text"`
	Lines      []string `json:"lines"`
	Confidence float64  `json:"confidence"`
}
