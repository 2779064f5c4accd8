package dto

type OCRRequestDTO struct {
	// base64 or data URL
	Image string `json:"image" validate:"required"`
}

type OCRResponseDTO struct {
	Text        string           `json:"text"`
	Lines       []string         `json:"lines"`
	Confidence  float64          `json:"confidence"`
	Suggestions []CatalogItemDTO `json:"suggestions"`
}
