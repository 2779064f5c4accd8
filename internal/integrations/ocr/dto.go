package ocr

type recognizeRequest struct {
	Image    string `json:"image"`
	MimeType string `json:"mime_type"`
	Language string `json:"language"`
}

type recognizeResponse struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Lines      []struct {
		Text string `json:"text"`
	} `json:"lines"`
}

type errorResponse struct {
	Error string `json:"error"`
}
