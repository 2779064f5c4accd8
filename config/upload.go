package config

type UploadConfig struct {
	AllowedMimeTypes []string
	MaxSizeMB        int64
}

var UploadContexts = map[string]UploadConfig{
	// Photographs of rating plates and serial labels sent for text recognition.
	"ocr_image": {
		AllowedMimeTypes: []string{"image/jpeg", "image/png", "image/webp"},
		MaxSizeMB:        8,
	},
	"signature": {
		AllowedMimeTypes: []string{"image/png"},
		MaxSizeMB:        1,
	},
}
