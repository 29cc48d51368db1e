package schema

import "io"

// Attachement is non-text payload attached to message content
type Attachement struct {
	// ImageURLs attached image urls
	ImageURLs []string `json:"image_url,omitempty"`
	// Files attached file readers
	Files []io.Reader `json:"file,omitempty"`
}
