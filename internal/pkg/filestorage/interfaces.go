// Package filestorage stores uploaded listing images.
package filestorage

import (
	"errors"
	"mime/multipart"
)

// ErrUnsupportedFileType marks uploads rejected for their extension.
// Everything else Save returns is a server-side storage failure.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// Storage saves and removes uploaded files, returning public URLs.
type Storage interface {
	// Save writes the uploaded file and returns its public URL.
	Save(file *multipart.FileHeader) (string, error)
	// Delete removes a previously saved file by its public URL.
	Delete(url string) error
}
