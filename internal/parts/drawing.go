package parts

import (
	"errors"
	"fmt"
	"strings"
)

// MaxDrawingSize is the upload ceiling for 2D drawings.
const MaxDrawingSize = 10 << 20

var (
	ErrDrawingType = errors.New("invalid file type, allowed: PNG, JPG, PDF, SVG, DXF")
	ErrDrawingSize = errors.New("file size exceeds 10 MB limit")
)

var drawingTypes = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"application/pdf": true,
	"image/svg+xml":   true,
	"application/dxf": true,
}

// ValidateDrawing checks the MIME type and size of a 2D drawing upload.
func ValidateDrawing(fileType string, size int64) error {
	mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(fileType, ";", 2)[0]))
	if !drawingTypes[mediaType] {
		return fmt.Errorf("%w: %q", ErrDrawingType, fileType)
	}
	if size > MaxDrawingSize {
		return ErrDrawingSize
	}
	return nil
}
