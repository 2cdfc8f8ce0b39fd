package images

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidPayload = errors.New("invalid image payload")
	ErrInvalidFormat  = errors.New("unsupported image format")
)

// AllowedExtensions lists image formats accepted in data-URI payloads.
var AllowedExtensions = map[string]bool{
	"jpeg": true,
	"jpg":  true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// Store decodes base64 data-URI image payloads and writes them to local disk.
// Simple: decode -> unique filename -> return the public URL path.
type Store struct {
	baseDir    string // absolute or relative path to the uploads dir
	staticBase string // URL prefix the files are served under
}

func NewStore(baseDir, staticBase string) *Store {
	return &Store{baseDir: baseDir, staticBase: staticBase}
}

// SaveDataURI accepts a payload of the form "data:image/<ext>;base64,<data>",
// stores the decoded bytes under a uuid filename and returns the URL path.
func (s *Store) SaveDataURI(payload string) (string, error) {
	if !strings.HasPrefix(payload, "data:image/") {
		return "", ErrInvalidPayload
	}

	meta, data, found := strings.Cut(payload, ";base64,")
	if !found || data == "" {
		return "", ErrInvalidPayload
	}

	ext := strings.TrimPrefix(meta, "data:image/")
	if !AllowedExtensions[ext] {
		return "", ErrInvalidFormat
	}
	if ext == "jpg" {
		ext = "jpeg"
	}

	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", ErrInvalidPayload
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", err
	}

	name := uuid.New().String() + "." + ext
	if err := os.WriteFile(filepath.Join(s.baseDir, name), decoded, 0o644); err != nil {
		return "", err
	}

	return s.staticBase + "/" + name, nil
}
