package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// documentIDRegex matches the canonical UUID form used for stored snapshots.
var documentIDRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// ValidateDocumentID checks that id looks like a snapshot identifier.
// Store backends use the id as a file name or key suffix, so anything outside
// the UUID alphabet is rejected before it reaches them.
func ValidateDocumentID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "document id cannot be empty")
	}
	if !documentIDRegex.MatchString(id) {
		return New(ErrCodeInvalidID, "invalid document id: %q", id)
	}
	return nil
}

// ValidateUploadFilename validates the name of an uploaded document.
//
// Rules:
//   - Name cannot be empty or longer than 255 characters
//   - No control characters or path separators
//   - Extension must be .pdf (case-insensitive)
func ValidateUploadFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidFile, "filename cannot be empty")
	}
	if len(name) > 255 {
		return New(ErrCodeInvalidFile, "filename too long (max 255 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFile, "filename contains invalid control characters")
		}
	}
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidFile, "filename cannot contain path separators")
	}
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		return New(ErrCodeInvalidFile, "only PDF files are supported: %q", name)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
