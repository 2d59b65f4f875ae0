package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// FilenameRegex validates public media filenames. Filenames are opaque
// tokens issued by the content service; anything outside this alphabet
// can never match a catalog entry.
var FilenameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._ -]*$`)

// ValidateFilename validates a requested media filename. Path separators
// and parent references are rejected so a request can never address the
// blob store outside its root.
func ValidateFilename(filename string) error {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return fmt.Errorf("filename is required")
	}
	if len(filename) > 255 {
		return fmt.Errorf("filename is too long (max 255 characters)")
	}
	if strings.ContainsAny(filename, "/\\") {
		return fmt.Errorf("filename must not contain path separators")
	}
	if strings.Contains(filename, "..") {
		return fmt.Errorf("filename must not contain parent references")
	}
	if !FilenameRegex.MatchString(filename) {
		return fmt.Errorf("filename contains invalid characters")
	}
	return nil
}

// ValidateStorageKey validates a catalog storage key before it is handed
// to the blob store. Keys may use forward slashes as folder separators
// but must stay inside the storage root.
func ValidateStorageKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("storage key is required")
	}
	if strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return fmt.Errorf("storage key must be relative")
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return fmt.Errorf("storage key contains invalid path segment")
		}
	}
	return nil
}
