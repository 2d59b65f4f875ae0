package domain

import (
	"path/filepath"
	"strings"
)

const (
	defaultVideoType    = "video/mp4"
	defaultResourceType = "application/octet-stream"
)

var videoContentTypes = map[string]string{
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".ogg":  "video/ogg",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
}

var resourceContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".zip":  "application/zip",
	".rar":  "application/x-rar-compressed",
	".7z":   "application/x-7z-compressed",
	".txt":  "text/plain",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// ContentTypeFor resolves the MIME type for a filename by asset kind.
// Unknown extensions fall back to the kind's default.
func ContentTypeFor(kind AssetKind, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	switch kind {
	case KindVideo:
		if ct, ok := videoContentTypes[ext]; ok {
			return ct
		}
		return defaultVideoType
	default:
		if ct, ok := resourceContentTypes[ext]; ok {
			return ct
		}
		return defaultResourceType
	}
}
