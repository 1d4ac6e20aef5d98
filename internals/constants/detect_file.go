package constants

import (
	"path/filepath"
	"strings"
)

// Tipe file submission/screenshot berdasarkan ekstensi.
func DetectFileTypeFromExt(filename string) int {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
		return 1 // Image
	case ".pdf":
		return 2 // PDF
	case ".doc", ".docx":
		return 3 // DOCX
	case ".zip", ".rar":
		return 4 // Archive
	default:
		return 99 // Tidak diketahui
	}
}

func IsImageFilename(filename string) bool {
	return DetectFileTypeFromExt(filename) == 1
}
