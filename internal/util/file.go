package util

import (
	"path/filepath"

	"github.com/google/uuid"
)

// GenerateUniqueFilename keeps the original extension but replaces the
// name with a UUID so concurrent uploads never collide.
func GenerateUniqueFilename(originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	return uuid.New().String() + ext
}
