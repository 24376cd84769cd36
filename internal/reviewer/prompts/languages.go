package prompts

import (
	"path/filepath"
	"strings"
)

// languageLabels maps file extensions to the language label embedded
// in the prompt and in fenced code blocks.
var languageLabels = map[string]string{
	".py":   "python",
	".js":   "javascript",
	".ts":   "typescript",
	".java": "java",
	".go":   "go",
	".rs":   "rust",
	".cpp":  "cpp",
	".c":    "c",
	".cs":   "csharp",
	".rb":   "ruby",
	".php":  "php",
}

const genericLanguageLabel = "text"

// LanguageLabel returns the language label for a file path,
// falling back to a generic label for unknown extensions.
func LanguageLabel(filePath string) string {
	ext := strings.ToLower(filepath.Ext(filePath))
	if label, ok := languageLabels[ext]; ok {
		return label
	}
	return genericLanguageLabel
}
