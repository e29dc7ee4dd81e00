package parser

import (
	"path/filepath"
	"strings"
)

// Language represents a supported source language.
type Language int

const (
	// LanguageTypeScript represents TypeScript (.ts, .tsx files).
	LanguageTypeScript Language = iota
	// LanguageJavaScript represents JavaScript (.js, .jsx files).
	LanguageJavaScript
	// LanguageUnknown represents an unsupported language.
	LanguageUnknown
)

// String returns the string representation of the language.
func (l Language) String() string {
	switch l {
	case LanguageTypeScript:
		return "typescript"
	case LanguageJavaScript:
		return "javascript"
	default:
		return "unknown"
	}
}

// DetectLanguage detects the source language from a file path.
// Returns LanguageUnknown if the extension is not recognized.
func DetectLanguage(filePath string) Language {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".ts", ".mts", ".cts", ".tsx":
		return LanguageTypeScript
	case ".js", ".jsx", ".mjs", ".cjs":
		return LanguageJavaScript
	default:
		return LanguageUnknown
	}
}

// IsTSXFile checks if a file path represents a TSX file. TSX files use the
// TypeScript grammar with JSX support enabled.
func IsTSXFile(filePath string) bool {
	return strings.EqualFold(filepath.Ext(filePath), ".tsx")
}

// IsSourceFile reports whether the path has a parseable extension.
func IsSourceFile(filePath string) bool {
	return DetectLanguage(filePath) != LanguageUnknown
}
