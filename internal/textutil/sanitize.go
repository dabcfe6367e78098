package textutil

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// chapterPattern finds chapter markers such as "ch3", "CH 12", "Lecture_Ch07".
var chapterPattern = regexp.MustCompile(`(?i)ch\s*(\d+)`)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. The result is trimmed of leading/trailing whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

// OutputBaseName derives the artifact base name for an input file: prefix
// followed by the lowercased stem with spaces replaced by underscores. When
// the stem carries a chapter marker the name collapses to prefix + "chNN",
// with the number zero-padded to two digits.
func OutputBaseName(inputPath, prefix string) string {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	if match := chapterPattern.FindStringSubmatch(stem); match != nil {
		return prefix + "ch" + padChapter(match[1])
	}
	safe := SanitizeFileName(strings.ReplaceAll(strings.ToLower(stem), " ", "_"))
	if safe == "" || safe == "." {
		safe = "transcript"
	}
	return prefix + safe
}

// padChapter zero-pads to two digits, keeping longer numbers as written.
func padChapter(digits string) string {
	if len(digits) >= 2 {
		return digits
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return digits
	}
	return fmt.Sprintf("%02d", n)
}
