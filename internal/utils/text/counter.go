// Package text provides plain-text helpers for article bodies: HTML to text
// conversion, word counting, truncation and read-time estimates.
package text

import (
	"math"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// WordsPerMinute is the reading speed used by ReadTime.
const WordsPerMinute = 200

// PlainText strips markup from an HTML fragment and collapses whitespace.
// Input that cannot be parsed is returned with whitespace collapsed.
func PlainText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return collapseSpace(html)
	}
	doc.Find("script, style").Remove()
	return collapseSpace(doc.Text())
}

// CountWords counts whitespace-separated words.
func CountWords(text string) int {
	return len(strings.FieldsFunc(text, unicode.IsSpace))
}

// Truncate shortens text to at most limit runes and appends suffix when
// anything was cut. Text within the limit is returned unchanged.
func Truncate(text string, limit int, suffix string) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return strings.TrimRightFunc(string(runes[:limit]), unicode.IsSpace) + suffix
}

// ReadTime estimates the minutes needed to read text at WordsPerMinute,
// rounded up. It returns 0 for text without words.
func ReadTime(text string) int {
	words := CountWords(text)
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / WordsPerMinute))
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
