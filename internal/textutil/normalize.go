package textutil

import (
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
)

var (
	mdLinkPattern  = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	bareURLPattern = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTagPattern = regexp.MustCompile(`<[^>]+>`)
)

// RemoveLinks strips markdown links (keeping the link text) and bare URLs.
func RemoveLinks(input string) string {
	input = mdLinkPattern.ReplaceAllString(input, "$1")
	input = bareURLPattern.ReplaceAllString(input, "")

	return input
}

// Normalize flattens a review to analyzable plain text. Reviews sourced from
// widgets and email arrive as markdown; everything downstream assumes plain
// text with sentence punctuation intact.
func Normalize(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := htmlTagPattern.ReplaceAllString(string(output), " ")
	plain = strings.Join(strings.Fields(plain), " ")

	return strings.TrimSpace(RemoveLinks(plain))
}
