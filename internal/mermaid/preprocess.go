package mermaid

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	numberedMarkerRe = regexp.MustCompile(`(?m)^([ \t]*)\d+\.[ \t]+`)
	bulletMarkerRe   = regexp.MustCompile(`^([ \t]*)[-*•][ \t]+`)
	classBodyOpenRe  = regexp.MustCompile(`^[ \t]*class[ \t]+\S+.*\{[ \t\r]*$`)
	privateMemberRe  = regexp.MustCompile(`^[ \t]*-[ \t]+[A-Za-z_]`)
	blankRunRe       = regexp.MustCompile(`\n{4,}`)
)

// Preprocess strips list formatting noise that models wrap around diagram
// lines. The steps run in a fixed order: numbered markers, bullet markers,
// line endings, then trailing whitespace and blank lines. Marker stripping
// has to happen before any family parser sees the text, otherwise
// "1. A --> B" reads as a node "1.".
func Preprocess(text string) string {
	text = numberedMarkerRe.ReplaceAllString(text, "$1")
	text = stripBullets(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimRight(trimTrailingSpace(text), "\n")
	return norm.NFC.String(text)
}

// stripBullets removes bullet markers line by line. Inside a `class X {`
// body a leading "- " is private visibility, not a bullet, and is kept.
func stripBullets(text string) string {
	lines := strings.Split(text, "\n")
	inClass := false
	for i, line := range lines {
		if inClass {
			if strings.TrimSpace(line) == "}" {
				inClass = false
				continue
			}
			if privateMemberRe.MatchString(line) {
				continue
			}
		}
		lines[i] = bulletMarkerRe.ReplaceAllString(line, "$1")
		if classBodyOpenRe.MatchString(lines[i]) {
			inClass = true
		}
	}
	return strings.Join(lines, "\n")
}

// postprocess is the shared finishing pass of every repairer.
func postprocess(text string) string {
	text = trimTrailingSpace(text)
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	text = strings.TrimLeft(text, "\n")
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return ""
	}
	return text + "\n"
}

func trimTrailingSpace(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

// indent returns the leading whitespace for a nesting level.
func indent(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat("    ", level)
}
