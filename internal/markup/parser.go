package markup

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	unorderedPattern = regexp.MustCompile(`^\s*[-*]\s+(.*)$`)
	orderedPattern   = regexp.MustCompile(`^\s*(\d+)\.\s+(.*)$`)

	chipPattern   = regexp.MustCompile(`#([\p{L}\p{N}_][\p{L}\p{N}_+\-]*)`)
	boldPattern   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	linkPattern   = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`)
	italicPattern = regexp.MustCompile(`\*([^*\s](?:[^*]*[^*\s])?)\*`)
)

var allowedSchemes = map[string]struct{}{
	"":       {},
	"http":   {},
	"https":  {},
	"mailto": {},
}

type lineKind int

const (
	lineBlank lineKind = iota
	lineProse
	lineUnordered
	lineOrdered
)

type line struct {
	kind   lineKind
	text   string
	number int
}

// Parse converts free text into rich-text nodes. chipLogos maps chip names to
// a logo reference or inline SVG markup. Parse is pure: equal inputs produce
// structurally equal output.
func Parse(text string, chipLogos map[string]string) []Node {
	var (
		out          []Node
		open         *Node
		sawProse     bool
		pendingBreak int
	)

	closeList := func() {
		if open != nil {
			out = append(out, *open)
			open = nil
		}
	}

	for _, ln := range splitLines(text) {
		switch ln.kind {
		case lineBlank:
			if open == nil && sawProse {
				pendingBreak++
			}
		case lineUnordered, lineOrdered:
			ordered := ln.kind == lineOrdered
			if open != nil && open.Ordered != ordered {
				closeList()
			}
			if open == nil {
				list := List(ordered, ln.number)
				open = &list
			}
			open.Children = append(open.Children, ListItem(parseInline(ln.text, chipLogos)...))
			sawProse = false
			pendingBreak = 0
		case lineProse:
			closeList()
			if sawProse {
				for i := 0; i <= pendingBreak; i++ {
					out = append(out, Break())
				}
			}
			out = append(out, parseInline(ln.text, chipLogos)...)
			sawProse = true
			pendingBreak = 0
		}
	}
	closeList()
	return out
}

func splitLines(text string) []line {
	if text == "" {
		return nil
	}
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]line, 0, len(raw))
	for _, value := range raw {
		if strings.TrimSpace(value) == "" {
			lines = append(lines, line{kind: lineBlank})
			continue
		}
		if m := orderedPattern.FindStringSubmatch(value); m != nil {
			number, err := strconv.Atoi(m[1])
			if err == nil {
				lines = append(lines, line{kind: lineOrdered, text: m[2], number: number})
				continue
			}
		}
		if m := unorderedPattern.FindStringSubmatch(value); m != nil {
			lines = append(lines, line{kind: lineUnordered, text: m[1]})
			continue
		}
		lines = append(lines, line{kind: lineProse, text: value})
	}
	return lines
}

type family int

// Lower values win ties at the same offset.
const (
	familyLink family = iota
	familyBold
	familyChip
	familyItalic
)

type match struct {
	start, end int
	family     family
	groups     []string
}

func parseInline(text string, chipLogos map[string]string) []Node {
	matches := scan(text)
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].start != matches[j].start {
			return matches[i].start < matches[j].start
		}
		return matches[i].family < matches[j].family
	})

	var out []Node
	cursor := 0
	for _, m := range matches {
		if m.start < cursor {
			continue
		}
		out = appendGap(out, text[cursor:m.start])
		out = appendText(out, tokenNode(m, chipLogos))
		cursor = m.end
	}
	out = appendGap(out, text[cursor:])
	return out
}

func scan(text string) []match {
	var matches []match
	collect := func(pattern *regexp.Regexp, fam family) []match {
		var found []match
		for _, loc := range pattern.FindAllStringSubmatchIndex(text, -1) {
			groups := make([]string, 0, len(loc)/2-1)
			for g := 2; g+1 < len(loc); g += 2 {
				if loc[g] < 0 {
					groups = append(groups, "")
					continue
				}
				groups = append(groups, text[loc[g]:loc[g+1]])
			}
			found = append(found, match{start: loc[0], end: loc[1], family: fam, groups: groups})
		}
		return found
	}

	bold := collect(boldPattern, familyBold)
	matches = append(matches, bold...)
	matches = append(matches, collect(linkPattern, familyLink)...)

	for _, chip := range collect(chipPattern, familyChip) {
		if chip.start > 0 {
			prev, _ := utf8.DecodeLastRuneInString(text[:chip.start])
			if unicode.IsLetter(prev) || unicode.IsDigit(prev) || prev == '#' {
				continue
			}
		}
		matches = append(matches, chip)
	}

	for _, italic := range collect(italicPattern, familyItalic) {
		if !overlapsAny(italic, bold) {
			matches = append(matches, italic)
		}
	}
	return matches
}

func overlapsAny(m match, spans []match) bool {
	for _, span := range spans {
		if m.start < span.end && span.start < m.end {
			return true
		}
	}
	return false
}

// appendGap emits plain text for a gap, re-scanning it once for italic runs
// that were hidden by an overlapping candidate.
func appendGap(out []Node, gap string) []Node {
	if gap == "" {
		return out
	}
	cursor := 0
	for _, loc := range italicPattern.FindAllStringSubmatchIndex(gap, -1) {
		out = appendText(out, Text(gap[cursor:loc[0]]))
		out = append(out, Italic(gap[loc[2]:loc[3]]))
		cursor = loc[1]
	}
	return appendText(out, Text(gap[cursor:]))
}

// appendText appends node, merging adjacent text and dropping empty text.
func appendText(out []Node, node Node) []Node {
	if node.Kind != KindText {
		return append(out, node)
	}
	if node.Text == "" {
		return out
	}
	if n := len(out); n > 0 && out[n-1].Kind == KindText {
		out[n-1].Text += node.Text
		return out
	}
	return append(out, node)
}

func tokenNode(m match, chipLogos map[string]string) Node {
	switch m.family {
	case familyBold:
		return Bold(m.groups[0])
	case familyItalic:
		return Italic(m.groups[0])
	case familyLink:
		label, href := m.groups[0], m.groups[1]
		if !SafeHref(href) {
			return Text(label)
		}
		return Link(label, href)
	case familyChip:
		name := m.groups[0]
		return Chip(name, lookupLogo(chipLogos, name))
	default:
		return Text("")
	}
}

func lookupLogo(chipLogos map[string]string, name string) string {
	if len(chipLogos) == 0 {
		return ""
	}
	if logo, ok := chipLogos[name]; ok {
		return logo
	}
	return chipLogos[strings.ToLower(name)]
}

func classifyLogo(logo string) LogoKind {
	trimmed := strings.ToLower(strings.TrimSpace(logo))
	switch {
	case trimmed == "":
		return LogoNone
	case strings.HasPrefix(trimmed, "<svg"), strings.HasPrefix(trimmed, "<?xml"):
		return LogoSVG
	default:
		return LogoURL
	}
}

// SafeHref reports whether href uses an allowed scheme (http, https, mailto or relative).
func SafeHref(href string) bool {
	trimmed := strings.TrimSpace(href)
	if trimmed == "" {
		return false
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return false
	}
	_, ok := allowedSchemes[strings.ToLower(parsed.Scheme)]
	return ok
}
