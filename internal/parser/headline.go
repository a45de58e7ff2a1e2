package parser

import (
	"regexp"
	"strings"

	"github.com/dr-yst/org-x/internal/org"
)

var (
	starsRe    = regexp.MustCompile(`^(\*+)\s+(.*)$`)
	priorityRe = regexp.MustCompile(`^\[#([A-Za-z])\]\s*`)
	tagsRe     = regexp.MustCompile(`(\s+)((?::[\w@#%]+)+:)\s*$`)
	planningRe = regexp.MustCompile(`(DEADLINE|SCHEDULED|CLOSED):\s*`)
)

// extractHeadlines scans content line by line and returns headlines in
// document order, not yet nested. keywords decides whether a title's
// first word is recognized as a TODO keyword; customProperties names
// drawer keys that are promoted onto the title.
func extractHeadlines(content string, keywords map[string]struct{}, customProperties []string) []*org.Headline {
	lines := strings.Split(content, "\n")

	var headlines []*org.Headline
	for i := 0; i < len(lines); i++ {
		m := starsRe.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}

		h := org.NewHeadline(parseTitle(len(m[1]), m[2], keywords), "")

		// Planning line and property drawer sit directly under the
		// headline, before any body text.
		j := i + 1
		if j < len(lines) {
			if p := parsePlanning(lines[j]); p != nil {
				h.Title.Planning = p
				j++
			}
		}
		if j < len(lines) && strings.EqualFold(strings.TrimSpace(lines[j]), ":PROPERTIES:") {
			props, end := parseDrawer(lines, j)
			if props != nil {
				h.Properties = props
				j = end + 1
			}
		}

		start := j
		for j < len(lines) && !starsRe.MatchString(lines[j]) {
			j++
		}
		h.Content = strings.TrimRight(strings.Join(lines[start:j], "\n"), "\n \t")

		promoteProperties(h, customProperties)
		headlines = append(headlines, h)
		i = j - 1
	}
	return headlines
}

// parseTitle splits a headline's text after the stars into TODO keyword,
// priority cookie, tags, and the remaining raw title.
func parseTitle(level int, text string, keywords map[string]struct{}) org.Title {
	title := org.SimpleTitle("", level)

	if m := tagsRe.FindStringSubmatch(text); m != nil {
		for _, t := range strings.Split(strings.Trim(m[2], ":"), ":") {
			if t != "" {
				title.Tags = append(title.Tags, t)
			}
		}
		text = text[:len(text)-len(m[0])]
	}

	if word, rest, ok := strings.Cut(text, " "); ok {
		if _, known := keywords[word]; known {
			title.TodoKeyword = word
			text = strings.TrimLeft(rest, " \t")
		}
	} else if _, known := keywords[text]; known {
		title.TodoKeyword = text
		text = ""
	}

	if m := priorityRe.FindStringSubmatch(text); m != nil {
		title.Priority = rune(m[1][0])
		text = text[len(m[0]):]
	}

	title.Raw = strings.TrimSpace(text)
	return title
}

// parsePlanning parses a DEADLINE/SCHEDULED/CLOSED line. All three may
// appear on the same line in any order. Returns nil when the line holds
// no planning entries.
func parsePlanning(line string) *org.Planning {
	matches := planningRe.FindAllStringSubmatchIndex(line, -1)
	if matches == nil {
		return nil
	}

	p := &org.Planning{}
	for _, m := range matches {
		key := line[m[2]:m[3]]
		ts := org.ParseTimestamp(line[m[1]:])
		if ts == nil {
			continue
		}
		switch key {
		case "DEADLINE":
			p.Deadline = ts
		case "SCHEDULED":
			p.Scheduled = ts
		case "CLOSED":
			p.Closed = ts
		}
	}
	if p.IsEmpty() {
		return nil
	}
	return p
}

// parseDrawer parses a :PROPERTIES: ... :END: drawer starting at lines[start].
// Returns the properties and the index of the :END: line, or nil when the
// drawer is unterminated.
func parseDrawer(lines []string, start int) (map[string]string, int) {
	props := make(map[string]string)
	for i := start + 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if strings.EqualFold(line, ":END:") {
			return props, i
		}
		if !strings.HasPrefix(line, ":") {
			continue
		}
		key, value, ok := strings.Cut(line[1:], ":")
		if !ok || key == "" {
			continue
		}
		props[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return nil, start
}

// promoteProperties copies the named drawer properties onto the title so
// they participate in the title fingerprint.
func promoteProperties(h *org.Headline, keys []string) {
	for _, key := range keys {
		if v, ok := h.Properties[key]; ok {
			h.Title.SetProperty(key, v)
		}
	}
}
