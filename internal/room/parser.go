package room

import (
	"bufio"
	"strings"
)

// Protocol markers embedded in otherwise free-form oracle text. Grammar for
// a marker line:
//
//	KEYWORD ":" [ prefix ":" ] name { "," name }
//
// The keyword is matched case-insensitively at the start of a line; the
// prefix is an optional scenario-specific label (e.g. "SURVIVORS"); names
// are comma-separated with trailing commas tolerated. The first matching
// line wins for each marker kind.
const (
	markerDead       = "DEAD"
	markerResolution = "RESOLUTION"
)

// parseDeaths returns the names on the first DEAD line, or nil.
func parseDeaths(text string) []string {
	rest, ok := firstMarkerLine(text, markerDead)
	if !ok {
		return nil
	}
	return splitNames(rest)
}

// parseResolution returns the names on the first RESOLUTION line. The
// optional prefix label is stripped; the names are reported verbatim and are
// not checked against any roster.
func parseResolution(text string) ([]string, bool) {
	rest, ok := firstMarkerLine(text, markerResolution)
	if !ok {
		return nil, false
	}
	if i := strings.Index(rest, ":"); i >= 0 {
		rest = rest[i+1:]
	}
	return splitNames(rest), true
}

// firstMarkerLine scans line by line for `keyword:` (case-insensitive) and
// returns everything after the colon of the first match.
func firstMarkerLine(text, keyword string) (string, bool) {
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if len(line) < len(keyword)+1 {
			continue
		}
		if !strings.EqualFold(line[:len(keyword)], keyword) {
			continue
		}
		rest := strings.TrimSpace(line[len(keyword):])
		if !strings.HasPrefix(rest, ":") {
			continue
		}
		return strings.TrimSpace(rest[1:]), true
	}
	return "", false
}

func splitNames(list string) []string {
	var names []string
	for _, part := range strings.Split(list, ",") {
		name := strings.TrimSpace(part)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// hasSpeakerLine reports whether any line starts with `name:` so a turn can
// be checked for the acting participant's dialogue.
func hasSpeakerLine(text, name string) bool {
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if len(line) <= len(name) {
			continue
		}
		if strings.EqualFold(line[:len(name)], name) &&
			strings.HasPrefix(strings.TrimSpace(line[len(name):]), ":") {
			return true
		}
	}
	return false
}
