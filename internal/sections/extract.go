package sections

import (
	"regexp"
	"strings"
)

// Style selects how a reply is parsed. It must match the prompt template the
// reply was produced from.
type Style int

const (
	QuotedField Style = iota
	HeadingSplit
)

func (s Style) String() string {
	switch s {
	case QuotedField:
		return "json"
	case HeadingSplit:
		return "heading"
	}
	return "unknown"
}

// HeadingMarker separates sections in heading-style replies
const HeadingMarker = "###"

// "<Field>" : "<value>" followed by a comma, newline or end of text.
// (?s) lets the value span lines; .+? keeps it to the shortest run.
var quotedPatterns = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(Fields))
	for _, f := range Fields {
		m[f] = regexp.MustCompile(`(?s)"` + regexp.QuoteMeta(f) + `"\s*:\s*"(.+?)"(?:,|\n|$)`)
	}
	return m
}()

// Extract parses reply with the given style
func Extract(reply string, style Style) Record {
	if style == HeadingSplit {
		return ExtractHeadings(reply)
	}
	return ExtractQuoted(reply)
}

// ExtractQuoted pulls each field out of a JSON-looking reply independently.
// Missing fields become NotParsed.
func ExtractQuoted(reply string) Record {
	var r Record
	for _, f := range Fields {
		m := quotedPatterns[f].FindStringSubmatch(reply)
		if m == nil {
			r.Set(f, NotParsed)
			continue
		}
		r.Set(f, strings.TrimSpace(m[1]))
	}
	return r
}

// ExtractHeadings splits reply on ### and assigns each fragment to the first
// field name it contains. Later fragments overwrite earlier ones; fields never
// seen stay NotGenerated.
func ExtractHeadings(reply string) Record {
	r := Filled(NotGenerated)
	for _, frag := range strings.Split(reply, HeadingMarker) {
		for _, f := range Fields {
			if strings.Contains(frag, f) {
				r.Set(f, strings.TrimSpace(strings.Replace(frag, f, "", 1)))
				break
			}
		}
	}
	return r
}
