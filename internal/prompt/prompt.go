package prompt

import (
	"fmt"

	"go-explainer/internal/config"
	"go-explainer/internal/sections"
)

const jsonTemplate = `
You are an educational AI that explains topics to beginners.

Given the topic: "%s", generate:

1. History of the topic (150 words)
2. Why & How it works (150 words)
3. Explain in Layman Language (100 words)
4. 5 Beginner Q&A related to it

Output format must be:
{
  "History": "...",
  "Why & How": "...",
  "Layman Explanation": "...",
  "Beginner Q&A": "..."
}
`

const headingTemplate = `
You are an educational AI that explains topics to beginners.

Given the topic: "%s", generate:

1. History of the topic (150 words)
2. Why & How it works (150 words)
3. Explain in Layman Language (100 words)
4. 5 Beginner Q&A related to it

Write exactly four sections, each starting with its heading on its own line:
### History
### Why & How
### Layman Explanation
### Beginner Q&A
`

// Build substitutes topic into the template for style. The topic is not
// escaped.
func Build(style sections.Style, topic string) string {
	if style == sections.HeadingSplit {
		return fmt.Sprintf(headingTemplate, topic)
	}
	return fmt.Sprintf(jsonTemplate, topic)
}

// ParseStyle maps the config value onto an extraction style. It expects the
// value as normalised by config.ApplyDefaults.
func ParseStyle(s string) (sections.Style, error) {
	switch s {
	case config.StyleJSON, "":
		return sections.QuotedField, nil
	case config.StyleHeading:
		return sections.HeadingSplit, nil
	}
	return sections.QuotedField, fmt.Errorf("unknown prompt style %q", s)
}
