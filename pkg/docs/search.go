package docs

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

const (
	// excerptWindow is how many characters of context are kept on each
	// side of a search match.
	excerptWindow = 150
	// fallbackExcerptChars caps the excerpt taken from the start of a
	// document when no section-level match can be located.
	fallbackExcerptChars = 200
)

var newlineRun = regexp.MustCompile(`\n+`)

// searchMatch is one per-topic search result.
type searchMatch struct {
	topic   Topic
	heading string
	excerpt string
}

// SearchDocumentation scans every registered document for the query and
// renders one excerpt per matching topic, in registry order.
func (s *Service) SearchDocumentation(ctx context.Context, query string) string {
	lowerQuery := strings.ToLower(query)
	topics := Topics()
	contents := s.fetchAll(ctx, topics)

	var matches []searchMatch
	for i, topic := range topics {
		content := contents[i]
		if !strings.Contains(strings.ToLower(content), lowerQuery) {
			continue
		}
		heading, excerpt, ok := matchSection(content, lowerQuery)
		if !ok {
			heading = topic.Title
			excerpt = fallbackExcerpt(content)
		}
		matches = append(matches, searchMatch{topic: topic, heading: heading, excerpt: excerpt})
	}

	if len(matches) == 0 {
		return renderSearchMiss(query, lowerQuery)
	}

	blocks := make([]string, len(matches))
	for i, match := range matches {
		var b strings.Builder
		fmt.Fprintf(&b, "## %s\n", match.topic.Title)
		fmt.Fprintf(&b, "**Section:** %s\n\n", match.heading)
		b.WriteString(match.excerpt)
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "*Full document: get-documentation with topic %q*\n", string(match.topic.ID))
		blocks[i] = b.String()
	}
	return fmt.Sprintf("# Search Results for %q\n\n", query) + strings.Join(blocks, "\n---\n\n")
}

// matchSection finds the first section of content whose text contains the
// query and builds a windowed excerpt around the match. ok is false when no
// individual section contains the query, which can happen when the match
// spans a heading boundary.
func matchSection(content, lowerQuery string) (heading, excerpt string, ok bool) {
	for _, section := range splitSections(content) {
		full := section.heading + "\n" + section.body
		if !strings.Contains(strings.ToLower(full), lowerQuery) {
			continue
		}
		heading = displayHeading(section.heading)
		excerpt, ok = excerptAround(section.body, lowerQuery)
		if !ok {
			// Query sits in the heading line itself; show how the
			// section opens instead.
			excerpt = fallbackExcerpt(section.body)
		}
		return heading, excerpt, true
	}
	return "", "", false
}

// docSection is one heading-delimited chunk of a document. The heading is
// the chunk's first line verbatim; for text before the first heading that
// line is ordinary prose.
type docSection struct {
	heading string
	body    string
}

// splitSections cuts content at markdown heading lines. Fences are not
// tracked, so a # inside a code block starts a new section like any other.
func splitSections(content string) []docSection {
	lines := strings.Split(content, "\n")
	var sections []docSection
	start := 0
	for i := 1; i <= len(lines); i++ {
		if i < len(lines) && !isHeadingLine(lines[i]) {
			continue
		}
		chunk := lines[start:i]
		sections = append(sections, docSection{
			heading: chunk[0],
			body:    strings.Join(chunk[1:], "\n"),
		})
		start = i
	}
	return sections
}

// isHeadingLine reports whether a line starts with one or more # markers
// followed by whitespace.
func isHeadingLine(line string) bool {
	if !strings.HasPrefix(line, "#") {
		return false
	}
	rest := strings.TrimLeft(line, "#")
	return strings.HasPrefix(rest, " ") || strings.HasPrefix(rest, "\t")
}

func displayHeading(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, "#"))
}

// excerptAround windows up to excerptWindow characters on each side of the
// first occurrence of lowerQuery in body, collapsing newlines and marking
// clipped ends with an ellipsis.
func excerptAround(body, lowerQuery string) (string, bool) {
	idx := strings.Index(strings.ToLower(body), lowerQuery)
	if idx < 0 {
		return "", false
	}
	start := idx - excerptWindow
	if start < 0 {
		start = 0
	}
	end := idx + len(lowerQuery) + excerptWindow
	if end > len(body) {
		end = len(body)
	}
	excerpt := collapseNewlines(body[start:end])
	if start > 0 {
		excerpt = "..." + excerpt
	}
	if end < len(body) {
		excerpt += "..."
	}
	return excerpt, true
}

// fallbackExcerpt returns the opening of text, capped at
// fallbackExcerptChars with an ellipsis when clipped.
func fallbackExcerpt(text string) string {
	if len(text) <= fallbackExcerptChars {
		return collapseNewlines(text)
	}
	return collapseNewlines(text[:fallbackExcerptChars]) + "..."
}

func collapseNewlines(text string) string {
	return newlineRun.ReplaceAllString(text, " ")
}

func renderSearchMiss(query, lowerQuery string) string {
	var suggestions []Topic
	for _, topic := range Topics() {
		if topic.matchesQuery(lowerQuery) {
			suggestions = append(suggestions, topic)
		}
	}
	if len(suggestions) == 0 {
		return fmt.Sprintf("No results found for %q. Try a broader term, or fetch a topic directly with get-documentation.", query)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "No direct matches for %q in the documentation content.\n\nThese topics look related:\n", query)
	for _, topic := range suggestions {
		fmt.Fprintf(&sb, "\n- **%s**: get-documentation with topic %q", topic.Title, string(topic.ID))
	}
	return sb.String()
}
