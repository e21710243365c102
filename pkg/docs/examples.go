package docs

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// exampleLookbehind is how far before a code fence the surrounding prose
// may mention the feature for the block to count as an example of it.
const exampleLookbehind = 300

// codeBlockPatterns extracts fenced code blocks per SDK. The tag must be
// followed by optional spaces and a newline, so a js pattern never claims
// json blocks.
var codeBlockPatterns = buildCodeBlockPatterns()

func buildCodeBlockPatterns() map[SDK]*regexp.Regexp {
	patterns := make(map[SDK]*regexp.Regexp, len(codeFenceTags))
	for sdk, tags := range codeFenceTags {
		patterns[sdk] = regexp.MustCompile("(?s)```(?:" + strings.Join(tags, "|") + ")[ \t]*\n(.*?)```")
	}
	return patterns
}

// codeBlock is one extracted fenced block and where its fence opens in the
// raw document.
type codeBlock struct {
	start int
	code  string
}

func extractCodeBlocks(content string, sdk SDK) []codeBlock {
	matches := codeBlockPatterns[sdk].FindAllStringSubmatchIndex(content, -1)
	blocks := make([]codeBlock, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, codeBlock{start: m[0], code: content[m[2]:m[3]]})
	}
	return blocks
}

// blockQualifies keeps a block when it mentions the feature itself or the
// prose within exampleLookbehind characters before its fence does.
func blockQualifies(content string, block codeBlock, lowerFeature string) bool {
	if strings.Contains(strings.ToLower(block.code), lowerFeature) {
		return true
	}
	lookStart := block.start - exampleLookbehind
	if lookStart < 0 {
		lookStart = 0
	}
	return strings.Contains(strings.ToLower(content[lookStart:block.start]), lowerFeature)
}

// candidateTopics narrows the scan to topics whose id or title mentions the
// feature, falling back to the full registry when none do.
func candidateTopics(lowerFeature string) []Topic {
	var candidates []Topic
	for _, topic := range Topics() {
		if topic.matchesQuery(lowerFeature) {
			candidates = append(candidates, topic)
		}
	}
	if len(candidates) == 0 {
		return Topics()
	}
	return candidates
}

// GetCodeExamples pulls fenced code blocks for the requested SDK out of the
// candidate documents, keeping only blocks attributable to the feature.
func (s *Service) GetCodeExamples(ctx context.Context, feature string, sdk SDK) string {
	lowerFeature := strings.ToLower(feature)
	topics := candidateTopics(lowerFeature)
	contents := s.fetchAll(ctx, topics)

	type topicExamples struct {
		topic  Topic
		blocks []codeBlock
	}
	var results []topicExamples
	for i, topic := range topics {
		content := contents[i]
		var kept []codeBlock
		for _, block := range extractCodeBlocks(content, sdk) {
			if blockQualifies(content, block, lowerFeature) {
				kept = append(kept, block)
			}
		}
		if len(kept) > 0 {
			results = append(results, topicExamples{topic: topic, blocks: kept})
		}
	}

	if len(results) == 0 {
		return fmt.Sprintf("No %s code examples found for %q. Try search-documentation with a broader term, or get-documentation with topic %q.",
			sdk.DisplayName(), feature, string(TopicAPIReference))
	}

	blocks := make([]string, len(results))
	for i, result := range results {
		var b strings.Builder
		fmt.Fprintf(&b, "## %s\n", result.topic.Title)
		for n, block := range result.blocks {
			fmt.Fprintf(&b, "\n### Example %d\n```%s\n%s\n```\n", n+1, sdk.FenceTag(), strings.TrimRight(block.code, "\n"))
		}
		fmt.Fprintf(&b, "\n*Full document: get-documentation with topic %q*\n", string(result.topic.ID))
		blocks[i] = b.String()
	}
	return fmt.Sprintf("# Code Examples: %s (%s)\n\n", feature, sdk.DisplayName()) + strings.Join(blocks, "\n---\n\n")
}
