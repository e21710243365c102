package docs

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

const (
	// sdkProximityChars bounds how far apart the first sdk token and the
	// first feature occurrence may sit for a document to count.
	sdkProximityChars = 500
	// sdkExcerptFollowLines is how many lines past the feature line the
	// excerpt extends.
	sdkExcerptFollowLines = 20
)

type sdkHelpResult struct {
	topic   Topic
	excerpt string
	score   int
}

// GetSDKHelp scans the SDK usage guides for a feature relevant to one SDK
// and renders the matching excerpts in score order.
func (s *Service) GetSDKHelp(ctx context.Context, sdk SDK, feature string) string {
	lowerFeature := strings.ToLower(feature)
	topics := make([]Topic, 0, len(sdkUsageTopics))
	for _, id := range sdkUsageTopics {
		if topic, ok := TopicByID(id); ok {
			topics = append(topics, topic)
		}
	}
	contents := s.fetchAll(ctx, topics)

	var results []sdkHelpResult
	for i, topic := range topics {
		content := contents[i]
		lowerContent := strings.ToLower(content)

		tokenIdx := -1
		for _, token := range sdkIdentifierTokens[sdk] {
			if idx := strings.Index(lowerContent, token); idx >= 0 {
				tokenIdx = idx
				break
			}
		}
		featureIdx := strings.Index(lowerContent, lowerFeature)
		if tokenIdx < 0 || featureIdx < 0 {
			continue
		}
		if delta := tokenIdx - featureIdx; delta >= sdkProximityChars || -delta >= sdkProximityChars {
			continue
		}

		excerpt, ok := sdkExcerpt(content, lowerFeature)
		if !ok {
			continue
		}

		score := 1
		if strings.Contains(lowerContent, string(sdk)) {
			score = 2
		}
		if strings.Contains(excerpt, feature) {
			score += 3
		}
		results = append(results, sdkHelpResult{topic: topic, excerpt: excerpt, score: score})
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].score > results[b].score
	})

	header := fmt.Sprintf("# %s SDK Help: %s\n\n", sdk.DisplayName(), feature)
	footer := fmt.Sprintf("## Additional Resources\n\n- Hosted documentation: %s\n- **API Reference**: get-documentation with topic %q\n- **Quickstart**: get-documentation with topic %q",
		s.BaseURL(), string(TopicAPIReference), string(TopicQuickstart))

	if len(results) == 0 {
		return fmt.Sprintf("No %s guidance found for %q in the SDK guides. Try search-documentation with the same term, or get-code-examples for runnable snippets.\n\n",
			sdk.DisplayName(), feature) + footer
	}

	blocks := make([]string, len(results))
	for i, result := range results {
		var b strings.Builder
		fmt.Fprintf(&b, "## %s\n\n", result.topic.Title)
		b.WriteString(result.excerpt)
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "*Full document: get-documentation with topic %q*\n", string(result.topic.ID))
		blocks[i] = b.String()
	}
	return header + strings.Join(blocks, "\n---\n\n") + "\n---\n\n" + footer
}

// sdkExcerpt slices from the heading above the first feature-bearing line
// through sdkExcerptFollowLines lines past it. ok is false when no single
// line contains the feature.
func sdkExcerpt(content, lowerFeature string) (string, bool) {
	lines := strings.Split(content, "\n")
	featureLine := -1
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), lowerFeature) {
			featureLine = i
			break
		}
	}
	if featureLine < 0 {
		return "", false
	}

	start := 0
	for i := featureLine; i >= 0; i-- {
		if strings.HasPrefix(lines[i], "#") {
			start = i
			break
		}
	}
	end := featureLine + sdkExcerptFollowLines + 1
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n"), true
}
