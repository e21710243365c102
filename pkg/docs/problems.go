package docs

import (
	"fmt"
	"strings"
)

// sdkGuidance holds the fixed per-SDK setup notes appended when the caller
// names an SDK.
var sdkGuidance = map[SDK]string{
	SDKNode: "Install the package and construct a client with your API secret:\n\n" +
		"```bash\nnpm install paymanai\n```\n\n" +
		"```javascript\nimport Paymanai from \"paymanai\";\n\n" +
		"const client = new Paymanai({ xPaymanAPISecret: process.env.PAYMAN_API_SECRET });\n```\n\n" +
		"SDK calls return promises. Wrap them in try/catch and inspect the error status and message.",
	SDKPython: "Install the package and construct a client with your API secret:\n\n" +
		"```bash\npip install paymanai\n```\n\n" +
		"```python\nimport os\n\nfrom paymanai import Paymanai\n\n" +
		"client = Paymanai(x_payman_api_secret=os.environ[\"PAYMAN_API_SECRET\"])\n```\n\n" +
		"SDK calls raise exceptions on failure. Catch them and inspect the status code and error message.",
}

var troubleshootingChecklist = []string{
	"Verify your API key is valid and sent on every request.",
	"Make sure you are on the latest SDK release.",
	"Inspect the full error response body, not just the status code.",
	"Retry transient failures with exponential backoff.",
	"Check the error-handling documentation for status code meanings.",
}

// SolveProblem routes a problem description to documentation topics via the
// category keyword table. It composes a static answer and never fetches.
func (s *Service) SolveProblem(problem string, sdk SDK) string {
	matched := matchProblemCategories(strings.ToLower(problem))
	topicIDs := unionCategoryTopics(matched)
	if len(topicIDs) == 0 {
		topicIDs = defaultProblemTopics
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Troubleshooting: %s\n", problem)
	if len(matched) > 0 {
		names := make([]string, len(matched))
		for i, category := range matched {
			names[i] = category.Name
		}
		fmt.Fprintf(&sb, "\n**Matched categories:** %s\n", strings.Join(names, ", "))
	}
	if guidance, ok := sdkGuidance[sdk]; ok {
		fmt.Fprintf(&sb, "\n## %s Notes\n\n%s\n", sdk.DisplayName(), guidance)
	}
	sb.WriteString("\n## General Checklist\n")
	for _, item := range troubleshootingChecklist {
		sb.WriteString("\n- " + item)
	}
	sb.WriteString("\n\n## Consulted Topics\n")
	for _, id := range topicIDs {
		topic, ok := TopicByID(id)
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "\n- **%s**: get-documentation with topic %q", topic.Title, string(topic.ID))
	}
	return sb.String()
}

// matchProblemCategories returns every category with at least one keyword
// present in the lowercased problem text, in table order.
func matchProblemCategories(lowerProblem string) []problemCategory {
	var matched []problemCategory
	for _, category := range problemCategories {
		for _, keyword := range category.Keywords {
			if strings.Contains(lowerProblem, keyword) {
				matched = append(matched, category)
				break
			}
		}
	}
	return matched
}

// unionCategoryTopics merges the topic lists of the matched categories,
// keeping first-seen order and dropping duplicates.
func unionCategoryTopics(categories []problemCategory) []TopicID {
	var ids []TopicID
	seen := make(map[TopicID]bool)
	for _, category := range categories {
		for _, id := range category.Topics {
			if seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}
