package toolspec

// Tool identifiers and schema definitions shared by the MCP server layer.

import "github.com/paymanai/payman-docs-mcp/pkg/docs"

const (
	GetDocumentationName        = "get-documentation"
	GetDocumentationDescription = "Retrieve a Payman documentation page by topic. The response includes the full page and pointers to related topics."

	SearchDocumentationName        = "search-documentation"
	SearchDocumentationDescription = "Search all Payman documentation pages for a term. Returns the matching section of each page with an excerpt around the match."

	GetCodeExamplesName        = "get-code-examples"
	GetCodeExamplesDescription = "Extract code examples for a feature from the Payman documentation, filtered to the requested SDK language."

	SolveProblemName        = "solve-problem"
	SolveProblemDescription = "Describe a problem with the Payman API and get routed to the relevant documentation topics with troubleshooting guidance."

	GetSDKHelpName        = "get-sdk-help"
	GetSDKHelpDescription = "Find guidance for using a specific feature with the Payman Node.js or Python SDK."
)

// GetDocumentationSchema returns the JSON schema for the get-documentation tool.
func GetDocumentationSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic": map[string]any{
				"type":        "string",
				"description": "The documentation topic to retrieve",
				"enum":        docs.TopicIDs(),
			},
		},
		"required": []string{"topic"},
	}
}

// SearchDocumentationSchema returns the JSON schema for the search-documentation tool.
func SearchDocumentationSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The term to search for across all documentation pages",
			},
		},
		"required": []string{"query"},
	}
}

// GetCodeExamplesSchema returns the JSON schema for the get-code-examples tool.
func GetCodeExamplesSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"feature": map[string]any{
				"type":        "string",
				"description": "The feature to find examples for, e.g. 'send payment' or 'webhooks'",
			},
			"language": map[string]any{
				"type":        "string",
				"description": "The SDK language to extract examples for",
				"enum":        docs.SDKs(),
				"default":     string(docs.SDKNode),
			},
		},
		"required": []string{"feature"},
	}
}

// SolveProblemSchema returns the JSON schema for the solve-problem tool.
func SolveProblemSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problem": map[string]any{
				"type":        "string",
				"description": "A description of the problem, e.g. 'I got a 401 unauthorized error'",
			},
			"sdk": map[string]any{
				"type":        "string",
				"description": "Optional. The SDK in use, for SDK-specific guidance",
				"enum":        docs.SDKs(),
			},
		},
		"required": []string{"problem"},
	}
}

// GetSDKHelpSchema returns the JSON schema for the get-sdk-help tool.
func GetSDKHelpSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sdk": map[string]any{
				"type":        "string",
				"description": "The SDK to get help for",
				"enum":        docs.SDKs(),
			},
			"feature": map[string]any{
				"type":        "string",
				"description": "The feature or method name to look up",
			},
		},
		"required": []string{"sdk", "feature"},
	}
}
