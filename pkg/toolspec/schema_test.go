package toolspec

import (
	"testing"

	"github.com/paymanai/payman-docs-mcp/pkg/docs"
)

func TestGetDocumentationSchemaEnumeratesTopics(t *testing.T) {
	schema := GetDocumentationSchema()
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		t.Fatalf("schema properties missing")
	}
	topic, ok := props["topic"].(map[string]any)
	if !ok {
		t.Fatalf("expected schema to include topic property")
	}
	enum, ok := topic["enum"].([]string)
	if !ok {
		t.Fatalf("expected topic enum")
	}
	ids := docs.TopicIDs()
	if len(enum) != len(ids) {
		t.Fatalf("enum size: got %d, want %d", len(enum), len(ids))
	}
	for i, id := range ids {
		if enum[i] != id {
			t.Errorf("enum[%d]: got %q, want %q", i, enum[i], id)
		}
	}
}

func TestGetCodeExamplesSchemaDefaultsToNode(t *testing.T) {
	schema := GetCodeExamplesSchema()
	props := schema["properties"].(map[string]any)
	language, ok := props["language"].(map[string]any)
	if !ok {
		t.Fatalf("expected schema to include language property")
	}
	if language["default"] != string(docs.SDKNode) {
		t.Fatalf("language default: got %v, want %q", language["default"], docs.SDKNode)
	}
	if enum, ok := language["enum"].([]string); !ok || len(enum) != 2 {
		t.Fatalf("language enum: got %v", language["enum"])
	}
}

func TestSchemaRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		schema map[string]any
		want   []string
	}{
		{"get-documentation", GetDocumentationSchema(), []string{"topic"}},
		{"search-documentation", SearchDocumentationSchema(), []string{"query"}},
		{"get-code-examples", GetCodeExamplesSchema(), []string{"feature"}},
		{"solve-problem", SolveProblemSchema(), []string{"problem"}},
		{"get-sdk-help", GetSDKHelpSchema(), []string{"sdk", "feature"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			required, ok := tc.schema["required"].([]string)
			if !ok {
				t.Fatalf("required list missing")
			}
			if len(required) != len(tc.want) {
				t.Fatalf("required: got %v, want %v", required, tc.want)
			}
			for i, field := range tc.want {
				if required[i] != field {
					t.Errorf("required[%d]: got %q, want %q", i, required[i], field)
				}
			}
		})
	}
}
