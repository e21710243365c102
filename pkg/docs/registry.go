// Package docs retrieves and queries the Payman documentation pages.
package docs

import "strings"

// TopicID identifies one registered documentation page.
type TopicID string

const (
	TopicQuickstart    TopicID = "quickstart"
	TopicAPIKeys       TopicID = "api-keys"
	TopicNodeSDK       TopicID = "nodejs-sdk"
	TopicPythonSDK     TopicID = "python-sdk"
	TopicSendPayment   TopicID = "send-payment"
	TopicCreatePayee   TopicID = "create-payee"
	TopicSearchPayees  TopicID = "search-payees"
	TopicGetBalance    TopicID = "get-balance"
	TopicSpendLimits   TopicID = "spend-limits"
	TopicWebhooks      TopicID = "webhooks"
	TopicErrorHandling TopicID = "error-handling"
	TopicAPIReference  TopicID = "api-reference"
)

// Topic describes one documentation page: its remote path, display title,
// and pointers to related pages.
type Topic struct {
	ID      TopicID
	Path    string
	Title   string
	Related []TopicID
}

// registry lists every topic in scan order. Search aggregation, code example
// extraction, and SDK help all iterate in this order.
var registry = []Topic{
	{TopicQuickstart, "/quickstart", "Quickstart", []TopicID{TopicAPIKeys, TopicNodeSDK, TopicPythonSDK}},
	{TopicAPIKeys, "/api-keys", "API Keys & Authentication", []TopicID{TopicQuickstart, TopicErrorHandling}},
	{TopicNodeSDK, "/nodejs-sdk", "Node.js SDK", []TopicID{TopicQuickstart, TopicSendPayment, TopicCreatePayee}},
	{TopicPythonSDK, "/python-sdk", "Python SDK", []TopicID{TopicQuickstart, TopicSendPayment, TopicCreatePayee}},
	{TopicSendPayment, "/send-payment", "Sending Payments", []TopicID{TopicCreatePayee, TopicGetBalance, TopicErrorHandling}},
	{TopicCreatePayee, "/create-payee", "Creating Payees", []TopicID{TopicSearchPayees, TopicSendPayment}},
	{TopicSearchPayees, "/search-payees", "Searching Payees", []TopicID{TopicCreatePayee, TopicSendPayment}},
	{TopicGetBalance, "/get-balance", "Checking Balances", []TopicID{TopicSendPayment, TopicSpendLimits}},
	{TopicSpendLimits, "/spend-limits", "Spend Limits & Controls", []TopicID{TopicSendPayment, TopicAPIKeys}},
	{TopicWebhooks, "/webhooks", "Webhooks & Notifications", []TopicID{TopicAPIReference, TopicErrorHandling}},
	{TopicErrorHandling, "/error-handling", "Error Handling", []TopicID{TopicAPIReference, TopicQuickstart}},
	{TopicAPIReference, "/api-reference", "API Reference", []TopicID{TopicQuickstart, TopicErrorHandling}},
}

var registryIndex = buildRegistryIndex()

func buildRegistryIndex() map[TopicID]Topic {
	index := make(map[TopicID]Topic, len(registry))
	for _, topic := range registry {
		index[topic.ID] = topic
	}
	return index
}

// Topics returns all registered topics in scan order.
func Topics() []Topic {
	out := make([]Topic, len(registry))
	copy(out, registry)
	return out
}

// TopicByID looks up a topic by its identifier.
func TopicByID(id TopicID) (Topic, bool) {
	topic, ok := registryIndex[id]
	return topic, ok
}

// TopicIDs returns the identifiers of all registered topics in scan order.
func TopicIDs() []string {
	out := make([]string, len(registry))
	for i, topic := range registry {
		out[i] = string(topic.ID)
	}
	return out
}

// sdkUsageTopics are the pages that demonstrate SDK usage; get-sdk-help
// scans only these, in this order.
var sdkUsageTopics = []TopicID{
	TopicQuickstart,
	TopicNodeSDK,
	TopicPythonSDK,
	TopicSendPayment,
	TopicCreatePayee,
	TopicGetBalance,
}

// SDK selects one of the two supported client integration targets.
type SDK string

const (
	SDKNode   SDK = "nodejs"
	SDKPython SDK = "python"
)

// SDKs returns the supported SDK values.
func SDKs() []string {
	return []string{string(SDKNode), string(SDKPython)}
}

// DisplayName returns the human-readable SDK name.
func (s SDK) DisplayName() string {
	switch s {
	case SDKNode:
		return "Node.js"
	case SDKPython:
		return "Python"
	default:
		return string(s)
	}
}

// FenceTag returns the markdown fence tag used when rendering examples.
func (s SDK) FenceTag() string {
	if s == SDKPython {
		return "python"
	}
	return "javascript"
}

// codeFenceTags maps each SDK to the fence language tags it accepts.
var codeFenceTags = map[SDK][]string{
	SDKNode:   {"javascript", "typescript", "js", "nodejs", "node"},
	SDKPython: {"python", "py"},
}

// sdkIdentifierTokens are the substrings that mark a document as covering an
// SDK. Checked in order; the first token present wins.
var sdkIdentifierTokens = map[SDK][]string{
	SDKNode:   {"node", "nodejs", "javascript", "js"},
	SDKPython: {"python", "py"},
}

// problemCategory routes problem descriptions to documentation topics.
type problemCategory struct {
	Name     string
	Keywords []string
	Topics   []TopicID
}

var problemCategories = []problemCategory{
	{
		Name:     "Authentication",
		Keywords: []string{"auth", "unauthorized", "401", "403", "forbidden", "api key", "apikey", "token", "credential"},
		Topics:   []TopicID{TopicAPIKeys, TopicQuickstart},
	},
	{
		Name:     "Payments",
		Keywords: []string{"payment", "transfer", "transaction", "send money", "insufficient", "balance"},
		Topics:   []TopicID{TopicSendPayment, TopicGetBalance, TopicAPIReference},
	},
	{
		Name:     "Payees",
		Keywords: []string{"payee", "recipient", "beneficiary", "vendor", "contact"},
		Topics:   []TopicID{TopicCreatePayee, TopicSearchPayees},
	},
	{
		Name:     "Setup",
		Keywords: []string{"install", "setup", "set up", "getting started", "configure", "sdk", "import", "init"},
		Topics:   []TopicID{TopicQuickstart, TopicNodeSDK, TopicPythonSDK},
	},
	{
		Name:     "Error Handling",
		Keywords: []string{"error", "exception", "fail", "timeout", "retry", "debug", "crash"},
		Topics:   []TopicID{TopicErrorHandling, TopicAPIReference},
	},
}

// defaultProblemTopics are consulted when no category keyword matches.
var defaultProblemTopics = []TopicID{TopicErrorHandling, TopicAPIReference, TopicQuickstart}

// matchesQuery reports whether the topic id or title contains the lowercased
// needle.
func (t Topic) matchesQuery(lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(string(t.ID)), lowerNeedle) ||
		strings.Contains(strings.ToLower(t.Title), lowerNeedle)
}
