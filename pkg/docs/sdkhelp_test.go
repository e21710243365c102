package docs

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func TestSDKHelpScoreOrdering(t *testing.T) {
	pages := blandPages()
	pages["/quickstart"] = "# Quickstart\n\nUse the node runtime.\nsendpayment is described here."
	pages["/nodejs-sdk"] = "# SDK Guide\n\nInstall the nodejs package.\n\n## Payments\nCall client.payments.sendPayment(payee) to move funds."
	pages["/send-payment"] = "# Sending\n\nFrom node, call sendPayment with a payee id."
	svc := newTestService(t, pages)

	out := svc.GetSDKHelp(context.Background(), SDKNode, "sendPayment")

	nodeIdx := strings.Index(out, "## Node.js SDK")
	sendIdx := strings.Index(out, "## Sending Payments")
	quickIdx := strings.Index(out, "## Quickstart")
	if nodeIdx < 0 || sendIdx < 0 || quickIdx < 0 {
		t.Fatalf("expected all three topics in results:\n%s", out)
	}
	if !(nodeIdx < sendIdx && sendIdx < quickIdx) {
		t.Fatalf("score order violated (node=%d send=%d quick=%d):\n%s", nodeIdx, sendIdx, quickIdx, out)
	}
}

func TestSDKHelpProximityExcludes(t *testing.T) {
	pages := blandPages()
	pages["/python-sdk"] = "python\n" + strings.Repeat("x", 600) + "\ngetBalance lives far from the token."
	svc := newTestService(t, pages)

	out := svc.GetSDKHelp(context.Background(), SDKPython, "getBalance")
	if !strings.Contains(out, "No Python guidance found") {
		t.Fatalf("distant token and feature should be excluded:\n%s", out)
	}
}

func TestSDKHelpTokenRequired(t *testing.T) {
	pages := blandPages()
	pages["/get-balance"] = "# Checking Balances\n\ngetBalance returns available funds."
	svc := newTestService(t, pages)

	out := svc.GetSDKHelp(context.Background(), SDKPython, "getBalance")
	if !strings.Contains(out, "No Python guidance found") {
		t.Fatalf("document without an sdk token should be excluded:\n%s", out)
	}
}

func TestSDKHelpExcerptBounds(t *testing.T) {
	lines := []string{
		"# Page",
		"intro",
		"## Balances",
		"python client below",
		"getSpendableBalance usage",
	}
	for i := 1; i <= 30; i++ {
		lines = append(lines, fmt.Sprintf("after-%02d", i))
	}
	pages := blandPages()
	pages["/python-sdk"] = strings.Join(lines, "\n")
	svc := newTestService(t, pages)

	out := svc.GetSDKHelp(context.Background(), SDKPython, "getSpendableBalance")
	if !strings.Contains(out, "## Balances") {
		t.Fatalf("excerpt should start at the nearest heading:\n%s", out)
	}
	if strings.Contains(out, "intro") {
		t.Fatalf("lines above the heading should be cut:\n%s", out)
	}
	if !strings.Contains(out, "after-20") {
		t.Fatalf("excerpt should reach 20 lines past the feature line:\n%s", out)
	}
	if strings.Contains(out, "after-21") {
		t.Fatalf("excerpt should stop 20 lines past the feature line:\n%s", out)
	}
}

func TestSDKHelpTieKeepsScanOrder(t *testing.T) {
	pages := blandPages()
	pages["/python-sdk"] = "# Python SDK\n\nUse python.\ncreatePayee adds a payee."
	pages["/create-payee"] = "# Creating Payees\n\nWith python, createPayee adds one."
	svc := newTestService(t, pages)

	out := svc.GetSDKHelp(context.Background(), SDKPython, "createPayee")
	pyIdx := strings.Index(out, "## Python SDK")
	payeeIdx := strings.Index(out, "## Creating Payees")
	if pyIdx < 0 || payeeIdx < 0 {
		t.Fatalf("expected both topics:\n%s", out)
	}
	if pyIdx > payeeIdx {
		t.Fatalf("ties must keep scan order (py=%d payee=%d):\n%s", pyIdx, payeeIdx, out)
	}
}

func TestSDKHelpFooter(t *testing.T) {
	pages := blandPages()
	pages["/quickstart"] = "# Quickstart\n\nnode setup: call init() first."
	svc := newTestService(t, pages)

	hit := svc.GetSDKHelp(context.Background(), SDKNode, "init()")
	miss := svc.GetSDKHelp(context.Background(), SDKNode, "no-such-feature")
	for _, out := range []string{hit, miss} {
		if !strings.Contains(out, "## Additional Resources") {
			t.Errorf("footer missing:\n%s", out)
		}
		if !strings.Contains(out, `get-documentation with topic "api-reference"`) {
			t.Errorf("api-reference pointer missing:\n%s", out)
		}
	}
}

func TestSDKExcerpt(t *testing.T) {
	tests := []struct {
		name    string
		content string
		feature string
		want    string
		ok      bool
	}{
		{
			name:    "clamps at end of document",
			content: "# H\nfeat here",
			feature: "feat",
			want:    "# H\nfeat here",
			ok:      true,
		},
		{
			name:    "feature line is itself a heading",
			content: "# Other\ntext\n## getBalance\nbody",
			feature: "getbalance",
			want:    "## getBalance\nbody",
			ok:      true,
		},
		{
			name:    "no heading above",
			content: "plain intro\nfeat on second line\ntail",
			feature: "feat",
			want:    "plain intro\nfeat on second line\ntail",
			ok:      true,
		},
		{
			name:    "absent feature",
			content: "nothing relevant",
			feature: "zzz",
			ok:      false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := sdkExcerpt(tc.content, tc.feature)
			if ok != tc.ok {
				t.Fatalf("ok: got %v, want %v", ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Fatalf("excerpt:\ngot  %q\nwant %q", got, tc.want)
			}
		})
	}
}
