package llm

import (
	"context"
	"strings"
	"testing"
)

// MockDescriber implements Describer for testing
type MockDescriber struct {
	name      string
	available bool
	desc      *Description
	err       error
	calls     int
}

func (m *MockDescriber) Name() string {
	return m.name
}

func (m *MockDescriber) IsAvailable(ctx context.Context) bool {
	return m.available
}

func (m *MockDescriber) Describe(ctx context.Context, req Request) (*Description, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.desc, nil
}

type mockError struct {
	msg string
}

func (e *mockError) Error() string {
	return e.msg
}

func TestChain_FirstSuccessWins(t *testing.T) {
	first := &MockDescriber{
		name:      "first",
		available: true,
		desc:      &Description{Label: "Invoice", Sentences: []string{"A billing document."}},
	}
	second := &MockDescriber{name: "second", available: true}

	chain := NewChain(first, second)
	desc, who, err := chain.Describe(context.Background(), Request{Filename: "a.txt"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if who != "first" {
		t.Errorf("Expected first describer to answer, got %q", who)
	}
	if desc.Label != "Invoice" {
		t.Errorf("Expected Invoice, got %q", desc.Label)
	}
	if second.calls != 0 {
		t.Errorf("Expected second describer untouched, got %d calls", second.calls)
	}
}

func TestChain_SkipsUnavailable(t *testing.T) {
	offline := &MockDescriber{name: "offline", available: false}
	online := &MockDescriber{
		name:      "online",
		available: true,
		desc:      &Description{Label: "Report", Sentences: []string{"Numbers went up."}},
	}

	chain := NewChain(offline, online)
	_, who, err := chain.Describe(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if who != "online" {
		t.Errorf("Expected online describer, got %q", who)
	}
	if offline.calls != 0 {
		t.Errorf("Expected unavailable describer never called, got %d calls", offline.calls)
	}
}

func TestChain_FallsThroughOnError(t *testing.T) {
	flaky := &MockDescriber{name: "flaky", available: true, err: &mockError{msg: "rate limited"}}
	steady := &MockDescriber{
		name:      "steady",
		available: true,
		desc:      &Description{Label: "Notes", Sentences: []string{"Some noted things."}},
	}

	chain := NewChain(flaky, steady)
	desc, who, err := chain.Describe(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Expected fallthrough, got %v", err)
	}
	if who != "steady" || desc.Label != "Notes" {
		t.Errorf("Expected steady describer's answer, got %q from %q", desc.Label, who)
	}
}

func TestChain_AllFail(t *testing.T) {
	chain := NewChain(
		&MockDescriber{name: "a", available: true, err: &mockError{msg: "boom"}},
		&MockDescriber{name: "b", available: false},
	)

	_, _, err := chain.Describe(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected an error when every describer fails")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected the last error wrapped, got %v", err)
	}
}

func TestChain_HeuristicTerminates(t *testing.T) {
	// A failing remote tier plus the heuristic terminator must always
	// produce an answer.
	chain := NewChain(
		&MockDescriber{name: "remote", available: true, err: &mockError{msg: "offline"}},
		NewHeuristicDescriber(),
	)

	desc, who, err := chain.Describe(context.Background(), Request{
		Filename:     "invoice_2024_001.txt",
		Ext:          ".txt",
		Content:      "",
		MaxSentences: 3,
	})
	if err != nil {
		t.Fatalf("Expected the heuristic to answer, got %v", err)
	}
	if who != "heuristic" {
		t.Errorf("Expected heuristic, got %q", who)
	}
	if desc.Label != "Invoice" {
		t.Errorf("Expected Invoice from the filename, got %q", desc.Label)
	}
	if len(desc.Sentences) == 0 {
		t.Error("Expected a non-empty summary")
	}
}

func TestParseDescription(t *testing.T) {
	desc, err := parseDescription(`{"label": "Invoice", "sentences": ["s one", "s two"]}`, 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if desc.Label != "Invoice" || len(desc.Sentences) != 2 {
		t.Errorf("unexpected result: %+v", desc)
	}
}

func TestParseDescription_ToleratesFences(t *testing.T) {
	raw := "```json\n{\"label\": \"Report\", \"sentences\": [\"only one\"]}\n```"
	desc, err := parseDescription(raw, 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if desc.Label != "Report" {
		t.Errorf("Expected Report, got %q", desc.Label)
	}
}

func TestParseDescription_CapsSentences(t *testing.T) {
	raw := `{"label": "Notes", "sentences": ["a", "b", "c", "d", "e"]}`
	desc, err := parseDescription(raw, 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(desc.Sentences) != 2 {
		t.Errorf("expected 2 sentences, got %d", len(desc.Sentences))
	}
}

func TestParseDescription_Rejects(t *testing.T) {
	cases := []string{
		"not json at all",
		`{"label": "", "sentences": ["x"]}`,
		`{"label": "Invoice", "sentences": []}`,
		`{"label": "Invoice", "sentences": ["  ", ""]}`,
	}
	for _, raw := range cases {
		if _, err := parseDescription(raw, 3); err == nil {
			t.Errorf("%q: expected an error", raw)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(Request{
		Filename:     "q3_report.txt",
		Ext:          ".txt",
		Content:      "Revenue grew in Q3.",
		MaxSentences: 3,
	})

	for _, required := range []string{"q3_report.txt", "Revenue grew in Q3.", "JSON", "label", "sentences"} {
		if !strings.Contains(prompt, required) {
			t.Errorf("Expected prompt to contain %q", required)
		}
	}
}

func TestBuildPrompt_EmptyContent(t *testing.T) {
	prompt := BuildPrompt(Request{Filename: "x.png"})
	if !strings.Contains(prompt, "no text could be extracted") {
		t.Error("Expected the empty-content placeholder")
	}
}

func TestNewDescriber(t *testing.T) {
	d, err := NewDescriber(Config{})
	if err != nil {
		t.Fatalf("Expected no error for empty provider, got %v", err)
	}
	if d != nil {
		t.Error("Expected nil describer when no provider configured")
	}

	if _, err := NewDescriber(Config{Provider: "carrier-pigeon"}); err == nil {
		t.Error("Expected an error for an unknown provider")
	}

	if _, err := NewDescriber(Config{Provider: "openai"}); err == nil {
		t.Error("Expected an error without an API key")
	}

	d, err = NewDescriber(Config{Provider: "openai", APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if d == nil || d.Name() != "openai" {
		t.Error("Expected an OpenAI describer")
	}
}
