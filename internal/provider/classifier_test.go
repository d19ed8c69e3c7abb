package provider

import "testing"

func TestClassifyAutomotive(t *testing.T) {
	inputs := []string{
		"Is this about Tesla or electric vehicles?",
		"A home charging station for apartment dwellers",
		"Affordable electric vehicle for city commutes",
	}
	for _, in := range inputs {
		if got := Classify(in); got != TopicAutomotive {
			t.Fatalf("Classify(%q) = %s, want automotive", in, got)
		}
	}
}

func TestClassifyURL(t *testing.T) {
	if got := Classify("Check out https://example.com/product"); got != TopicURL {
		t.Fatalf("expected url topic, got %s", got)
	}
	if got := Classify("see www.example.com for details"); got != TopicURL {
		t.Fatalf("expected url topic, got %s", got)
	}
}

func TestClassifyGeneric(t *testing.T) {
	if got := Classify("A faster onboarding tool for startup founders"); got != TopicGeneric {
		t.Fatalf("expected generic topic, got %s", got)
	}
}
