package dedupe

import "testing"

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "openai", "openai", 1.0},
		{"both empty", "", "", 0.0},
		{"one empty", "openai", "", 0.0},
		{"disjoint", "abc", "xyz", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ratio(tt.a, tt.b); got != tt.want {
				t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}

	// Near-identical strings should score high but below 1.
	got := Ratio("anthropic", "anthropics")
	if got <= 0.9 || got >= 1 {
		t.Errorf("Ratio(anthropic, anthropics) = %v, want value in (0.9, 1)", got)
	}
}

func TestTokenSetSimilarity(t *testing.T) {
	if got := TokenSetSimilarity("acme robotics", "robotics acme"); got != 1.0 {
		t.Errorf("word order should not matter, got %v", got)
	}
	if got := TokenSetSimilarity("acme robotics", "acme labs"); got != 1.0/3.0 {
		t.Errorf("one shared of three tokens = %v, want 1/3", got)
	}
	if got := TokenSetSimilarity("", "acme"); got != 0.0 {
		t.Errorf("empty input = %v, want 0", got)
	}
}

func TestNameSimilarity(t *testing.T) {
	// Token-set view should rescue reordered names that the character ratio
	// scores poorly.
	reordered := NameSimilarity("acme robotics", "robotics acme")
	if reordered != 1.0 {
		t.Errorf("NameSimilarity on reordered tokens = %v, want 1.0", reordered)
	}

	// Character view should rescue small typos that break token equality.
	typo := NameSimilarity("anthropic", "anthropc")
	if typo < 0.85 {
		t.Errorf("NameSimilarity on small typo = %v, want >= 0.85", typo)
	}

	if got := NameSimilarity("openai", "mistral"); got >= NameSimilarityThreshold {
		t.Errorf("unrelated names should not clear the threshold, got %v", got)
	}
}
