package entities

import "testing"

func TestTierOverrides(t *testing.T) {
	tests := []struct {
		name     string
		incoming Tier
		existing Tier
		want     bool
	}{
		{"authoritative over open web", TierAuthoritative, TierOpenWeb, true},
		{"authoritative over inferred", TierAuthoritative, TierInferred, true},
		{"open web over inferred", TierOpenWeb, TierInferred, true},
		{"open web does not override authoritative", TierOpenWeb, TierAuthoritative, false},
		{"inferred does not override open web", TierInferred, TierOpenWeb, false},
		{"same tier never overrides", TierOpenWeb, TierOpenWeb, false},
		{"same authoritative tier never overrides", TierAuthoritative, TierAuthoritative, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.incoming.Overrides(tt.existing); got != tt.want {
				t.Errorf("Overrides(%v, %v) = %v, want %v", tt.incoming, tt.existing, got, tt.want)
			}
		})
	}
}

func TestTierWritesFields(t *testing.T) {
	for _, tier := range []Tier{TierAuthoritative, TierOpenWeb, TierInferred} {
		if !tier.WritesFields() {
			t.Errorf("Tier %v should write fields", tier)
		}
	}
	if TierDiscovery.WritesFields() {
		t.Error("Discovery tier must never write fields")
	}
}

func TestTierTrustScore(t *testing.T) {
	tests := []struct {
		tier Tier
		want float64
	}{
		{TierAuthoritative, 0.95},
		{TierOpenWeb, 0.75},
		{TierInferred, 0.50},
	}

	for _, tt := range tests {
		if got := tt.tier.TrustScore(); got != tt.want {
			t.Errorf("TrustScore(%v) = %v, want %v", tt.tier, got, tt.want)
		}
	}
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		input   string
		want    Tier
		wantErr bool
	}{
		{"authoritative", TierAuthoritative, false},
		{"open-web", TierOpenWeb, false},
		{"inferred", TierInferred, false},
		{"discovery", TierDiscovery, false},
		{"celestial", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseTier(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTier(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTier(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTier(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTierValid(t *testing.T) {
	if Tier(0).Valid() {
		t.Error("zero tier should be invalid")
	}
	if Tier(5).Valid() {
		t.Error("tier 5 should be invalid")
	}
	if !TierDiscovery.Valid() {
		t.Error("discovery tier should be valid")
	}
}
