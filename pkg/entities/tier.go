package entities

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// Tier is the ordinal trust level of a data source. Lower numbers are more
// trusted: a field written at tier N may only be overwritten by a record at a
// tier numerically below N.
type Tier int

// The four source tiers, highest precedence first.
const (
	// TierAuthoritative covers structured knowledge bases and other
	// authoritative APIs.
	TierAuthoritative Tier = iota + 1
	// TierOpenWeb covers open-web directories and source-specific listings.
	TierOpenWeb
	// TierInferred covers machine-generated contributions. Inferred values
	// only ever fill empty fields.
	TierInferred
	// TierDiscovery covers discovery-only signals. Discovery records never
	// contribute field values, only identity hints.
	TierDiscovery
)

// tierNames maps tiers to their wire representation.
var tierNames = map[Tier]string{
	TierAuthoritative: "authoritative",
	TierOpenWeb:       "open-web",
	TierInferred:      "inferred",
	TierDiscovery:     "discovery",
}

// tierScores maps tiers to their default confidence scores. Discovery
// records carry no score because they never write fields.
var tierScores = map[Tier]float64{
	TierAuthoritative: 0.95,
	TierOpenWeb:       0.75,
	TierInferred:      0.50,
}

// Valid reports whether t is one of the four defined tiers.
func (t Tier) Valid() bool {
	_, ok := tierNames[t]
	return ok
}

// String returns the wire name of the tier.
func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// TrustScore returns the default confidence attached to values written by
// this tier. Discovery tier returns 0 — it never writes values.
func (t Tier) TrustScore() float64 {
	return tierScores[t]
}

// Overrides reports whether a record at tier t may overwrite a field whose
// current provenance is at tier existing. Equal tiers do not override:
// the first writer at a tier wins.
func (t Tier) Overrides(existing Tier) bool {
	return t < existing
}

// WritesFields reports whether records at this tier contribute field values
// at all. Discovery records only produce identity hints.
func (t Tier) WritesFields() bool {
	return t != TierDiscovery
}

// ParseTier converts a wire name back into a Tier.
func ParseTier(s string) (Tier, error) {
	for tier, name := range tierNames {
		if name == s {
			return tier, nil
		}
	}
	return 0, fmt.Errorf("unknown tier %q", s)
}

// MarshalYAML implements yaml.Marshaler.
func (t Tier) MarshalYAML() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid tier %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Tier) UnmarshalYAML(data []byte) error {
	var s string
	if err := yaml.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTier(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
