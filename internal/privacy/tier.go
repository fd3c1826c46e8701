// Package privacy grades outbound text. Tier prompt builders project
// events or aggregates into tier-appropriate text, and the leak validator
// is the last gate before anything leaves the process boundary.
package privacy

import "fmt"

// Tier is the closed set of output strictness levels, ordered by Rank.
type Tier string

const (
	TierStandard     Tier = "standard"
	TierRAG          Tier = "rag"
	TierClassified   Tier = "classified"
	TierDeidentified Tier = "deidentified"
)

// Tiers lists every tier, least strict first.
var Tiers = []Tier{TierStandard, TierRAG, TierClassified, TierDeidentified}

// Rank orders tiers by strictness. Higher means stricter rules.
func (t Tier) Rank() int {
	switch t {
	case TierStandard:
		return 0
	case TierRAG:
		return 1
	case TierClassified:
		return 2
	case TierDeidentified:
		return 3
	}
	return -1
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool { return t.Rank() >= 0 }

// ParseTier validates a tier name from config or flags.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown privacy tier %q (use standard, rag, classified, or deidentified)", s)
	}
	return t, nil
}
