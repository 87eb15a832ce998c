// Copyright (C) 2025 TruthGuard (dev@truthguard.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package factcheck verifies textual claims through an ordered fallback:
// a deterministic rule matcher first, then an encyclopedia lookup. Every
// path resolves to a FactOutcome; the chain never surfaces a failure.
package factcheck

import (
	"strings"

	"github.com/truthguard-ai/TruthGuardLocal/services/verifier/datatypes"
)

// rule is one case-insensitive substring predicate. The text matches when
// it contains every term in all and, if any is non-empty, at least one
// term in any.
type rule struct {
	all     []string
	any     []string
	outcome datatypes.FactOutcome
}

// relationRules are evaluated in priority order; the first match
// short-circuits the chain. Contradiction rules come before confirmation
// rules for the same subject.
var relationRules = []rule{
	{
		all: []string{"karnataka", "europe"},
		outcome: datatypes.FactOutcome{
			Score:    5,
			Verdict:  datatypes.FactuallyIncorrect,
			Evidence: "Karnataka is a state in India (Asia), not Europe.",
		},
	},
	{
		all: []string{"karnataka"},
		any: []string{"india", "asia"},
		outcome: datatypes.FactOutcome{
			Score:    95,
			Verdict:  datatypes.FactuallyCorrect,
			Evidence: "Karnataka is a state located in India, which is part of Asia.",
		},
	},
	{
		all: []string{"sun rises in the west"},
		outcome: datatypes.FactOutcome{
			Score:    5,
			Verdict:  datatypes.FactuallyIncorrect,
			Evidence: "The Sun rises in the east due to Earth's rotation.",
		},
	},
	{
		all: []string{"sun rises in the east"},
		outcome: datatypes.FactOutcome{
			Score:    95,
			Verdict:  datatypes.FactuallyCorrect,
			Evidence: "The Sun appears to rise in the east due to Earth's rotation.",
		},
	},
}

func (r rule) matches(lowered string) bool {
	for _, term := range r.all {
		if !strings.Contains(lowered, term) {
			return false
		}
	}
	if len(r.any) == 0 {
		return true
	}
	for _, term := range r.any {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

// MatchRules evaluates the deterministic rules against text. The second
// return is false when no rule matched and the chain should fall through
// to the knowledge-base lookup.
func MatchRules(text string) (datatypes.FactOutcome, bool) {
	lowered := strings.ToLower(text)
	for _, r := range relationRules {
		if r.matches(lowered) {
			return r.outcome, true
		}
	}
	return datatypes.FactOutcome{}, false
}
