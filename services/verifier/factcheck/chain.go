// Copyright (C) 2025 TruthGuard (dev@truthguard.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package factcheck

import (
	"context"
	"log/slog"

	"github.com/truthguard-ai/TruthGuardLocal/services/capabilities"
	"github.com/truthguard-ai/TruthGuardLocal/services/verifier/datatypes"
)

// Fixed evidence strings for the lookup-stage outcomes.
const (
	evidenceAmbiguous = "Multiple interpretations found."
	evidenceNotFound  = "No matching encyclopedic source available."
	evidenceUncertain = "Unable to verify the content."
)

// Chain is the two-stage fact verification fallback.
type Chain struct {
	lookup capabilities.KnowledgeLookup
}

// NewChain builds the chain over a knowledge lookup. Panics on a nil
// lookup; the registry always supplies one.
func NewChain(lookup capabilities.KnowledgeLookup) *Chain {
	if lookup == nil {
		panic("factcheck.NewChain: lookup must not be nil")
	}
	return &Chain{lookup: lookup}
}

// Verify resolves text to a FactOutcome. It never fails: rule matches
// short-circuit, and every lookup outcome, including lookup errors, is
// normalized to a scored verdict with non-empty evidence.
func (c *Chain) Verify(ctx context.Context, text string) datatypes.FactOutcome {
	if outcome, ok := MatchRules(text); ok {
		return outcome
	}

	result, err := c.lookup.Lookup(ctx, text)
	if err != nil {
		slog.Warn("Knowledge lookup failed, resolving to an uncertain outcome", "error", err)
		return datatypes.FactOutcome{
			Score:    40,
			Verdict:  datatypes.Uncertain,
			Evidence: evidenceUncertain,
		}
	}

	switch result.Kind {
	case capabilities.LookupMatch:
		return datatypes.FactOutcome{
			Score:    85,
			Verdict:  datatypes.FactuallyCorrect,
			Evidence: result.Summary,
		}
	case capabilities.LookupAmbiguous:
		return datatypes.FactOutcome{
			Score:    60,
			Verdict:  datatypes.PartiallyVerifiable,
			Evidence: evidenceAmbiguous,
		}
	case capabilities.LookupNotFound:
		return datatypes.FactOutcome{
			Score:    30,
			Verdict:  datatypes.NoReliableSource,
			Evidence: evidenceNotFound,
		}
	default:
		slog.Warn("Knowledge lookup returned an unknown result kind", "kind", result.Kind)
		return datatypes.FactOutcome{
			Score:    40,
			Verdict:  datatypes.Uncertain,
			Evidence: evidenceUncertain,
		}
	}
}
