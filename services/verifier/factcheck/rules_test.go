// Copyright (C) 2025 TruthGuard (dev@truthguard.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package factcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truthguard-ai/TruthGuardLocal/services/verifier/datatypes"
)

func TestMatchRules_KnownClaims(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantScore   int
		wantVerdict datatypes.FactVerdict
	}{
		{
			name:        "karnataka in europe is incorrect",
			text:        "Karnataka is a country in Europe",
			wantScore:   5,
			wantVerdict: datatypes.FactuallyIncorrect,
		},
		{
			name:        "karnataka in india is correct",
			text:        "Karnataka is a state in India",
			wantScore:   95,
			wantVerdict: datatypes.FactuallyCorrect,
		},
		{
			name:        "karnataka in asia is correct",
			text:        "karnataka lies in asia",
			wantScore:   95,
			wantVerdict: datatypes.FactuallyCorrect,
		},
		{
			name:        "sun rises in the west is incorrect",
			text:        "The sun rises in the west every day",
			wantScore:   5,
			wantVerdict: datatypes.FactuallyIncorrect,
		},
		{
			name:        "sun rises in the east is correct",
			text:        "the Sun rises in the east",
			wantScore:   95,
			wantVerdict: datatypes.FactuallyCorrect,
		},
		{
			name:        "mixed case matches",
			text:        "KARNATAKA IS IN INDIA",
			wantScore:   95,
			wantVerdict: datatypes.FactuallyCorrect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, ok := MatchRules(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.wantScore, outcome.Score)
			assert.Equal(t, tt.wantVerdict, outcome.Verdict)
			assert.NotEmpty(t, outcome.Evidence)
		})
	}
}

func TestMatchRules_ContradictionWinsOverConfirmation(t *testing.T) {
	// Mentions europe, india and asia at once. The contradiction rule is
	// evaluated first and must win.
	outcome, ok := MatchRules("Karnataka is in Europe, not in India or Asia")

	require.True(t, ok)
	assert.Equal(t, 5, outcome.Score)
	assert.Equal(t, datatypes.FactuallyIncorrect, outcome.Verdict)
}

func TestMatchRules_NoMatch(t *testing.T) {
	tests := []string{
		"The Eiffel Tower is in Paris",
		"karnataka",
		"the sun sets in the west",
		"",
	}

	for _, text := range tests {
		_, ok := MatchRules(text)
		assert.False(t, ok, "expected no rule match for %q", text)
	}
}
