// Copyright (C) 2025 TruthGuard (dev@truthguard.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package verdict converts classifier confidences into banded verdicts.
//
// The banding thresholds are shared by every modality; only the label
// wording differs. Boundaries are inclusive on the upper label: a
// percentage of exactly 80 is "Likely", exactly 50 is "Possibly".
package verdict

import "github.com/truthguard-ai/TruthGuardLocal/services/verifier/datatypes"

const (
	likelyThreshold   = 80
	possiblyThreshold = 50
)

// Labels is the per-modality wording for the three confidence bands.
type Labels struct {
	Likely   string
	Possibly string
	Unlikely string
}

var (
	// TextLabels bands text-authorship confidence.
	TextLabels = Labels{
		Likely:   "Likely AI-Generated",
		Possibly: "Possibly AI-Generated",
		Unlikely: "Likely Human-Written",
	}

	// ImageLabels bands image content-origin confidence.
	ImageLabels = Labels{
		Likely:   "Likely AI-Generated Image",
		Possibly: "Possibly AI-Generated Image",
		Unlikely: "Likely Real Image",
	}

	// AudioLabels bands audio-origin confidence.
	AudioLabels = Labels{
		Likely:   "Likely AI-Generated Audio",
		Possibly: "Possibly AI-Generated Audio",
		Unlikely: "Likely Human Voice",
	}

	// VideoLabels bands averaged per-frame confidence.
	VideoLabels = Labels{
		Likely:   "Likely AI-Generated Video",
		Possibly: "Possibly AI-Generated Video",
		Unlikely: "Likely Real Video",
	}
)

// Percentage converts a [0,1] confidence to an integer percentage,
// truncating toward zero. Values outside [0,1] are clamped first so a
// misbehaving classifier cannot produce an out-of-range score.
func Percentage(confidence float64) int {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return int(confidence * 100)
}

// Band returns the label for a percentage under this modality's wording.
func (l Labels) Band(percentage int) string {
	switch {
	case percentage >= likelyThreshold:
		return l.Likely
	case percentage >= possiblyThreshold:
		return l.Possibly
	default:
		return l.Unlikely
	}
}

// Outcome builds a ClassificationOutcome from a raw confidence.
func (l Labels) Outcome(confidence float64) datatypes.ClassificationOutcome {
	p := Percentage(confidence)
	return datatypes.ClassificationOutcome{
		Percentage: p,
		Verdict:    l.Band(p),
	}
}

// AveragePercentage averages per-frame confidences and truncates once.
// Per-frame values are never individually banded or voted; the single
// averaged percentage is what gets banded.
func AveragePercentage(confidences []float64) int {
	if len(confidences) == 0 {
		return 0
	}
	var sum float64
	for _, c := range confidences {
		sum += c * 100
	}
	return int(sum / float64(len(confidences)))
}

// AverageOutcome builds the aggregate ClassificationOutcome for a sampled
// frame sequence.
func (l Labels) AverageOutcome(confidences []float64) datatypes.ClassificationOutcome {
	p := AveragePercentage(confidences)
	return datatypes.ClassificationOutcome{
		Percentage: p,
		Verdict:    l.Band(p),
	}
}

// BuildTextAnalysis combines the authorship classification and the fact
// verification outcome into the text-verify report. Pure combination, no
// I/O.
func BuildTextAnalysis(classification datatypes.ClassificationOutcome,
	fact datatypes.FactOutcome) *datatypes.TextAnalysis {

	return &datatypes.TextAnalysis{
		AIGeneratedProbability: classification.Percentage,
		Authorship:             classification.Verdict,
		AccuracyScore:          fact.Score,
		AccuracyVerdict:        string(fact.Verdict),
		Evidence:               fact.Evidence,
	}
}
