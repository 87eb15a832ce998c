// Copyright (C) 2025 TruthGuard (dev@truthguard.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package datatypes provides data structures for the verifier service.
//
// This file contains the tagged result variants flowing through the
// verification pipeline and the wire types for each endpoint. Field names
// and JSON keys are part of the public API contract; changing them breaks
// the frontend.
package datatypes

// =============================================================================
// Modality
// =============================================================================

// Modality is the content type of a verification request.
type Modality string

const (
	ModalityText  Modality = "text"
	ModalityImage Modality = "image"
	ModalityAudio Modality = "audio"
	ModalityVideo Modality = "video"
)

// =============================================================================
// Pipeline Intermediates
// =============================================================================

// ClassificationOutcome is the banded result of one classifier invocation.
// Percentage is truncated toward zero from a [0,1] confidence.
type ClassificationOutcome struct {
	Percentage int
	Verdict    string
}

// FactVerdict is the fixed vocabulary of fact-check verdicts.
type FactVerdict string

const (
	FactuallyCorrect    FactVerdict = "Factually Correct"
	FactuallyIncorrect  FactVerdict = "Factually Incorrect"
	PartiallyVerifiable FactVerdict = "Partially Verifiable"
	NoReliableSource    FactVerdict = "No Reliable Source Found"
	Uncertain           FactVerdict = "Uncertain"
)

// FactOutcome is the normalized result of the fact verification chain.
// Evidence is never empty: every branch of the chain supplies one.
type FactOutcome struct {
	Score    int
	Verdict  FactVerdict
	Evidence string
}

// =============================================================================
// Wire Types
// =============================================================================

// VerifyTextRequest is the JSON body of POST /verify.
type VerifyTextRequest struct {
	Text string `json:"text"`
}

// TextAnalysis is the body of a successful POST /verify, and the nested
// "analysis" object of the compound verify-*-text endpoints.
type TextAnalysis struct {
	AIGeneratedProbability int    `json:"ai_generated_probability"`
	Authorship             string `json:"authorship"`
	AccuracyScore          int    `json:"accuracy_score"`
	AccuracyVerdict        string `json:"accuracy_verdict"`
	Evidence               string `json:"evidence"`
}

// ImageCheck is the body of a successful POST /verify-image.
type ImageCheck struct {
	ContentOriginScore int    `json:"content_origin_score"`
	Verdict            string `json:"verdict"`
	Insights           string `json:"insights"`
}

// ImageText is the body of a successful POST /extract-text.
type ImageText struct {
	ExtractedText string `json:"extracted_text"`
}

// ExtractedAnalysis is the body of the OCR+verify endpoints
// (POST /verify-image-text and POST /verify-video-text).
type ExtractedAnalysis struct {
	ExtractedText string       `json:"extracted_text"`
	Analysis      TextAnalysis `json:"analysis"`
}

// AudioCheck is the body of a successful POST /verify-audio.
type AudioCheck struct {
	AudioAIProbability int    `json:"audio_ai_probability"`
	Verdict            string `json:"verdict"`
}

// TranscriptAnalysis is the body of a successful POST /verify-audio-text.
type TranscriptAnalysis struct {
	TranscribedText string       `json:"transcribed_text"`
	Analysis        TextAnalysis `json:"analysis"`
}

// VideoCheck is the body of a successful POST /verify-video.
type VideoCheck struct {
	VideoAIProbability int    `json:"video_ai_probability"`
	Verdict            string `json:"verdict"`
}
