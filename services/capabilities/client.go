// Copyright (C) 2025 TruthGuard (dev@truthguard.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package capabilities defines the external ML and lookup capabilities the
// verification pipeline depends on, plus their production clients.
//
// Each capability is an explicit interface so orchestration logic can be
// tested with doubles. Production implementations are long-lived,
// stateless per call, and safe for concurrent use by in-flight requests.
// They are initialized once at process startup; an initialization failure
// is fatal and out of per-request scope.
package capabilities

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
)

// =============================================================================
// Capability Interfaces
// =============================================================================

// TextClassifier scores how likely a text is AI-generated.
//
// # Outputs
//
//   - float64: confidence in [0,1] for the AI-generated class
//   - error: non-nil if the classifier could not be invoked
//
// Thread Safety: implementations must be safe for concurrent use.
type TextClassifier interface {
	ClassifyText(ctx context.Context, text string) (float64, error)
}

// ImageClassifier scores how likely an image is AI-generated.
//
// Thread Safety: implementations must be safe for concurrent use.
type ImageClassifier interface {
	ClassifyImage(ctx context.Context, img image.Image) (float64, error)
}

// AudioClassifier scores how likely a mono waveform is AI-generated.
//
// Thread Safety: implementations must be safe for concurrent use.
type AudioClassifier interface {
	ClassifyAudio(ctx context.Context, samples []float64, sampleRate int) (float64, error)
}

// Transcriber converts a mono waveform into text.
//
// Callers are responsible for truncating the waveform before invocation;
// the transcriber processes every sample it is given.
//
// Thread Safety: implementations must be safe for concurrent use.
type Transcriber interface {
	Transcribe(ctx context.Context, samples []float64, sampleRate int) (string, error)
}

// OCRExtractor extracts readable text from image pixels.
//
// Thread Safety: implementations must be safe for concurrent use.
type OCRExtractor interface {
	ExtractText(ctx context.Context, img image.Image) (string, error)
}

// LookupKind tags the outcome of a knowledge-base lookup.
type LookupKind int

const (
	// LookupMatch means a direct page match with a usable summary.
	LookupMatch LookupKind = iota
	// LookupAmbiguous means the query resolved to a disambiguation page.
	LookupAmbiguous
	// LookupNotFound means no matching page exists.
	LookupNotFound
)

// LookupResult is the normalized outcome of a knowledge-base lookup.
// Summary is populated only for LookupMatch.
type LookupResult struct {
	Kind    LookupKind
	Summary string
}

// KnowledgeLookup resolves a claim against an encyclopedia.
//
// A non-nil error means the lookup itself failed (network, timeout,
// malformed response); the fact chain maps that to an Uncertain outcome.
//
// Thread Safety: implementations must be safe for concurrent use.
type KnowledgeLookup interface {
	Lookup(ctx context.Context, query string) (*LookupResult, error)
}

// =============================================================================
// Registry
// =============================================================================

// Registry gathers the loaded capabilities. Built once in main and shared
// read-only by every request.
type Registry struct {
	Text        TextClassifier
	Image       ImageClassifier
	Audio       AudioClassifier
	Transcriber Transcriber
	OCR         OCRExtractor
	Knowledge   KnowledgeLookup
}

// NewRegistryFromEnv wires the production capability clients.
//
// The inference sidecar serves every classifier plus OCR and
// transcription. The text-authorship classifier can be switched to an
// OpenAI-backed scorer with TEXT_CLASSIFIER_BACKEND=openai, mirroring how
// backends are selected elsewhere in the stack.
func NewRegistryFromEnv() (*Registry, error) {
	inference, err := NewInferenceClient()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize the inference client: %w", err)
	}

	var text TextClassifier = inference
	switch backend := os.Getenv("TEXT_CLASSIFIER_BACKEND"); backend {
	case "", "inference":
		slog.Info("Using inference sidecar text classifier backend")
	case "openai":
		text, err = NewOpenAITextClassifier()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize the OpenAI text classifier: %w", err)
		}
		slog.Info("Using OpenAI text classifier backend")
	default:
		slog.Warn("TEXT_CLASSIFIER_BACKEND not recognized, defaulting to inference sidecar",
			"backend", backend)
	}

	return &Registry{
		Text:        text,
		Image:       inference,
		Audio:       inference,
		Transcriber: inference,
		OCR:         inference,
		Knowledge:   NewWikipediaLookup(),
	}, nil
}
