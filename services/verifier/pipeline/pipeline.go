// Copyright (C) 2025 TruthGuard (dev@truthguard.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package pipeline drives one verification request end to end:
// decode → extract → classify and/or fact-verify → aggregate.
//
// Each request is single-pass; no stage re-enters a prior one and there
// are no retries. The pipeline is the sole boundary that decides whether
// a failure terminates the request: extraction and classifier failures
// return typed errors for the handler to render as the error envelope,
// while fact-chain failures are absorbed into an Uncertain outcome and
// never terminate anything.
package pipeline

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/truthguard-ai/TruthGuardLocal/services/capabilities"
	"github.com/truthguard-ai/TruthGuardLocal/services/verifier/datatypes"
	"github.com/truthguard-ai/TruthGuardLocal/services/verifier/extract"
	"github.com/truthguard-ai/TruthGuardLocal/services/verifier/factcheck"
	"github.com/truthguard-ai/TruthGuardLocal/services/verifier/verdict"
)

// imageInsights is the fixed insight string for image content-origin
// reports.
const imageInsights = "Decision based on visual artifacts and texture patterns"

// Service holds the long-lived pipeline dependencies. Safe for
// concurrent use: the capabilities are stateless per call and the
// extractors keep no per-request state.
type Service struct {
	caps   *capabilities.Registry
	chain  *factcheck.Chain
	images *extract.ImageExtractor
	audio  *extract.AudioExtractor
	video  *extract.VideoExtractor
}

// New wires the pipeline over a loaded capability registry. Panics on a
// nil registry (fail-fast for programming errors).
func New(caps *capabilities.Registry) *Service {
	if caps == nil {
		panic("pipeline.New: caps must not be nil")
	}
	return &Service{
		caps:   caps,
		chain:  factcheck.NewChain(caps.Knowledge),
		images: extract.NewImageExtractor(caps.OCR),
		audio:  extract.NewAudioExtractor(caps.Transcriber),
		video:  extract.NewVideoExtractor(caps.OCR, caps.Transcriber),
	}
}

// VerifyText runs the full text check: authorship classification and the
// fact verification chain, invoked in parallel over the canonical text.
func (s *Service) VerifyText(ctx context.Context, raw string) (*datatypes.TextAnalysis, error) {
	text, err := extract.Text(raw)
	if err != nil {
		return nil, err
	}

	var classification datatypes.ClassificationOutcome
	var fact datatypes.FactOutcome

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		confidence, err := s.caps.Text.ClassifyText(gctx, text)
		if err != nil {
			return err
		}
		classification = verdict.TextLabels.Outcome(confidence)
		return nil
	})
	g.Go(func() error {
		// The chain absorbs its own failures; this branch cannot fail.
		fact = s.chain.Verify(gctx, text)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return verdict.BuildTextAnalysis(classification, fact), nil
}

// VerifyImage runs the image content-origin check.
func (s *Service) VerifyImage(ctx context.Context, data []byte) (*datatypes.ImageCheck, error) {
	img, err := extract.DecodeImage(data)
	if err != nil {
		return nil, err
	}
	confidence, err := s.caps.Image.ClassifyImage(ctx, img)
	if err != nil {
		return nil, err
	}
	outcome := verdict.ImageLabels.Outcome(confidence)
	return &datatypes.ImageCheck{
		ContentOriginScore: outcome.Percentage,
		Verdict:            outcome.Verdict,
		Insights:           imageInsights,
	}, nil
}

// ExtractImageText runs OCR only. An image without readable text is a
// valid outcome here: the caller gets an empty string, not an error.
func (s *Service) ExtractImageText(ctx context.Context, data []byte) (*datatypes.ImageText, error) {
	img, err := extract.DecodeImage(data)
	if err != nil {
		return nil, err
	}
	text, err := s.caps.OCR.ExtractText(ctx, img)
	if err != nil {
		return nil, err
	}
	return &datatypes.ImageText{ExtractedText: strings.TrimSpace(text)}, nil
}

// VerifyImageText runs OCR and then the full text check over the
// extracted text. Empty OCR output terminates with EmptyContentError.
func (s *Service) VerifyImageText(ctx context.Context, data []byte) (*datatypes.ExtractedAnalysis, error) {
	text, err := s.images.ExtractText(ctx, data)
	if err != nil {
		return nil, err
	}
	analysis, err := s.VerifyText(ctx, text)
	if err != nil {
		return nil, err
	}
	return &datatypes.ExtractedAnalysis{
		ExtractedText: text,
		Analysis:      *analysis,
	}, nil
}

// VerifyAudio runs the audio-origin check over the downmixed waveform.
func (s *Service) VerifyAudio(ctx context.Context, data []byte) (*datatypes.AudioCheck, error) {
	samples, sampleRate, err := extract.DecodeWaveform(data)
	if err != nil {
		return nil, err
	}
	confidence, err := s.caps.Audio.ClassifyAudio(ctx, samples, sampleRate)
	if err != nil {
		return nil, err
	}
	outcome := verdict.AudioLabels.Outcome(confidence)
	return &datatypes.AudioCheck{
		AudioAIProbability: outcome.Percentage,
		Verdict:            outcome.Verdict,
	}, nil
}

// VerifyAudioText transcribes the upload and runs the full text check
// over the transcript.
func (s *Service) VerifyAudioText(ctx context.Context, data []byte) (*datatypes.TranscriptAnalysis, error) {
	transcript, err := s.audio.ExtractText(ctx, data)
	if err != nil {
		return nil, err
	}
	analysis, err := s.VerifyText(ctx, transcript)
	if err != nil {
		return nil, err
	}
	return &datatypes.TranscriptAnalysis{
		TranscribedText: transcript,
		Analysis:        *analysis,
	}, nil
}

// VerifyVideo runs the video content-origin check: classify the sampled
// frames and band the single averaged percentage. Per-frame results are
// never individually banded or voted.
func (s *Service) VerifyVideo(ctx context.Context, data []byte) (*datatypes.VideoCheck, error) {
	frames, err := s.video.ClassificationSamples(ctx, data)
	if err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, datatypes.NewEmptyContentError("No frames extracted")
	}

	confidences := make([]float64, 0, len(frames))
	for _, frame := range frames {
		confidence, err := s.caps.Image.ClassifyImage(ctx, frame)
		if err != nil {
			return nil, err
		}
		confidences = append(confidences, confidence)
	}

	outcome := verdict.VideoLabels.AverageOutcome(confidences)
	return &datatypes.VideoCheck{
		VideoAIProbability: outcome.Percentage,
		Verdict:            outcome.Verdict,
	}, nil
}

// VerifyVideoText extracts the merged frame-OCR + transcript text and
// runs the full text check over it.
func (s *Service) VerifyVideoText(ctx context.Context, data []byte) (*datatypes.ExtractedAnalysis, error) {
	text, err := s.video.ExtractText(ctx, data)
	if err != nil {
		return nil, err
	}
	analysis, err := s.VerifyText(ctx, text)
	if err != nil {
		return nil, err
	}
	return &datatypes.ExtractedAnalysis{
		ExtractedText: text,
		Analysis:      *analysis,
	}, nil
}
