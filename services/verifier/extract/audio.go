// Copyright (C) 2025 TruthGuard (dev@truthguard.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-audio/wav"

	"github.com/truthguard-ai/TruthGuardLocal/services/capabilities"
	"github.com/truthguard-ai/TruthGuardLocal/services/verifier/datatypes"
)

// MaxTranscribeSeconds caps the waveform handed to the transcriber.
// Samples past sample_rate*30 are discarded, never processed, which
// bounds transcription latency on arbitrarily long uploads.
const MaxTranscribeSeconds = 30

// DecodeWaveform decodes WAV bytes into a mono [-1,1] waveform and its
// sample rate. Multi-channel audio is downmixed by per-sample arithmetic
// mean across channels.
func DecodeWaveform(data []byte) ([]float64, int, error) {
	decoder := wav.NewDecoder(bytes.NewReader(data))
	if !decoder.IsValidFile() {
		return nil, 0, &datatypes.DecodeError{
			Modality: datatypes.ModalityAudio,
			Err:      fmt.Errorf("not a valid WAV stream"),
		}
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, &datatypes.DecodeError{Modality: datatypes.ModalityAudio, Err: err}
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		channels = 1
	}
	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))

	frames := len(buf.Data) / channels
	mono := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for ch := 0; ch < channels; ch++ {
			sum += float64(buf.Data[i*channels+ch])
		}
		mono[i] = sum / float64(channels) / scale
	}

	return mono, buf.Format.SampleRate, nil
}

// TruncateForTranscription returns at most sampleRate*MaxTranscribeSeconds
// samples.
func TruncateForTranscription(samples []float64, sampleRate int) []float64 {
	max := sampleRate * MaxTranscribeSeconds
	if max > 0 && len(samples) > max {
		return samples[:max]
	}
	return samples
}

// AudioExtractor transcribes an uploaded waveform.
type AudioExtractor struct {
	transcriber capabilities.Transcriber
}

// NewAudioExtractor builds the audio extractor. Panics on a nil
// transcriber.
func NewAudioExtractor(transcriber capabilities.Transcriber) *AudioExtractor {
	if transcriber == nil {
		panic("extract.NewAudioExtractor: transcriber must not be nil")
	}
	return &AudioExtractor{transcriber: transcriber}
}

// ExtractText decodes, downmixes, truncates and transcribes the upload.
// Yields EmptyContentError when no speech was detected.
func (e *AudioExtractor) ExtractText(ctx context.Context, data []byte) (string, error) {
	samples, sampleRate, err := DecodeWaveform(data)
	if err != nil {
		return "", err
	}
	return e.TranscribeWaveform(ctx, samples, sampleRate)
}

// TranscribeWaveform runs the truncated transcription over an already
// decoded mono waveform. Shared with the video extractor, which obtains
// its waveform from the transcoded audio track.
func (e *AudioExtractor) TranscribeWaveform(ctx context.Context, samples []float64,
	sampleRate int) (string, error) {

	truncated := TruncateForTranscription(samples, sampleRate)
	transcript, err := e.transcriber.Transcribe(ctx, truncated, sampleRate)
	if err != nil {
		return "", err
	}
	trimmed := strings.TrimSpace(transcript)
	if trimmed == "" {
		return "", datatypes.NewEmptyContentError(msgNoSpeech)
	}
	return trimmed, nil
}
