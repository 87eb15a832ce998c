// Copyright (C) 2025 TruthGuard (dev@truthguard.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truthguard-ai/TruthGuardLocal/services/verifier/datatypes"
)

// mockTranscriber records the waveform it receives.
type mockTranscriber struct {
	text       string
	err        error
	gotSamples []float64
	gotRate    int
}

func (m *mockTranscriber) Transcribe(_ context.Context, samples []float64,
	sampleRate int) (string, error) {

	m.gotSamples = samples
	m.gotRate = sampleRate
	return m.text, m.err
}

// wavBytes writes a PCM WAV file and returns its bytes.
func wavBytes(t *testing.T, sampleRate, channels int, data []int) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return raw
}

func TestDecodeWaveform_Mono(t *testing.T) {
	// 16384 is exactly half of the 16-bit scale.
	raw := wavBytes(t, 8000, 1, []int{0, 16384, -16384, 32767})

	samples, sampleRate, err := DecodeWaveform(raw)

	require.NoError(t, err)
	assert.Equal(t, 8000, sampleRate)
	require.Len(t, samples, 4)
	assert.InDelta(t, 0.0, samples[0], 1e-6)
	assert.InDelta(t, 0.5, samples[1], 1e-6)
	assert.InDelta(t, -0.5, samples[2], 1e-6)
	assert.InDelta(t, 1.0, samples[3], 1e-3)
}

func TestDecodeWaveform_StereoDownmix(t *testing.T) {
	// Interleaved L/R pairs. Each frame downmixes to the channel mean.
	raw := wavBytes(t, 16000, 2, []int{16384, 0, -16384, 16384})

	samples, sampleRate, err := DecodeWaveform(raw)

	require.NoError(t, err)
	assert.Equal(t, 16000, sampleRate)
	require.Len(t, samples, 2)
	assert.InDelta(t, 0.25, samples[0], 1e-6)
	assert.InDelta(t, 0.0, samples[1], 1e-6)
}

func TestDecodeWaveform_InvalidBytes(t *testing.T) {
	_, _, err := DecodeWaveform([]byte("not a wav file"))

	require.Error(t, err)
	assert.True(t, datatypes.IsDecodeError(err))
}

func TestTruncateForTranscription(t *testing.T) {
	t.Run("short waveform is untouched", func(t *testing.T) {
		samples := make([]float64, 100)
		assert.Len(t, TruncateForTranscription(samples, 8000), 100)
	})

	t.Run("long waveform truncates to the cap", func(t *testing.T) {
		sampleRate := 100
		samples := make([]float64, sampleRate*MaxTranscribeSeconds+250)

		got := TruncateForTranscription(samples, sampleRate)

		assert.Len(t, got, sampleRate*MaxTranscribeSeconds)
	})
}

func TestAudioExtractor_ExtractText(t *testing.T) {
	t.Run("transcriber sees only the truncated waveform", func(t *testing.T) {
		sampleRate := 100
		frames := sampleRate*MaxTranscribeSeconds + 500
		data := make([]int, frames)
		raw := wavBytes(t, sampleRate, 1, data)

		tr := &mockTranscriber{text: "spoken words"}
		extractor := NewAudioExtractor(tr)

		got, err := extractor.ExtractText(context.Background(), raw)

		require.NoError(t, err)
		assert.Equal(t, "spoken words", got)
		assert.Len(t, tr.gotSamples, sampleRate*MaxTranscribeSeconds)
		assert.Equal(t, sampleRate, tr.gotRate)
	})

	t.Run("blank transcript is empty content", func(t *testing.T) {
		raw := wavBytes(t, 8000, 1, []int{0, 0, 0, 0})
		tr := &mockTranscriber{text: "  \n "}
		extractor := NewAudioExtractor(tr)

		_, err := extractor.ExtractText(context.Background(), raw)

		require.Error(t, err)
		assert.True(t, datatypes.IsEmptyContent(err))
		assert.Equal(t, "No speech detected in audio", err.Error())
	})
}
