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
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truthguard-ai/TruthGuardLocal/services/verifier/datatypes"
)

// mockOCR is a configurable OCR double.
type mockOCR struct {
	text  string
	err   error
	calls int
}

func (m *mockOCR) ExtractText(_ context.Context, _ image.Image) (string, error) {
	m.calls++
	return m.text, m.err
}

// pngBytes encodes a small solid image for decode tests.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func TestText(t *testing.T) {
	t.Run("trims surrounding whitespace", func(t *testing.T) {
		got, err := Text("  the claim \n")
		require.NoError(t, err)
		assert.Equal(t, "the claim", got)
	})

	t.Run("empty input is empty content", func(t *testing.T) {
		_, err := Text("   \t\n")
		require.Error(t, err)
		assert.True(t, datatypes.IsEmptyContent(err))
		assert.Equal(t, "No text provided", err.Error())
	})
}

func TestDecodeImage(t *testing.T) {
	t.Run("valid png decodes", func(t *testing.T) {
		img, err := DecodeImage(pngBytes(t))
		require.NoError(t, err)
		assert.Equal(t, 4, img.Bounds().Dx())
	})

	t.Run("garbage bytes are a decode error", func(t *testing.T) {
		_, err := DecodeImage([]byte("definitely not an image"))
		require.Error(t, err)
		assert.True(t, datatypes.IsDecodeError(err))
	})
}

func TestImageExtractor_ExtractText(t *testing.T) {
	t.Run("returns trimmed ocr text", func(t *testing.T) {
		ocr := &mockOCR{text: "  HELLO WORLD  "}
		extractor := NewImageExtractor(ocr)

		got, err := extractor.ExtractText(context.Background(), pngBytes(t))

		require.NoError(t, err)
		assert.Equal(t, "HELLO WORLD", got)
	})

	t.Run("blank ocr output is empty content", func(t *testing.T) {
		ocr := &mockOCR{text: "   "}
		extractor := NewImageExtractor(ocr)

		_, err := extractor.ExtractText(context.Background(), pngBytes(t))

		require.Error(t, err)
		assert.True(t, datatypes.IsEmptyContent(err))
		assert.Equal(t, "No readable text found in image", err.Error())
	})

	t.Run("undecodable image never reaches ocr", func(t *testing.T) {
		ocr := &mockOCR{text: "unreachable"}
		extractor := NewImageExtractor(ocr)

		_, err := extractor.ExtractText(context.Background(), []byte("junk"))

		require.Error(t, err)
		assert.True(t, datatypes.IsDecodeError(err))
		assert.Zero(t, ocr.calls)
	})
}

func TestNewImageExtractor_NilOCRPanics(t *testing.T) {
	assert.Panics(t, func() { NewImageExtractor(nil) })
}
