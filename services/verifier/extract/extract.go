// Copyright (C) 2025 TruthGuard (dev@truthguard.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package extract turns raw uploads into canonical text and per-sample
// classification inputs, one extractor per modality.
//
// Every extractor enforces the same contract: it either produces a
// non-empty signal or terminates the request with a typed error
// (EmptyContentError, DecodeError, ExternalToolError) before any
// classification or fact verification runs.
package extract

import (
	"bytes"
	"context"
	"image"
	"strings"

	// Register the stdlib decoders the upload formats need.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/truthguard-ai/TruthGuardLocal/services/capabilities"
	"github.com/truthguard-ai/TruthGuardLocal/services/verifier/datatypes"
)

// Fixed per-modality empty-content messages, surfaced verbatim.
const (
	msgNoText      = "No text provided"
	msgNoImageText = "No readable text found in image"
	msgNoSpeech    = "No speech detected in audio"
	msgNoVideoText = "No text found in video"
)

// Text canonicalizes a text payload: trim whitespace, reject empty.
func Text(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", datatypes.NewEmptyContentError(msgNoText)
	}
	return trimmed, nil
}

// DecodeImage decodes image bytes through the stdlib registry
// (png/jpeg/gif).
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &datatypes.DecodeError{Modality: datatypes.ModalityImage, Err: err}
	}
	return img, nil
}

// ImageExtractor runs OCR over a decoded image.
type ImageExtractor struct {
	ocr capabilities.OCRExtractor
}

// NewImageExtractor builds the image extractor. Panics on a nil OCR
// capability (fail-fast for programming errors).
func NewImageExtractor(ocr capabilities.OCRExtractor) *ImageExtractor {
	if ocr == nil {
		panic("extract.NewImageExtractor: ocr must not be nil")
	}
	return &ImageExtractor{ocr: ocr}
}

// ExtractText decodes the image and returns its trimmed OCR text.
// Yields EmptyContentError when the image holds no readable text.
func (e *ImageExtractor) ExtractText(ctx context.Context, data []byte) (string, error) {
	img, err := DecodeImage(data)
	if err != nil {
		return "", err
	}
	text, err := e.ocr.ExtractText(ctx, img)
	if err != nil {
		return "", err
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", datatypes.NewEmptyContentError(msgNoImageText)
	}
	return trimmed, nil
}
