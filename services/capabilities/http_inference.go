// Copyright (C) 2025 TruthGuard (dev@truthguard.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package capabilities

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// InferenceClient talks to the local model-serving sidecar over HTTP.
//
// One sidecar hosts the text/image/audio origin detectors, the OCR model,
// and the speech-to-text model behind fixed JSON endpoints, so a single
// client implements every capability except the knowledge lookup.
type InferenceClient struct {
	httpClient *http.Client
	baseURL    string
}

type textClassifyPayload struct {
	Text string `json:"text"`
}

type imagePayload struct {
	ImagePNGBase64 string `json:"image_png_b64"`
}

type audioPayload struct {
	Samples    []float64 `json:"samples"`
	SampleRate int       `json:"sample_rate"`
}

type scoreResponse struct {
	Score float64 `json:"score"`
}

type textResponse struct {
	Text string `json:"text"`
}

// NewInferenceClient builds the sidecar client from
// INFERENCE_SERVICE_URL_BASE.
func NewInferenceClient() (*InferenceClient, error) {
	baseURL := os.Getenv("INFERENCE_SERVICE_URL_BASE")
	if baseURL == "" {
		return nil, fmt.Errorf("INFERENCE_SERVICE_URL_BASE environment variable not set")
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	return &InferenceClient{
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		baseURL:    baseURL,
	}, nil
}

// ClassifyText implements the TextClassifier interface.
func (c *InferenceClient) ClassifyText(ctx context.Context, text string) (float64, error) {
	var resp scoreResponse
	if err := c.post(ctx, "/classify/text", textClassifyPayload{Text: text}, &resp); err != nil {
		return 0, err
	}
	return resp.Score, nil
}

// ClassifyImage implements the ImageClassifier interface.
func (c *InferenceClient) ClassifyImage(ctx context.Context, img image.Image) (float64, error) {
	payload, err := encodeImagePayload(img)
	if err != nil {
		return 0, err
	}
	var resp scoreResponse
	if err := c.post(ctx, "/classify/image", payload, &resp); err != nil {
		return 0, err
	}
	return resp.Score, nil
}

// ClassifyAudio implements the AudioClassifier interface.
func (c *InferenceClient) ClassifyAudio(ctx context.Context, samples []float64,
	sampleRate int) (float64, error) {

	var resp scoreResponse
	payload := audioPayload{Samples: samples, SampleRate: sampleRate}
	if err := c.post(ctx, "/classify/audio", payload, &resp); err != nil {
		return 0, err
	}
	return resp.Score, nil
}

// Transcribe implements the Transcriber interface.
func (c *InferenceClient) Transcribe(ctx context.Context, samples []float64,
	sampleRate int) (string, error) {

	var resp textResponse
	payload := audioPayload{Samples: samples, SampleRate: sampleRate}
	if err := c.post(ctx, "/transcribe", payload, &resp); err != nil {
		return "", err
	}
	return resp.Text, nil
}

// ExtractText implements the OCRExtractor interface.
func (c *InferenceClient) ExtractText(ctx context.Context, img image.Image) (string, error) {
	payload, err := encodeImagePayload(img)
	if err != nil {
		return "", err
	}
	var resp textResponse
	if err := c.post(ctx, "/ocr", payload, &resp); err != nil {
		return "", err
	}
	return resp.Text, nil
}

// post marshals the payload, POSTs it to the sidecar, and decodes the
// JSON response into out.
func (c *InferenceClient) post(ctx context.Context, path string, payload any, out any) error {
	reqBodyBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal the payload: %w", err)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url,
		bytes.NewBuffer(reqBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to build the inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	slog.Debug("Calling inference sidecar", "url", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make a request to the inference sidecar: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read the inference response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("inference sidecar returned status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse the inference response: %w", err)
	}
	return nil
}

// encodeImagePayload re-encodes a decoded frame as PNG for transport.
func encodeImagePayload(img image.Image) (imagePayload, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return imagePayload{}, fmt.Errorf("failed to encode the image payload: %w", err)
	}
	return imagePayload{
		ImagePNGBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}
