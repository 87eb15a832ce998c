// Copyright (C) 2025 TruthGuard (dev@truthguard.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package capabilities

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const authorshipSystemPrompt = "You are an AI-text detector. Given a " +
	"passage, respond with only a number between 0 and 1: the probability " +
	"that the passage was written by an AI language model. No explanation."

// OpenAITextClassifier scores text authorship with an OpenAI chat model.
// Alternative backend for deployments without a local detector model.
type OpenAITextClassifier struct {
	client *openai.Client
	model  string
}

// NewOpenAITextClassifier builds the classifier from OPENAI_API_KEY and
// OPENAI_MODEL.
func NewOpenAITextClassifier() (*OpenAITextClassifier, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		secretPath := "/run/secrets/openai_api_key"
		apiKeyBytes, err := os.ReadFile(secretPath)
		if err == nil {
			apiKey = strings.TrimSpace(string(apiKeyBytes))
			slog.Info("Read the OpenAI API Key from container secrets")
		} else {
			slog.Error("OPENAI_API_KEY environment variable not set and secret not found",
				"path", secretPath)
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
		slog.Warn("OPENAI_MODEL not set, defaulting to gpt-4o-mini")
	}
	slog.Info("Initializing OpenAI text classifier", "model", model)
	return &OpenAITextClassifier{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// ClassifyText implements the TextClassifier interface.
func (o *OpenAITextClassifier) ClassifyText(ctx context.Context, text string) (float64, error) {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: authorshipSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0,
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("OpenAI API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("OpenAI returned no choices")
	}

	return parseConfidence(resp.Choices[0].Message.Content)
}

// parseConfidence extracts a [0,1] confidence from the model reply,
// clamping values a chatty model pushes out of range.
func parseConfidence(reply string) (float64, error) {
	fields := strings.Fields(strings.TrimSpace(reply))
	if len(fields) == 0 {
		return 0, fmt.Errorf("OpenAI returned an empty confidence reply")
	}
	score, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], "."), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse the confidence reply %q: %w", reply, err)
	}
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score, nil
}
