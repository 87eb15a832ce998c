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
	"image"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/truthguard-ai/TruthGuardLocal/services/capabilities"
	"github.com/truthguard-ai/TruthGuardLocal/services/verifier/datatypes"
)

// Sampling cadences and caps over the decoded frame stream. Two
// independent cadences run over the same stream: the OCR path probes
// every 60th frame until 5 non-empty texts accumulate, the content-origin
// path probes every 30th frame until 10 samples accumulate. Both stop
// early at end of stream.
const (
	OCRFrameInterval      = 60
	ClassifyFrameInterval = 30
	MaxOCRTexts           = 5
	MaxClassifySamples    = 10
)

// ocrBatchSize is how many sampled frames each transcoder pass dumps on
// the fact-check path. Sampling proceeds batch by batch so that text
// accumulation stops the decoding; the whole stream is never dumped up
// front.
const ocrBatchSize = 5

// videoAudioSampleRate is the rate the audio track is transcoded to
// before transcription (mono, 16-bit PCM).
const videoAudioSampleRate = 16000

// maxConcurrentTranscodes bounds in-flight ffmpeg invocations so the
// blocking external process cannot stall concurrent request handling.
const maxConcurrentTranscodes = 4

// VideoExtractor samples frames and the audio track out of an uploaded
// container file via ffmpeg.
//
// Every invocation works on uniquely named temp artifacts (container
// file, frame directory, extracted audio file) that are removed on every
// exit path; removal failures are swallowed.
type VideoExtractor struct {
	ocr         capabilities.OCRExtractor
	transcriber capabilities.Transcriber
	ffmpegPath  string
	transcodes  *semaphore.Weighted
}

// NewVideoExtractor builds the video extractor. FFMPEG_PATH overrides the
// transcoder binary resolved from PATH.
func NewVideoExtractor(ocr capabilities.OCRExtractor,
	transcriber capabilities.Transcriber) *VideoExtractor {

	if ocr == nil || transcriber == nil {
		panic("extract.NewVideoExtractor: ocr and transcriber must not be nil")
	}
	ffmpegPath := os.Getenv("FFMPEG_PATH")
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &VideoExtractor{
		ocr:         ocr,
		transcriber: transcriber,
		ffmpegPath:  ffmpegPath,
		transcodes:  semaphore.NewWeighted(maxConcurrentTranscodes),
	}
}

// ClassificationSamples decodes the frames feeding the content-origin
// check: every ClassifyFrameInterval-th frame, at most MaxClassifySamples
// of them.
func (e *VideoExtractor) ClassificationSamples(ctx context.Context,
	data []byte) ([]image.Image, error) {

	videoPath, err := e.writeContainer(data)
	if err != nil {
		return nil, err
	}
	defer removeQuietly(videoPath)

	frameDir, err := os.MkdirTemp("", "truthguard-frames-")
	if err != nil {
		return nil, fmt.Errorf("failed to create the frame directory: %w", err)
	}
	defer removeAllQuietly(frameDir)

	framePaths, err := e.extractFrameFiles(ctx, videoPath, frameDir,
		ClassifyFrameInterval, 0, MaxClassifySamples)
	if err != nil {
		return nil, err
	}
	return decodeFrames(framePaths, MaxClassifySamples)
}

// decodeFrames decodes dumped frame files in stream order, stopping at
// limit. The ffmpeg invocation already caps the dump, so the limit here
// only matters when a stale frame directory holds extras.
func decodeFrames(framePaths []string, limit int) ([]image.Image, error) {
	frames := make([]image.Image, 0, len(framePaths))
	for _, path := range framePaths {
		if len(frames) >= limit {
			break
		}
		img, err := decodeFrameFile(path)
		if err != nil {
			return nil, err
		}
		frames = append(frames, img)
	}
	return frames, nil
}

// ExtractText produces the canonical text for the video fact-check path:
// accumulated frame OCR text merged with the audio-track transcript.
func (e *VideoExtractor) ExtractText(ctx context.Context, data []byte) (string, error) {
	videoPath, err := e.writeContainer(data)
	if err != nil {
		return "", err
	}
	defer removeQuietly(videoPath)

	frameDir, err := os.MkdirTemp("", "truthguard-frames-")
	if err != nil {
		return "", fmt.Errorf("failed to create the frame directory: %w", err)
	}
	defer removeAllQuietly(frameDir)

	dump := func(ctx context.Context, batch int) ([]string, error) {
		batchDir := filepath.Join(frameDir, fmt.Sprintf("batch_%03d", batch))
		if err := os.Mkdir(batchDir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create the frame batch directory: %w", err)
		}
		return e.extractFrameFiles(ctx, videoPath, batchDir, OCRFrameInterval,
			batch*ocrBatchSize*OCRFrameInterval, ocrBatchSize)
	}
	texts, err := e.collectOCRTexts(ctx, dump)
	if err != nil {
		return "", err
	}

	audioPath := strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".wav"
	defer removeQuietly(audioPath)
	transcript, err := e.transcribeAudioTrack(ctx, videoPath, audioPath)
	if err != nil {
		return "", err
	}

	return MergeTexts(texts, transcript)
}

// MergeTexts joins accumulated OCR texts and the transcript with single
// spaces. Both empty is a terminal empty-content outcome.
func MergeTexts(ocrTexts []string, transcript string) (string, error) {
	merged := strings.TrimSpace(strings.Join(ocrTexts, " "))
	transcript = strings.TrimSpace(transcript)
	switch {
	case merged != "" && transcript != "":
		merged = merged + " " + transcript
	case merged == "":
		merged = transcript
	}
	if merged == "" {
		return "", datatypes.NewEmptyContentError(msgNoVideoText)
	}
	return merged, nil
}

// writeContainer spills the upload to a uniquely named temp file for
// ffmpeg to read.
func (e *VideoExtractor) writeContainer(data []byte) (string, error) {
	videoPath := filepath.Join(os.TempDir(),
		fmt.Sprintf("truthguard-%s.mp4", uuid.NewString()))
	if err := os.WriteFile(videoPath, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write the video container file: %w", err)
	}
	return videoPath, nil
}

// frameBatchFunc dumps the next batch of sampled frames and returns
// their paths in stream order. A batch shorter than ocrBatchSize marks
// the end of the stream.
type frameBatchFunc func(ctx context.Context, batch int) ([]string, error)

// collectOCRTexts accumulates non-empty frame OCR texts batch by batch,
// requesting the next batch only while fewer than MaxOCRTexts have
// accumulated and the stream has frames left.
func (e *VideoExtractor) collectOCRTexts(ctx context.Context,
	dump frameBatchFunc) ([]string, error) {

	var texts []string
	for batch := 0; len(texts) < MaxOCRTexts; batch++ {
		framePaths, err := dump(ctx, batch)
		if err != nil {
			return nil, err
		}
		batchTexts, err := e.ocrFrameFiles(ctx, framePaths, MaxOCRTexts-len(texts))
		if err != nil {
			return nil, err
		}
		texts = append(texts, batchTexts...)
		if len(framePaths) < ocrBatchSize {
			break
		}
	}
	return texts, nil
}

// sampleFilter builds the ffmpeg select expression keeping every
// interval-th frame, skipping frames before startFrame.
func sampleFilter(interval, startFrame int) string {
	if startFrame > 0 {
		return fmt.Sprintf(`select=gte(n\,%d)*not(mod(n\,%d))`, startFrame, interval)
	}
	return fmt.Sprintf(`select=not(mod(n\,%d))`, interval)
}

// extractFrameFiles runs ffmpeg to dump up to limit sampled frames as
// PNGs, starting at startFrame, and returns their paths in stream order.
func (e *VideoExtractor) extractFrameFiles(ctx context.Context, videoPath, frameDir string,
	interval, startFrame, limit int) ([]string, error) {

	args := []string{
		"-y", "-i", videoPath,
		"-vf", sampleFilter(interval, startFrame),
		"-vsync", "vfr",
		"-frames:v", fmt.Sprintf("%d", limit),
		filepath.Join(frameDir, "frame_%06d.png"),
	}

	if err := e.runFFmpeg(ctx, args...); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(frameDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list extracted frames: %w", err)
	}
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			paths = append(paths, filepath.Join(frameDir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// ocrFrameFiles OCRs sampled frames in order, accumulating non-empty
// results until limit is reached or the frames run out.
func (e *VideoExtractor) ocrFrameFiles(ctx context.Context, framePaths []string,
	limit int) ([]string, error) {

	var texts []string
	for _, path := range framePaths {
		if len(texts) >= limit {
			break
		}
		img, err := decodeFrameFile(path)
		if err != nil {
			return nil, err
		}
		text, err := e.ocr.ExtractText(ctx, img)
		if err != nil {
			return nil, err
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			texts = append(texts, trimmed)
		}
	}
	return texts, nil
}

// transcribeAudioTrack extracts the audio track (mono, 16kHz, s16le PCM)
// and runs the 30-second-truncated transcription over it. An empty
// transcript is a valid outcome here: the merge step decides whether the
// request has any text at all.
func (e *VideoExtractor) transcribeAudioTrack(ctx context.Context,
	videoPath, audioPath string) (string, error) {

	err := e.runFFmpeg(ctx, "-y", "-i", videoPath, "-vn",
		"-acodec", "pcm_s16le",
		"-ar", fmt.Sprintf("%d", videoAudioSampleRate),
		"-ac", "1",
		audioPath)
	if err != nil {
		return "", err
	}

	audioBytes, err := os.ReadFile(audioPath)
	if err != nil {
		return "", &datatypes.ExternalToolError{Tool: e.ffmpegPath,
			Err: fmt.Errorf("no audio track produced: %w", err)}
	}
	samples, sampleRate, err := DecodeWaveform(audioBytes)
	if err != nil {
		return "", err
	}
	transcript, err := e.transcriber.Transcribe(ctx,
		TruncateForTranscription(samples, sampleRate), sampleRate)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(transcript), nil
}

// runFFmpeg invokes the transcoder under the concurrency semaphore.
// Failures surface as ExternalToolError instead of being suppressed.
func (e *VideoExtractor) runFFmpeg(ctx context.Context, args ...string) error {
	if err := e.transcodes.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("failed to acquire a transcode slot: %w", err)
	}
	defer e.transcodes.Release(1)

	cmd := exec.CommandContext(ctx, e.ffmpegPath, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	slog.Debug("Running the transcoder", "path", e.ffmpegPath, "args", args)
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			err = fmt.Errorf("%w: %s", err, lastLine(detail))
		}
		return &datatypes.ExternalToolError{Tool: e.ffmpegPath, Err: err}
	}
	return nil
}

// decodeFrameFile decodes one dumped frame PNG.
func decodeFrameFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read the frame file: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &datatypes.DecodeError{Modality: datatypes.ModalityVideo, Err: err}
	}
	return img, nil
}

func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

func removeQuietly(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Debug("Failed to remove a temp artifact", "path", path, "error", err)
	}
}

func removeAllQuietly(path string) {
	if path == "" {
		return
	}
	if err := os.RemoveAll(path); err != nil {
		slog.Debug("Failed to remove a temp directory", "path", path, "error", err)
	}
}
