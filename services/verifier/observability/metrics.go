// Copyright (C) 2025 TruthGuard (dev@truthguard.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package observability provides metrics and instrumentation for the
// verifier.
//
// # Description
//
// Prometheus metrics for the verification pipeline:
//   - Request counters (by endpoint, status)
//   - Error counters (by endpoint, error code)
//   - Request duration histograms
//   - In-flight request gauges
//
// Metrics are exposed via the /metrics endpoint.
//
// # Thread Safety
//
// All metric operations are thread-safe via Prometheus's internal locking.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const metricsNamespace = "truthguard"

// Subsystem for verification pipeline metrics
const verificationSubsystem = "verification"

// VerificationMetrics holds all Prometheus metrics for the verification
// pipeline. Initialize once at startup via InitMetrics().
type VerificationMetrics struct {
	// RequestsTotal counts verification requests by endpoint and status.
	// Labels: endpoint, status (success, error)
	RequestsTotal *prometheus.CounterVec

	// ErrorsTotal counts errors by endpoint and error code.
	// Labels: endpoint, error_code (empty_content, decode_error, ...)
	ErrorsTotal *prometheus.CounterVec

	// RequestDurationSeconds measures end-to-end request duration.
	// Labels: endpoint, status
	RequestDurationSeconds *prometheus.HistogramVec

	// ActiveRequests tracks in-flight verification requests.
	// Labels: endpoint
	ActiveRequests *prometheus.GaugeVec
}

// DefaultMetrics is the singleton instance of VerificationMetrics.
// Initialized by InitMetrics().
var DefaultMetrics *VerificationMetrics

// InitMetrics creates and registers all Prometheus metrics. Call once at
// application startup; a second call panics on duplicate registration.
func InitMetrics() *VerificationMetrics {
	DefaultMetrics = &VerificationMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: verificationSubsystem,
				Name:      "requests_total",
				Help:      "Total verification requests by endpoint and status",
			},
			[]string{"endpoint", "status"},
		),

		ErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: verificationSubsystem,
				Name:      "errors_total",
				Help:      "Total verification errors by endpoint and error code",
			},
			[]string{"endpoint", "error_code"},
		),

		RequestDurationSeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: verificationSubsystem,
				Name:      "request_duration_seconds",
				Help:      "End-to-end verification request duration in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"endpoint", "status"},
		),

		ActiveRequests: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: verificationSubsystem,
				Name:      "active_requests",
				Help:      "Number of in-flight verification requests",
			},
			[]string{"endpoint"},
		),
	}

	return DefaultMetrics
}

// =============================================================================
// Error Codes
// =============================================================================

// ErrorCode represents a categorized error type for metrics.
type ErrorCode string

const (
	// ErrorCodeEmptyContent indicates no speech/text/frames were found.
	ErrorCodeEmptyContent ErrorCode = "empty_content"

	// ErrorCodeDecode indicates malformed media bytes.
	ErrorCodeDecode ErrorCode = "decode_error"

	// ErrorCodeExternalTool indicates a transcoder failure.
	ErrorCodeExternalTool ErrorCode = "external_tool"

	// ErrorCodeValidation indicates request validation failure.
	ErrorCodeValidation ErrorCode = "validation"

	// ErrorCodeInternal indicates an unexpected internal failure.
	ErrorCodeInternal ErrorCode = "internal"
)

// =============================================================================
// Endpoint Names
// =============================================================================

// Endpoint represents a verification endpoint for metrics labeling.
type Endpoint string

const (
	EndpointTextVerify    Endpoint = "text_verify"
	EndpointImageVerify   Endpoint = "image_verify"
	EndpointImageOCR      Endpoint = "image_ocr"
	EndpointImageOCRCheck Endpoint = "image_ocr_verify"
	EndpointAudioVerify   Endpoint = "audio_verify"
	EndpointAudioOCRCheck Endpoint = "audio_ocr_verify"
	EndpointVideoVerify   Endpoint = "video_verify"
	EndpointVideoOCRCheck Endpoint = "video_ocr_verify"
)

// =============================================================================
// Helper Methods
// =============================================================================

// RecordRequest records a completed verification request.
func (m *VerificationMetrics) RecordRequest(endpoint Endpoint, success bool,
	durationSeconds float64) {

	status := "success"
	if !success {
		status = "error"
	}
	m.RequestsTotal.WithLabelValues(string(endpoint), status).Inc()
	m.RequestDurationSeconds.WithLabelValues(string(endpoint), status).
		Observe(durationSeconds)
}

// RecordError records a categorized verification error.
func (m *VerificationMetrics) RecordError(endpoint Endpoint, code ErrorCode) {
	m.ErrorsTotal.WithLabelValues(string(endpoint), string(code)).Inc()
}

// RequestStarted increments the in-flight gauge for an endpoint.
func (m *VerificationMetrics) RequestStarted(endpoint Endpoint) {
	m.ActiveRequests.WithLabelValues(string(endpoint)).Inc()
}

// RequestEnded decrements the in-flight gauge for an endpoint.
func (m *VerificationMetrics) RequestEnded(endpoint Endpoint) {
	m.ActiveRequests.WithLabelValues(string(endpoint)).Dec()
}
