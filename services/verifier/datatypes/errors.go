// Copyright (C) 2025 TruthGuard (dev@truthguard.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import (
	"errors"
	"fmt"
)

// EmptyContentError reports that a modality requiring text produced none.
// The message is fixed per modality and surfaced verbatim to the client.
type EmptyContentError struct {
	Message string
}

func (e *EmptyContentError) Error() string {
	return e.Message
}

// NewEmptyContentError builds an EmptyContentError with the given
// modality-specific message.
func NewEmptyContentError(message string) *EmptyContentError {
	return &EmptyContentError{Message: message}
}

// DecodeError reports malformed media bytes. Surfaced verbatim.
type DecodeError struct {
	Modality Modality
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s content: %v", e.Modality, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ExternalToolError reports a failed external transcoding utility
// invocation. Treated as decode-equivalent: it terminates the request
// instead of silently proceeding with a missing audio track.
type ExternalToolError struct {
	Tool string
	Err  error
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

func (e *ExternalToolError) Unwrap() error {
	return e.Err
}

// IsEmptyContent reports whether err is an EmptyContentError.
func IsEmptyContent(err error) bool {
	var ec *EmptyContentError
	return errors.As(err, &ec)
}

// IsDecodeError reports whether err is a DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// IsExternalToolError reports whether err is an ExternalToolError.
func IsExternalToolError(err error) bool {
	var te *ExternalToolError
	return errors.As(err, &te)
}
