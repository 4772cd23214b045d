// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import "errors"

var (
	// ErrInvalidPing is returned when the ping options are invalid
	ErrInvalidPing = errors.New("invalid ping configuration")
	// ErrInvalidTraceroute is returned when the traceroute options are invalid
	ErrInvalidTraceroute = errors.New("invalid traceroute configuration")
	// ErrInvalidOutput is returned when the output format is unknown
	ErrInvalidOutput = errors.New("invalid output format")
	// ErrInvalidTelemetry is returned when the telemetry configuration is invalid
	ErrInvalidTelemetry = errors.New("invalid telemetry configuration")
	// ErrInvalidTargetsFile is returned when the targets file cannot be used
	ErrInvalidTargetsFile = errors.New("invalid targets file")
)
