// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config declares the configuration schema for observability.
package config

import "time"

// Resource identifies the running service to telemetry backends.
type Resource struct {
	ServiceName    string `config:"service_name"`
	ServiceVersion string `config:"service_version"`
}

// OTLPConnType selects the transport used to reach an OTLP endpoint.
type OTLPConnType string

const (
	OTLPHTTP OTLPConnType = "http"
	OTLPGRPC OTLPConnType = "grpc"
)

// OTLP points a signal exporter at a collector endpoint. A zero Target
// disables exporting for that signal.
type OTLP struct {
	Type   OTLPConnType `config:"type"`
	Target string       `config:"target"`
}

// Batch controls batching of exported telemetry.
type Batch struct {
	ExportInterval time.Duration `config:"export_interval"`
	MaxSize        int           `config:"max_size"`
}

// Trace configures the trace provider.
type Trace struct {
	SamplingRatio float64 `config:"sampling_ratio"`
	Batch         Batch   `config:"batch"`
	OTLP          OTLP    `config:"otlp"`
}

// Metric configures the meter provider.
type Metric struct {
	ExportInterval time.Duration `config:"export_interval"`
	OTLP           OTLP          `config:"otlp"`
}

// Log configures the logger provider. When no OTLP target is set, log
// records are written to stdout as JSON.
type Log struct {
	Batch Batch `config:"batch"`
	OTLP  OTLP  `config:"otlp"`
}

// OTel aggregates all observability configuration.
type OTel struct {
	Resource Resource `config:"resource"`
	Trace    Trace    `config:"trace"`
	Metric   Metric   `config:"metric"`
	Log      Log      `config:"log"`
}
