// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package otel initializes the global OTel providers from config.
package otel

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/foodpoint/foodpoint/config"

	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// UnknownOTLPConnTypeError signals an unrecognized otlp conn type in config.
type UnknownOTLPConnTypeError struct {
	Type config.OTLPConnType
}

func (e UnknownOTLPConnTypeError) Error() string {
	return fmt.Sprintf("unknown otlp conn type: %q", e.Type)
}

// Initialize configures the global trace, metric and log providers.
// Signals without a configured OTLP target fall back to no-op exporting,
// except logs which fall back to JSON on stdout.
func Initialize(ctx context.Context, cfg config.OTel) error {
	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.Resource.ServiceName),
			semconv.ServiceVersion(cfg.Resource.ServiceVersion),
		),
	)
	if err != nil {
		return err
	}

	conns := make(map[string]*grpc.ClientConn)
	grpcConn := func(target string) (*grpc.ClientConn, error) {
		cc, ok := conns[target]
		if ok {
			return cc, nil
		}
		cc, err := grpc.NewClient(
			target,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		)
		if err != nil {
			return nil, err
		}
		conns[target] = cc
		return cc, nil
	}

	err = initTraceProvider(ctx, cfg.Trace, r, grpcConn)
	if err != nil {
		return err
	}
	err = initMeterProvider(ctx, cfg.Metric, r, grpcConn)
	if err != nil {
		return err
	}
	return initLoggerProvider(ctx, cfg.Log, r, grpcConn)
}

type connFunc func(target string) (*grpc.ClientConn, error)

func initTraceProvider(ctx context.Context, cfg config.Trace, r *resource.Resource, conn connFunc) error {
	var exp sdktrace.SpanExporter = noopSpanExporter{}
	if cfg.OTLP.Target != "" {
		switch cfg.OTLP.Type {
		case config.OTLPGRPC:
			cc, err := conn(cfg.OTLP.Target)
			if err != nil {
				return err
			}
			exp, err = otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(cc))
			if err != nil {
				return err
			}
		case config.OTLPHTTP:
			var err error
			exp, err = otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(cfg.OTLP.Target))
			if err != nil {
				return err
			}
		default:
			return UnknownOTLPConnTypeError{Type: cfg.OTLP.Type}
		}
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewBatchSpanProcessor(
			exp,
			sdktrace.WithBatchTimeout(cfg.Batch.ExportInterval),
			sdktrace.WithMaxExportBatchSize(cfg.Batch.MaxSize),
		)),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SamplingRatio)),
		sdktrace.WithResource(r),
	)
	otel.SetTracerProvider(tp)
	return nil
}

func initMeterProvider(ctx context.Context, cfg config.Metric, r *resource.Resource, conn connFunc) error {
	var exp sdkmetric.Exporter = noopMetricExporter{}
	if cfg.OTLP.Target != "" {
		switch cfg.OTLP.Type {
		case config.OTLPGRPC:
			cc, err := conn(cfg.OTLP.Target)
			if err != nil {
				return err
			}
			exp, err = otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(cc))
			if err != nil {
				return err
			}
		case config.OTLPHTTP:
			var err error
			exp, err = otlpmetrichttp.New(ctx, otlpmetrichttp.WithEndpoint(cfg.OTLP.Target))
			if err != nil {
				return err
			}
		default:
			return UnknownOTLPConnTypeError{Type: cfg.OTLP.Type}
		}
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(
			exp,
			sdkmetric.WithInterval(cfg.ExportInterval),
			sdkmetric.WithProducer(runtime.NewProducer()),
		)),
		sdkmetric.WithResource(r),
	)
	otel.SetMeterProvider(mp)

	return runtime.Start(
		runtime.WithMinimumReadMemStatsInterval(time.Second),
	)
}

func initLoggerProvider(ctx context.Context, cfg config.Log, r *resource.Resource, conn connFunc) error {
	var exp sdklog.Exporter
	switch {
	case cfg.OTLP.Target == "":
		exp = &slogExporter{
			handler: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{}),
		}
	case cfg.OTLP.Type == config.OTLPGRPC:
		cc, err := conn(cfg.OTLP.Target)
		if err != nil {
			return err
		}
		exp, err = otlploggrpc.New(ctx, otlploggrpc.WithGRPCConn(cc))
		if err != nil {
			return err
		}
	case cfg.OTLP.Type == config.OTLPHTTP:
		var err error
		exp, err = otlploghttp.New(ctx, otlploghttp.WithEndpoint(cfg.OTLP.Target))
		if err != nil {
			return err
		}
	default:
		return UnknownOTLPConnTypeError{Type: cfg.OTLP.Type}
	}

	lp := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(
			exp,
			sdklog.WithExportInterval(cfg.Batch.ExportInterval),
			sdklog.WithExportMaxBatchSize(cfg.Batch.MaxSize),
		)),
		sdklog.WithResource(r),
	)
	global.SetLoggerProvider(lp)
	return nil
}
