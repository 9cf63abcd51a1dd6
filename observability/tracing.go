// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package observability

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/danielhkuo/quickpoll"

// InitTracing installs a global tracer provider. With stdout false the
// provider records nothing; spans are still created so call sites stay uniform.
// The returned function flushes and stops the provider.
func InitTracing(stdout bool) (func(context.Context) error, error) {
	return initTracing(stdout, os.Stdout)
}

func initTracing(stdout bool, w io.Writer) (func(context.Context) error, error) {
	var opts []sdktrace.TracerProviderOption
	if stdout {
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// Tracer returns the application tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}
