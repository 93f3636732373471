// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const serviceName = "sfxplay"

// newTracerProvider writes every finished span to w as indented JSON. Spans
// are exported as they end, so a command that fails still leaves its trace.
func newTracerProvider(w io.Writer) (*sdktrace.TracerProvider, error) {
	exp, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("creating trace exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("service.instance.id", uuid.NewString()),
	)

	return sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exp),
		sdktrace.WithResource(res),
	), nil
}

func (a *app) shutdownTracing(ctx context.Context) error {
	if a.tp == nil {
		return nil
	}

	tp := a.tp
	a.tp = nil
	if err := tp.Shutdown(ctx); err != nil {
		return fmt.Errorf("flushing traces: %w", err)
	}

	return nil
}
