package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/exporters/autoexport"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otlplog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/denysvitali/filebrowser-go/pkg/config"
)

// ServiceName identifies this process in traces and logs
const ServiceName = "filebrowser"

// Initialize sets up OpenTelemetry tracing and logging using autoexport.
// The returned function flushes and shuts down the providers.
func Initialize(cfg config.TelemetryConfig, logger *logrus.Logger) (func(), error) {
	if cfg.Endpoint != "" && os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		if err := os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Endpoint); err != nil {
			return nil, fmt.Errorf("failed to set exporter endpoint: %w", err)
		}
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(ServiceName),
			semconv.ServiceVersionKey.String("1.0.0"),
		),
	)
	if err != nil {
		return nil, err
	}

	spanExporter, err := autoexport.NewSpanExporter(context.Background())
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(spanExporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)
	otel.SetTracerProvider(tp)

	logExporter, err := autoexport.NewLogExporter(context.Background())
	if err != nil {
		logger.Warnf("Failed to create log exporter: %v", err)
	}

	var logProvider *sdklog.LoggerProvider
	if logExporter != nil {
		logProvider = sdklog.NewLoggerProvider(
			sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
			sdklog.WithResource(res),
		)
		global.SetLoggerProvider(logProvider)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := tp.Shutdown(ctx); err != nil {
			logger.Errorf("Error shutting down tracer provider: %v", err)
		}

		if logProvider != nil {
			if err := logProvider.Shutdown(ctx); err != nil {
				logger.Errorf("Error shutting down log provider: %v", err)
			}
		}
	}, nil
}

// ReportEvent records a named event with its fields on the current span, in the
// debug log and as an OpenTelemetry log record.
func ReportEvent(ctx context.Context, logger *logrus.Logger, name string, fields map[string]interface{}) {
	jsonData, err := json.Marshal(fields)
	if err != nil {
		logger.Errorf("Failed to marshal %s event: %v", name, err)
		return
	}

	trace.SpanFromContext(ctx).AddEvent(name, trace.WithAttributes(spanAttributes(fields)...))

	logger.WithFields(logrus.Fields(fields)).WithField("event", name).Debug("Telemetry event")

	var record otlplog.Record
	now := time.Now()
	record.SetTimestamp(now)
	record.SetObservedTimestamp(now)
	record.SetSeverity(otlplog.SeverityInfo)
	record.SetSeverityText("INFO")
	record.SetBody(otlplog.StringValue(string(jsonData)))
	record.AddAttributes(otlplog.String("event", name))
	global.GetLoggerProvider().Logger(ServiceName).Emit(ctx, record)
}

// spanAttributes converts scalar event fields to span attributes; other values are skipped
func spanAttributes(fields map[string]interface{}) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(fields))
	for key, value := range fields {
		switch v := value.(type) {
		case string:
			attrs = append(attrs, attribute.String(key, v))
		case int:
			attrs = append(attrs, attribute.Int(key, v))
		case int64:
			attrs = append(attrs, attribute.Int64(key, v))
		case float64:
			attrs = append(attrs, attribute.Float64(key, v))
		case bool:
			attrs = append(attrs, attribute.Bool(key, v))
		}
	}
	return attrs
}
