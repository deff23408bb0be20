package trace

import (
	"context"
	"time"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/logger"
	"go.opentelemetry.io/contrib/instrumentation/host"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

type InitConfig struct {
	ServiceName     string
	Version         string
	TraceEndpoint   string
	MetricEndpoint  string
	TraceProject    string
	TraceInstanceID string
	TraceAK         string
	TraceSK         string
}

var (
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
)

func InitTrace(ctx context.Context, conf *InitConfig) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(conf.ServiceName),
			semconv.ServiceVersionKey.String(conf.Version),
		),
	)
	if err != nil {
		logger.Warnf(ctx, "build otel resource err: %+v", err)
		res = resource.Default()
	}

	initTracer(ctx, conf, res)
	initMeter(ctx, conf, res)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	if err := host.Start(); err != nil {
		logger.Warnf(ctx, "start host instrumentation err: %+v", err)
	}
	if err := runtime.Start(runtime.WithMinimumReadMemStatsInterval(15 * time.Second)); err != nil {
		logger.Warnf(ctx, "start runtime instrumentation err: %+v", err)
	}
}

func initTracer(ctx context.Context, conf *InitConfig, res *resource.Resource) {
	var exporter sdktrace.SpanExporter
	var err error
	if conf.TraceEndpoint == "" {
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	} else {
		exporter, err = otlptrace.New(ctx, otlptracegrpc.NewClient(
			otlptracegrpc.WithEndpoint(conf.TraceEndpoint),
			otlptracegrpc.WithHeaders(authHeaders(conf)),
			otlptracegrpc.WithInsecure(),
		))
	}
	if err != nil {
		logger.Warnf(ctx, "init trace exporter err: %+v", err)
		return
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(tracerProvider)
}

func initMeter(ctx context.Context, conf *InitConfig, res *resource.Resource) {
	var exporter sdkmetric.Exporter
	var err error
	if conf.MetricEndpoint == "" {
		exporter, err = stdoutmetric.New()
	} else {
		exporter, err = otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(conf.MetricEndpoint),
			otlpmetricgrpc.WithHeaders(authHeaders(conf)),
			otlpmetricgrpc.WithInsecure(),
		)
	}
	if err != nil {
		logger.Warnf(ctx, "init metric exporter err: %+v", err)
		return
	}

	meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(30*time.Second))),
	)
	otel.SetMeterProvider(meterProvider)
}

func authHeaders(conf *InitConfig) map[string]string {
	headers := map[string]string{}
	if conf.TraceProject != "" {
		headers["x-otlp-project"] = conf.TraceProject
	}
	if conf.TraceInstanceID != "" {
		headers["x-otlp-instance-id"] = conf.TraceInstanceID
	}
	if conf.TraceAK != "" {
		headers["x-otlp-ak"] = conf.TraceAK
	}
	if conf.TraceSK != "" {
		headers["x-otlp-sk"] = conf.TraceSK
	}
	return headers
}

func CloseTrace(ctx context.Context) {
	if tracerProvider != nil {
		if err := tracerProvider.Shutdown(ctx); err != nil {
			logger.Warnf(ctx, "shutdown tracer provider err: %+v", err)
		}
	}
	if meterProvider != nil {
		if err := meterProvider.Shutdown(ctx); err != nil {
			logger.Warnf(ctx, "shutdown meter provider err: %+v", err)
		}
	}
}
