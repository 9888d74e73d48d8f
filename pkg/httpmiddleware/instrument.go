package httpmiddleware

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

// Instrument wraps the handler with OpenTelemetry HTTP tracing and a request
// counter built from the given providers. A failed instrument registration
// is reported through the global error handler and the counter falls back to
// a no-op, so the middleware never drops requests over telemetry.
func Instrument(operation string, tp trace.TracerProvider, mp metric.MeterProvider) Middleware {
	meter := mp.Meter("backoffice/httpmiddleware")
	requests, err := meter.Int64Counter("http.server.requests")
	if err != nil {
		otel.Handle(err)
		requests, _ = noop.NewMeterProvider().Meter("").Int64Counter("http.server.requests")
	}

	return func(next http.Handler) http.Handler {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			span := trace.SpanFromContext(r.Context())
			span.SetAttributes(attribute.String("http.target", r.URL.Path))

			requests.Add(r.Context(), 1, metric.WithAttributes(
				attribute.String("http.method", r.Method),
			))

			next.ServeHTTP(w, r)
		})

		return otelhttp.NewHandler(inner, operation,
			otelhttp.WithTracerProvider(tp),
			otelhttp.WithMeterProvider(mp),
		)
	}
}
