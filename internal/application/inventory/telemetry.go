package inventory

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/jhoicas/estoque-api/internal/application/inventory"

// ledgerMetrics contadores del libro. Usa los providers globales; sin exportador configurado
// otel entrega implementaciones no-op.
type ledgerMetrics struct {
	movements  metric.Int64Counter
	rejections metric.Int64Counter
}

func newLedgerMetrics(log zerolog.Logger) ledgerMetrics {
	meter := otel.Meter(instrumentationName)
	fallback := noop.Meter{}

	movements, err := meter.Int64Counter("estoque.movements",
		metric.WithDescription("Movimientos confirmados en el libro"),
		metric.WithUnit("{movement}"))
	if err != nil {
		log.Warn().Err(err).Msg("no se pudo crear el contador estoque.movements")
		movements, _ = fallback.Int64Counter("estoque.movements")
	}
	rejections, err := meter.Int64Counter("estoque.movements.rejected",
		metric.WithDescription("Movimientos rechazados por saldo insuficiente"),
		metric.WithUnit("{movement}"))
	if err != nil {
		log.Warn().Err(err).Msg("no se pudo crear el contador estoque.movements.rejected")
		rejections, _ = fallback.Int64Counter("estoque.movements.rejected")
	}
	return ledgerMetrics{movements: movements, rejections: rejections}
}

func (m ledgerMetrics) committed(ctx context.Context, movType, scope string) {
	m.movements.Add(ctx, 1, metric.WithAttributes(
		attribute.String("movement.type", movType),
		attribute.String("movement.scope", scope),
	))
}

func (m ledgerMetrics) rejected(ctx context.Context, movType, location string) {
	m.rejections.Add(ctx, 1, metric.WithAttributes(
		attribute.String("movement.type", movType),
		attribute.String("stock.location", location),
	))
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// endSpan registra el error (si hay) y cierra el span.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
