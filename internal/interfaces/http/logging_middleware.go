package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// RequestLogger registra cada petición (método, ruta, status, latencia, actor) y deja en el
// UserContext un logger con esos campos más el contexto de traza entrante (traceparent).
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		carrier := propagation.MapCarrier{}
		c.Request().Header.VisitAll(func(k, v []byte) {
			carrier.Set(strings.ToLower(string(k)), string(v))
		})
		ctx := otel.GetTextMapPropagator().Extract(c.UserContext(), carrier)

		reqLog := log.With().Str("method", c.Method()).Str("path", c.Path()).Logger()
		c.SetUserContext(reqLog.WithContext(ctx))

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		var ev *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = reqLog.Error().Err(err)
		case status >= fiber.StatusBadRequest:
			ev = reqLog.Warn()
		default:
			ev = reqLog.Info()
		}
		ev.Int("status", status).
			Dur("latency", time.Since(start)).
			Str("actor", GetUserID(c)).
			Msg("http request")
		return err
	}
}
