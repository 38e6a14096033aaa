package inventory

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/estoque-api/internal/domain/stock"
)

// Settings parámetros compartidos por los casos de uso del inventario.
type Settings struct {
	Clock             Clock
	Location          *time.Location // zona horaria de negocio para "hoy"
	ExpiryHorizonDays int
	Logger            zerolog.Logger
}

func (s Settings) withDefaults() Settings {
	if s.Clock == nil {
		s.Clock = systemClock
	}
	if s.Location == nil {
		s.Location = time.UTC
	}
	if s.ExpiryHorizonDays <= 0 {
		s.ExpiryHorizonDays = stock.DefaultExpiryHorizonDays
	}
	return s
}

// today fecha actual en la zona de negocio.
func (s Settings) today() time.Time {
	return s.Clock().In(s.Location)
}
