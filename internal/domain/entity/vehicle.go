package entity

import "time"

// Vehicle vehículo de la flota que puede llevar stock.
type Vehicle struct {
	ID          string
	Plate       string
	Description string
	Active      bool
	CreatedAt   time.Time
}
