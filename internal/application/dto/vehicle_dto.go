package dto

import "time"

// CreateVehicleRequest body para POST /api/vehicles.
type CreateVehicleRequest struct {
	Plate       string `json:"plate"`
	Description string `json:"description,omitempty"`
}

// VehicleResponse respuesta de vehículo.
type VehicleResponse struct {
	ID          string    `json:"id"`
	Plate       string    `json:"plate"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}
