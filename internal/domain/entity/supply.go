package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de insumo.
const (
	CategoryPPE                = "PPE"                 // EPI
	CategoryMedication         = "MEDICATION"          // medicamento
	CategoryDisposableMaterial = "DISPOSABLE_MATERIAL" // material descartable
	CategoryEquipment          = "EQUIPMENT"           // equipamiento
	CategoryOther              = "OTHER"
)

// DefaultUnit unidad de medida cuando el alta no la informa.
const DefaultUnit = "UN"

var categoryAliases = map[string]string{
	CategoryPPE:                CategoryPPE,
	CategoryMedication:         CategoryMedication,
	CategoryDisposableMaterial: CategoryDisposableMaterial,
	CategoryEquipment:          CategoryEquipment,
	CategoryOther:              CategoryOther,
	"EPI":                      CategoryPPE,
	"MEDICAMENTO":              CategoryMedication,
	"MATERIAL_DESCARTAVEL":     CategoryDisposableMaterial,
	"EQUIPAMENTO":              CategoryEquipment,
	"OUTRO":                    CategoryOther,
}

// ParseCategory normaliza una categoría (acepta los alias en portugués). ok=false si no existe.
func ParseCategory(s string) (string, bool) {
	c, ok := categoryAliases[s]
	return c, ok
}

// Supply representa un insumo (Insumo) del catálogo.
// Quantity es el saldo autoritativo en el almacén central y solo lo modifica el libro de movimientos.
type Supply struct {
	ID              string
	Name            string
	Description     string
	Category        string
	Unit            string
	MinQuantity     decimal.Decimal // umbral de reposición
	InitialQuantity decimal.Decimal // saldo al alta, base para la reconciliación
	Quantity        decimal.Decimal
	UnitPrice       *decimal.Decimal
	Barcode         string
	LotNumber       string
	ExpiryDate      *time.Time // solo fecha
	Supplier        string
	InvoiceRef      string
	EntryDate       *time.Time
	StorageLocation string
	Active          bool
	LastMovementAt  *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
