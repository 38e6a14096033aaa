package postgres

import (
	"context"
	"fmt"
)

// schema idempotente. stock_movements es solo de inserción: un trigger rechaza UPDATE y DELETE.
// Los CHECK repiten en la base las reglas de saldo no negativo y cantidad positiva.
const schema = `
CREATE TABLE IF NOT EXISTS vehicles (
	id          UUID PRIMARY KEY,
	plate       TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	active      BOOLEAN NOT NULL DEFAULT TRUE,
	created_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS supplies (
	id               UUID PRIMARY KEY,
	name             TEXT NOT NULL CHECK (name <> ''),
	name_search      TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	category         TEXT NOT NULL CHECK (category IN ('PPE', 'MEDICATION', 'DISPOSABLE_MATERIAL', 'EQUIPMENT', 'OTHER')),
	unit             TEXT NOT NULL,
	min_quantity     NUMERIC NOT NULL DEFAULT 0 CHECK (min_quantity >= 0),
	initial_quantity NUMERIC NOT NULL DEFAULT 0 CHECK (initial_quantity >= 0),
	quantity         NUMERIC NOT NULL DEFAULT 0 CHECK (quantity >= 0),
	unit_price       NUMERIC CHECK (unit_price >= 0),
	barcode          TEXT NOT NULL DEFAULT '',
	lot_number       TEXT NOT NULL DEFAULT '',
	expiry_date      DATE,
	supplier         TEXT NOT NULL DEFAULT '',
	invoice_ref      TEXT NOT NULL DEFAULT '',
	entry_date       DATE,
	storage_location TEXT NOT NULL DEFAULT '',
	active           BOOLEAN NOT NULL DEFAULT TRUE,
	last_movement_at TIMESTAMPTZ,
	created_at       TIMESTAMPTZ NOT NULL,
	updated_at       TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_supplies_name ON supplies (name COLLATE "C", id);
CREATE INDEX IF NOT EXISTS idx_supplies_category ON supplies (category);

CREATE TABLE IF NOT EXISTS stock_movements (
	id              UUID PRIMARY KEY,
	supply_id       UUID NOT NULL REFERENCES supplies (id),
	type            TEXT NOT NULL CHECK (type IN ('ENTRADA', 'SAIDA', 'TRANSFERENCIA', 'DEVOLUCAO', 'AJUSTE', 'PERDA')),
	scope           TEXT NOT NULL CHECK (scope IN ('CENTRAL', 'VEHICLE')),
	quantity        NUMERIC NOT NULL CHECK (quantity > 0),
	quantity_before NUMERIC NOT NULL CHECK (quantity_before >= 0),
	quantity_after  NUMERIC NOT NULL CHECK (quantity_after >= 0),
	origin          TEXT,
	destination     TEXT,
	vehicle_id      TEXT,
	campaign_id     TEXT,
	responsible_id  TEXT,
	invoice_ref     TEXT,
	notes           TEXT,
	created_at      TIMESTAMPTZ NOT NULL,
	created_by      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_movements_order ON stock_movements (created_at, id);
CREATE INDEX IF NOT EXISTS idx_movements_supply ON stock_movements (supply_id, created_at, id);
CREATE INDEX IF NOT EXISTS idx_movements_vehicle ON stock_movements (vehicle_id) WHERE vehicle_id IS NOT NULL;
CREATE INDEX IF NOT EXISTS idx_movements_campaign ON stock_movements (campaign_id) WHERE campaign_id IS NOT NULL;

CREATE OR REPLACE FUNCTION stock_movements_append_only() RETURNS trigger AS $$
BEGIN
	RAISE EXCEPTION 'stock_movements es solo de inserción';
END;
$$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS trg_stock_movements_append_only ON stock_movements;
CREATE TRIGGER trg_stock_movements_append_only
	BEFORE UPDATE OR DELETE ON stock_movements
	FOR EACH ROW EXECUTE FUNCTION stock_movements_append_only();

CREATE TABLE IF NOT EXISTS truck_stock (
	vehicle_id UUID NOT NULL REFERENCES vehicles (id),
	supply_id  UUID NOT NULL REFERENCES supplies (id),
	quantity   NUMERIC NOT NULL CHECK (quantity >= 0),
	updated_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (vehicle_id, supply_id)
);

CREATE INDEX IF NOT EXISTS idx_truck_stock_supply ON truck_stock (supply_id);
`

// EnsureSchema crea tablas, índices y el trigger de solo inserción si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
