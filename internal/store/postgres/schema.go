package postgres

// Schema creates the tables used by Store. It is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS contracts (
	id                  TEXT PRIMARY KEY,
	number              TEXT NOT NULL,
	contract_type       TEXT NOT NULL,
	issue_date          DATE NOT NULL,
	carrier_id          TEXT NOT NULL DEFAULT '',
	carrier_name        TEXT NOT NULL DEFAULT '',
	carrier_tax_id      TEXT NOT NULL DEFAULT '',
	carrier_payment     JSONB NOT NULL DEFAULT '{}',
	driver_name         TEXT NOT NULL DEFAULT '',
	vehicle_plate       TEXT NOT NULL DEFAULT '',
	origin              TEXT NOT NULL DEFAULT '',
	destination         TEXT NOT NULL DEFAULT '',
	contracted_freight  NUMERIC(14,2) NOT NULL DEFAULT 0,
	advance_value       NUMERIC(14,2) NOT NULL DEFAULT 0,
	advance_date        DATE,
	toll_value          NUMERIC(14,2) NOT NULL DEFAULT 0,
	generate_payable    BOOLEAN NOT NULL DEFAULT FALSE,
	due_date            DATE,
	total_freight       NUMERIC(14,2) NOT NULL DEFAULT 0,
	total_cargo         NUMERIC(14,2) NOT NULL DEFAULT 0,
	balance_due         NUMERIC(14,2) NOT NULL DEFAULT 0,
	notes               TEXT NOT NULL DEFAULT '',
	internal_remarks    TEXT NOT NULL DEFAULT '',
	finalized_at        TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS contract_documents (
	id            UUID PRIMARY KEY,
	contract_id   TEXT NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
	position      INT NOT NULL,
	kind          TEXT NOT NULL,
	number        TEXT NOT NULL,
	freight_value NUMERIC(14,2) NOT NULL DEFAULT 0,
	cargo_value   NUMERIC(14,2) NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS document_links (
	contract_id TEXT NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
	freight_id  UUID NOT NULL REFERENCES contract_documents(id) ON DELETE CASCADE,
	goods_id    UUID NOT NULL REFERENCES contract_documents(id) ON DELETE CASCADE,
	position    INT NOT NULL,
	PRIMARY KEY (freight_id, goods_id)
);

CREATE TABLE IF NOT EXISTS payable_obligations (
	id               UUID PRIMARY KEY,
	contract_id      TEXT NOT NULL REFERENCES contracts(id),
	carrier_id       TEXT NOT NULL,
	carrier_name     TEXT NOT NULL,
	amount           NUMERIC(14,2) NOT NULL,
	due_date         DATE NOT NULL,
	payment_snapshot JSONB NOT NULL,
	issued_at        TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS receipt_placeholders (
	id            UUID PRIMARY KEY,
	contract_id   TEXT NOT NULL REFERENCES contracts(id),
	obligation_id UUID NOT NULL REFERENCES payable_obligations(id),
	amount        NUMERIC(14,2) NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL
);
`
