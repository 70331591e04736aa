package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		study_number VARCHAR(64) NOT NULL,
		department VARCHAR(128) NOT NULL,
		contract_value NUMERIC(18,2),
		balance NUMERIC(18,2),
		status VARCHAR(32) NOT NULL DEFAULT 'Ongoing',
		start_date DATE,
		end_date DATE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_start_date ON contracts (start_date DESC);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_status ON contracts (status);`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		department VARCHAR(128) NOT NULL,
		study_number VARCHAR(64) NOT NULL,
		invoice_number VARCHAR(64) NOT NULL,
		invoice_description TEXT,
		cost NUMERIC(18,2),
		contract_number VARCHAR(64) NOT NULL DEFAULT '',
		payment_date DATE,
		uploaded_by_email VARCHAR(255) NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_payment_date ON invoices (payment_date DESC NULLS LAST);`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_created_at ON invoices (created_at DESC);`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_uploaded_by ON invoices (uploaded_by_email);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
