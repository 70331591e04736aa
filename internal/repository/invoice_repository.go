package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nurpe/trialops/internal/model"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// ListInvoices projects the full registry ordered by payment_date
// descending with unpaid invoices last, then created_at descending.
func (r *InvoiceRepository) ListInvoices(ctx context.Context) ([]model.Invoice, error) {
	var rows []model.Invoice
	if err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			department,
			study_number,
			invoice_number,
			invoice_description,
			cost,
			contract_number,
			payment_date::text AS payment_date,
			uploaded_by_email,
			created_at::text AS created_at
		FROM invoices
		ORDER BY payment_date DESC NULLS LAST, created_at DESC
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
