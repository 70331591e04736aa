package model

import "github.com/google/uuid"

// Invoice is a read-only snapshot row. ContractNumber is a free-text
// reference entered by uploaders, not a foreign key.
type Invoice struct {
	ID                 uuid.UUID `json:"id"`
	Department         string    `json:"department"`
	StudyNumber        string    `json:"study_number"`
	InvoiceNumber      string    `json:"invoice_number"`
	InvoiceDescription *string   `json:"invoice_description"`
	Cost               *float64  `json:"cost"`
	ContractNumber     string    `json:"contract_number"`
	PaymentDate        *string   `json:"payment_date"`
	UploadedByEmail    string    `json:"uploaded_by_email"`
	CreatedAt          *string   `json:"created_at"`
}
