package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nurpe/trialops/internal/model"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// ListContracts projects the full registry ordered by start_date
// descending. Date columns come back as text so rows with odd values
// still scan; interpretation is the caller's concern.
func (r *ContractRepository) ListContracts(ctx context.Context) ([]model.Contract, error) {
	var rows []model.Contract
	if err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			study_number,
			department,
			contract_value,
			balance,
			status,
			start_date::text AS start_date,
			end_date::text AS end_date,
			created_at::text AS created_at
		FROM contracts
		ORDER BY start_date DESC
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
