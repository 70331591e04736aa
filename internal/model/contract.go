package model

import "github.com/google/uuid"

type ContractStatus string

const (
	ContractStatusOngoing   ContractStatus = "Ongoing"
	ContractStatusFinalized ContractStatus = "Finalized"
	ContractStatusExpired   ContractStatus = "Expired"
)

// Contract is a read-only snapshot row. Date columns are carried as the
// raw strings the store returns; parsing happens at the point of use so
// malformed values degrade to "absent" instead of failing the fetch.
type Contract struct {
	ID            uuid.UUID `json:"id"`
	StudyNumber   string    `json:"study_number"`
	Department    string    `json:"department"`
	ContractValue *float64  `json:"contract_value"`
	Balance       *float64  `json:"balance"`
	Status        string    `json:"status"`
	StartDate     *string   `json:"start_date"`
	EndDate       *string   `json:"end_date"`
	CreatedAt     *string   `json:"created_at"`
}
