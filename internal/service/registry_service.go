package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nurpe/trialops/internal/model"
)

// ExcelGenerator renders registry rows as a spreadsheet attachment.
type ExcelGenerator interface {
	ContractRegistry(contracts []model.Contract) ([]byte, error)
	InvoiceRegistry(invoices []model.Invoice) ([]byte, error)
}

// RegistryService serves the tabular contract and invoice views:
// ordered listings with optional search and sort, plus spreadsheet
// exports of the same rows.
type RegistryService struct {
	contracts ContractSource
	invoices  InvoiceSource
	excel     ExcelGenerator
	now       func() time.Time
}

func NewRegistryService(contracts ContractSource, invoices InvoiceSource, excel ExcelGenerator) *RegistryService {
	return &RegistryService{
		contracts: contracts,
		invoices:  invoices,
		excel:     excel,
		now:       time.Now,
	}
}

type RegistryQuery struct {
	Search string
	Sort   string
}

func (s *RegistryService) ListContracts(ctx context.Context, query RegistryQuery) ([]model.Contract, error) {
	rows, err := s.contracts.ListContracts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: contracts: %v", ErrSourceUnavailable, err)
	}

	rows = filterContracts(rows, query.Search)
	if err := sortContracts(rows, query.Sort); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *RegistryService) ListInvoices(ctx context.Context, query RegistryQuery) ([]model.Invoice, error) {
	rows, err := s.invoices.ListInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: invoices: %v", ErrSourceUnavailable, err)
	}

	rows = filterInvoices(rows, query.Search)
	if err := sortInvoices(rows, query.Sort); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *RegistryService) ExportContracts(ctx context.Context, query RegistryQuery) (*ReportResult, error) {
	rows, err := s.ListContracts(ctx, query)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.ContractRegistry(rows)
	if err != nil {
		return nil, err
	}
	return &ReportResult{
		FileName: fmt.Sprintf("contracts-export-%s.xlsx", s.now().Format("20060102")),
		Content:  content,
	}, nil
}

func (s *RegistryService) ExportInvoices(ctx context.Context, query RegistryQuery) (*ReportResult, error) {
	rows, err := s.ListInvoices(ctx, query)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.InvoiceRegistry(rows)
	if err != nil {
		return nil, err
	}
	return &ReportResult{
		FileName: fmt.Sprintf("invoices-export-%s.xlsx", s.now().Format("20060102")),
		Content:  content,
	}, nil
}

func filterContracts(contracts []model.Contract, search string) []model.Contract {
	query := strings.ToLower(strings.TrimSpace(search))
	if query == "" {
		return contracts
	}
	filtered := make([]model.Contract, 0, len(contracts))
	for _, contract := range contracts {
		if matchesQuery(query, contract.Department, contract.StudyNumber, contract.Status) {
			filtered = append(filtered, contract)
		}
	}
	return filtered
}

func filterInvoices(invoices []model.Invoice, search string) []model.Invoice {
	query := strings.ToLower(strings.TrimSpace(search))
	if query == "" {
		return invoices
	}
	filtered := make([]model.Invoice, 0, len(invoices))
	for _, invoice := range invoices {
		if matchesQuery(query,
			invoice.Department,
			invoice.StudyNumber,
			invoice.InvoiceNumber,
			invoice.ContractNumber,
			invoice.UploadedByEmail,
		) {
			filtered = append(filtered, invoice)
		}
	}
	return filtered
}

func matchesQuery(query string, fields ...string) bool {
	for _, field := range fields {
		if field == "" {
			continue
		}
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func sortContracts(contracts []model.Contract, key string) error {
	switch key {
	case "", "start_desc":
		sort.SliceStable(contracts, func(i, j int) bool {
			return sortDate(contracts[i].StartDate).After(sortDate(contracts[j].StartDate))
		})
	case "start_asc":
		sort.SliceStable(contracts, func(i, j int) bool {
			return sortDate(contracts[i].StartDate).Before(sortDate(contracts[j].StartDate))
		})
	case "value_desc":
		sort.SliceStable(contracts, func(i, j int) bool {
			return numberOrZero(contracts[i].ContractValue) > numberOrZero(contracts[j].ContractValue)
		})
	case "value_asc":
		sort.SliceStable(contracts, func(i, j int) bool {
			return numberOrZero(contracts[i].ContractValue) < numberOrZero(contracts[j].ContractValue)
		})
	default:
		return fmt.Errorf("%w: unknown sort %q", ErrInvalidInput, key)
	}
	return nil
}

func sortInvoices(invoices []model.Invoice, key string) error {
	switch key {
	case "", "payment_desc":
		sort.SliceStable(invoices, func(i, j int) bool {
			return sortDate(invoices[i].PaymentDate).After(sortDate(invoices[j].PaymentDate))
		})
	case "payment_asc":
		sort.SliceStable(invoices, func(i, j int) bool {
			return sortDate(invoices[i].PaymentDate).Before(sortDate(invoices[j].PaymentDate))
		})
	case "cost_desc":
		sort.SliceStable(invoices, func(i, j int) bool {
			return numberOrZero(invoices[i].Cost) > numberOrZero(invoices[j].Cost)
		})
	case "cost_asc":
		sort.SliceStable(invoices, func(i, j int) bool {
			return numberOrZero(invoices[i].Cost) < numberOrZero(invoices[j].Cost)
		})
	default:
		return fmt.Errorf("%w: unknown sort %q", ErrInvalidInput, key)
	}
	return nil
}

// sortDate orders missing or malformed dates before everything else,
// matching how the tables treat them as epoch zero.
func sortDate(raw *string) time.Time {
	date, ok := parseDate(raw)
	if !ok {
		return time.Time{}
	}
	return date
}
