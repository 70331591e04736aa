package excel

import (
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/trialops/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// ContractRegistry renders the contract table as a single-sheet
// workbook mirroring the columns of the on-screen registry.
func (g *Generator) ContractRegistry(contracts []model.Contract) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Contracts"
	file.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Department",
		"Study Number",
		"Contract Value",
		"Balance",
		"Status",
		"Start Date",
		"End Date",
		"Created",
	}
	if err := writeHeaders(file, sheet, headers); err != nil {
		return nil, err
	}

	for i, contract := range contracts {
		row := i + 2
		values := []interface{}{
			contract.Department,
			contract.StudyNumber,
			floatValue(contract.ContractValue),
			floatValue(contract.Balance),
			contract.Status,
			textValue(contract.StartDate),
			textValue(contract.EndDate),
			textValue(contract.CreatedAt),
		}
		if err := writeRow(file, sheet, row, values); err != nil {
			return nil, err
		}
	}

	_ = file.SetColWidth(sheet, "A", "B", 20)
	_ = file.SetColWidth(sheet, "C", "D", 16)
	_ = file.SetColWidth(sheet, "E", "H", 14)

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// InvoiceRegistry renders the invoice table in registry order.
func (g *Generator) InvoiceRegistry(invoices []model.Invoice) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Invoices"
	file.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Department",
		"Study Number",
		"Invoice Number",
		"Description",
		"Cost",
		"Contract Number",
		"Payment Date",
		"Uploaded By",
		"Created",
	}
	if err := writeHeaders(file, sheet, headers); err != nil {
		return nil, err
	}

	for i, invoice := range invoices {
		row := i + 2
		values := []interface{}{
			invoice.Department,
			invoice.StudyNumber,
			invoice.InvoiceNumber,
			textValue(invoice.InvoiceDescription),
			floatValue(invoice.Cost),
			invoice.ContractNumber,
			textValue(invoice.PaymentDate),
			invoice.UploadedByEmail,
			textValue(invoice.CreatedAt),
		}
		if err := writeRow(file, sheet, row, values); err != nil {
			return nil, err
		}
	}

	_ = file.SetColWidth(sheet, "A", "C", 20)
	_ = file.SetColWidth(sheet, "D", "D", 32)
	_ = file.SetColWidth(sheet, "E", "I", 16)

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHeaders(file *excelize.File, sheet string, headers []string) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(file *excelize.File, sheet string, row int, values []interface{}) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

func floatValue(value *float64) interface{} {
	if value == nil {
		return ""
	}
	return *value
}

func textValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
