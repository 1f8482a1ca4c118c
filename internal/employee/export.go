package employee

import (
	"fmt"
	"io"

	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/xuri/excelize/v2"
)

const (
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ExportSheet     = "Empleados"
)

var exportHeaders = []string{
	"ID", "Cédula", "Nombres", "Apellidos", "Email", "Teléfono",
	"Cargo", "Departamento", "Gerencia", "Supervisor",
	"Fecha de ingreso", "Estatus", "Contrato",
}

func exportRow(e *hr.EmployeeWithRelations) []interface{} {
	supervisor := ""
	if e.Supervisor != nil {
		supervisor = e.Supervisor.FullName()
	}
	contract := ""
	if e.Contract != nil {
		contract = string(e.Contract.Type)
	}
	return []interface{}{
		e.ID,
		e.User.Cedula,
		e.FirstName,
		e.LastName,
		e.Email,
		e.Phone,
		e.Cargo.Name,
		e.Cargo.Departamento.Name,
		e.Cargo.Departamento.Gerencia.Name,
		supervisor,
		e.StartDate.Format(hr.DateLayout),
		string(e.Status),
		contract,
	}
}

// WriteWorkbook renders employees as a one-sheet workbook: a bold header row
// followed by one row per employee.
func WriteWorkbook(w io.Writer, employees []*hr.EmployeeWithRelations) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(ExportSheet)
	if err != nil {
		return fmt.Errorf("open stream writer: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := sw.SetColWidth(1, len(exportHeaders), 18); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	header := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = excelize.Cell{Value: h, StyleID: headerStyle}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, e := range employees {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, exportRow(e)); err != nil {
			return fmt.Errorf("write row for employee %s: %w", e.ID, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
