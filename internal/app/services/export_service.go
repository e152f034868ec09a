package services

import (
	"context"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"

	"github.com/dparedes/leagueadmin/internal/app/models"
	"github.com/dparedes/leagueadmin/internal/app/models/dto"
)

// ExportService renders student and motion listings as downloadable files
type ExportService interface {
	StudentsExcel(ctx context.Context, filter *dto.StudentFilter, w io.Writer) error
	StudentsPDF(ctx context.Context, filter *dto.StudentFilter, w io.Writer) error
	MotionsExcel(ctx context.Context, filter *dto.MotionFilter, w io.Writer) error
}

// exportServiceImpl implements the ExportService interface
type exportServiceImpl struct {
	students StudentService
	motions  MotionService
}

// NewExportService creates a new export service instance
func NewExportService(students StudentService, motions MotionService) ExportService {
	return &exportServiceImpl{
		students: students,
		motions:  motions,
	}
}

func enabledLabel(enabled bool) string {
	if enabled {
		return "Sí"
	}
	return "No"
}

// StudentsExcel writes the filtered student roster as an xlsx workbook
func (s *exportServiceImpl) StudentsExcel(ctx context.Context, filter *dto.StudentFilter, w io.Writer) error {
	students, err := s.students.GetAllStudents(ctx, filter)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Alumnos"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Nombre", "Apellido", "DNI", "Fecha de Nacimiento", "Dirección", "Madre", "Padre", "Teléfono Madre", "Teléfono Padre", "Email", "Categoría", "Escuela", "Sexo", "Estado", "Habilitado"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, student := range students {
		row := i + 2
		email := ""
		if student.Email != nil {
			email = *student.Email
		}
		values := []interface{}{
			student.Name, student.LastName, student.DNI, student.BirthDate,
			student.Address, student.MotherName, student.FatherName,
			student.MotherPhone, student.FatherPhone, email,
			student.Category, student.School, string(student.Sex),
			string(student.Status), enabledLabel(student.IsEnabled),
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// StudentsPDF writes the filtered student roster as a landscape PDF table
func (s *exportServiceImpl) StudentsPDF(ctx context.Context, filter *dto.StudentFilter, w io.Writer) error {
	students, err := s.students.GetAllStudents(ctx, filter)
	if err != nil {
		return err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Listado de alumnos", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Listado de alumnos", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	headers := []struct {
		label string
		width float64
	}{
		{"Nombre", 30},
		{"Apellido", 30},
		{"DNI", 25},
		{"Nacimiento", 25},
		{"Categoría", 25},
		{"Escuela", 45},
		{"Sexo", 22},
		{"Estado", 22},
		{"Habilitado", 22},
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, h := range headers {
		pdf.CellFormat(h.width, 8, h.label, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, student := range students {
		cells := []string{
			student.Name, student.LastName, student.DNI, student.BirthDate,
			student.Category, student.School, string(student.Sex),
			string(student.Status), enabledLabel(student.IsEnabled),
		}
		for i, value := range cells {
			pdf.CellFormat(headers[i].width, 7, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

// MotionsExcel writes the filtered cash ledger as an xlsx workbook
func (s *exportServiceImpl) MotionsExcel(ctx context.Context, filter *dto.MotionFilter, w io.Writer) error {
	motions, err := s.motions.GetMotions(ctx, filter)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Movimientos"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Concepto", "Fecha", "Monto", "Método de Pago", "Tipo", "Sede"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	var totalIn, totalOut float64
	for i, motion := range motions {
		row := i + 2
		values := []interface{}{
			motion.Concept,
			motion.Date.Format("02/01/2006"),
			motion.Amount,
			string(motion.PaymentMethod),
			string(motion.IncomeType),
			motion.Location,
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheetName, cell, value)
		}
		if motion.IncomeType == models.IncomeIn {
			totalIn += motion.Amount
		} else {
			totalOut += motion.Amount
		}
	}

	summaryRow := len(motions) + 3
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "Total ingresos")
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", summaryRow), totalIn)
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow+1), "Total egresos")
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", summaryRow+1), totalOut)
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow+2), "Balance")
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", summaryRow+2), totalIn-totalOut)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
