package pdfexport

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// LetterData данные письма о согласовании отпуска
type LetterData struct {
	CompanyName   string
	Number        string
	EmployeeName  string
	EmployeeCode  string
	DivisionName  string
	PositionName  string
	LeaveTypeName string
	StartDate     time.Time
	EndDate       time.Time
	TotalDays     int
	ApproverName  string
	DecidedAt     time.Time
	Comment       string
}

const letterDateLayout = "02 January 2006"

// GenerateLeaveLetter письмо формируется встроенным шрифтом, текст в cp1252
func GenerateLeaveLetter(data LetterData) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateLeaveLetter panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Leave approval letter "+data.Number, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(data.CompanyName), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr("No. "+data.Number), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, data.DecidedAt.Format(letterDateLayout), "", 1, "L", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "LEAVE APPROVAL LETTER", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	_, lineHt := pdf.GetFontSize()
	lineHt *= 1.6
	pdf.MultiCell(0, lineHt, tr("This letter confirms that the leave request of the employee below has been approved."), "", "L", false)
	pdf.Ln(2)

	rows := [][2]string{
		{"Employee", data.EmployeeName},
		{"Employee ID", data.EmployeeCode},
		{"Division", data.DivisionName},
		{"Position", data.PositionName},
		{"Leave type", data.LeaveTypeName},
		{"Period", fmt.Sprintf("%s - %s", data.StartDate.Format(letterDateLayout), data.EndDate.Format(letterDateLayout))},
		{"Total days", fmt.Sprintf("%d", data.TotalDays)},
	}
	if data.Comment != "" {
		rows = append(rows, [2]string{"Comment", data.Comment})
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, lineHt, tr(row[0]), "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, lineHt, tr(row[1]), "1", 1, "L", false, 0, "")
	}

	pdf.Ln(16)
	pdf.CellFormat(0, lineHt, "Approved by,", "", 1, "L", false, 0, "")
	pdf.Ln(14)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, lineHt, tr(data.ApproverName), "", 1, "L", false, 0, "")

	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования pdf")
	}
	return buf.Bytes(), nil
}
