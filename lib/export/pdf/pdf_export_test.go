package pdfexport

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateLeaveLetter(t *testing.T) {
	data := LetterData{
		CompanyName:   "PT Contoh",
		Number:        "LV-0001",
		EmployeeName:  "Budi Santoso",
		EmployeeCode:  "EMP0001",
		LeaveTypeName: "Annual",
		StartDate:     time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC),
		TotalDays:     5,
		ApproverName:  "Siti Rahma",
		DecidedAt:     time.Date(2024, 6, 20, 10, 0, 0, 0, time.UTC),
	}
	pdf, err := GenerateLeaveLetter(data)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	require.Greater(t, len(pdf), 500)
}
