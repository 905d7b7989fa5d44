package xlsexport

import (
	"testing"
	"time"

	attendanceapimodels "employee-management-backend/models/api/attendance"
	leaveapimodels "employee-management-backend/models/api/leave"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportAttendance(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	checkIn := time.Date(2024, 6, 3, 2, 15, 0, 0, time.UTC)
	checkOut := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	list := []attendanceapimodels.AttendanceView{
		{
			Date:         "2024-06-03",
			EmployeeName: "Budi Santoso",
			CheckIn:      checkIn,
			CheckOut:     &checkOut,
			Late:         true,
			WorkMinutes:  465,
			FaceVerified: true,
		},
	}
	buf, err := impl{}.ExportAttendance(list, loc)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(AttendanceSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Дата", rows[0][0])
	require.Equal(t, []string{"03.06.2024", "Budi Santoso", "09:15", "17:00", "да", "465", "да"}, rows[1][:7])
}

func TestExportLeavesEmpty(t *testing.T) {
	buf, err := impl{}.ExportLeaves([]leaveapimodels.LeaveView{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(LeaveSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], len(leaveColumns))
}

func TestExportLeaves(t *testing.T) {
	list := []leaveapimodels.LeaveView{
		{EmployeeName: "Siti", LeaveTypeName: "Ежегодный отпуск", StartDate: "2024-07-01", EndDate: "2024-07-05", TotalDays: 5, StatusName: "Согласовано"},
	}
	buf, err := impl{}.ExportLeaves(list)
	require.NoError(t, err)
	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(LeaveSheet)
	require.NoError(t, err)
	require.Equal(t, []string{"Siti", "Ежегодный отпуск", "01.07.2024", "05.07.2024", "5", "Согласовано"}, rows[1][:6])
}
