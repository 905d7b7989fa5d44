package attendanceapimodels

import (
	"time"

	"employee-management-backend/lib/utils/helpers"
	apimodels "employee-management-backend/models/api"
	dbmodels "employee-management-backend/models/db"
)

type CheckInRequest struct {
	Encoding  []float64 `json:"encoding"` // вектор лица, рассчитанный на клиенте
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	Notes     string    `json:"notes"`
}

type CheckOutRequest struct {
	Notes string `json:"notes"`
}

type AttendanceView struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	EmployeeName string     `json:"employee_name"`
	Date         string     `json:"date"`
	CheckIn      time.Time  `json:"check_in"`
	CheckOut     *time.Time `json:"check_out"`
	Late         bool       `json:"late"`
	WorkMinutes  int        `json:"work_minutes"`
	FaceVerified bool       `json:"face_verified"`
	FaceDistance *float64   `json:"face_distance"`
	HasPhoto     bool       `json:"has_photo"`
	Latitude     *float64   `json:"latitude"`
	Longitude    *float64   `json:"longitude"`
	Notes        string     `json:"notes"`
}

type AttendanceFilter struct {
	apimodels.Pagination
	EmployeeID string `query:"employee_id"`
	DivisionID string `query:"division_id"`
	DateFrom   string `query:"date_from"` // ГГГГ-ММ-ДД
	DateTo     string `query:"date_to"`   // ГГГГ-ММ-ДД
	Late       *bool  `query:"late"`
}

func AttendanceConvert(rec dbmodels.Attendance, late bool) AttendanceView {
	result := AttendanceView{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		Date:         helpers.FormatDate(&rec.Date),
		CheckIn:      rec.CheckIn,
		CheckOut:     rec.CheckOut,
		Late:         late,
		FaceVerified: rec.FaceVerified,
		FaceDistance: rec.FaceDistance,
		HasPhoto:     rec.PhotoKey != "",
		Latitude:     rec.Latitude,
		Longitude:    rec.Longitude,
		Notes:        rec.Notes,
	}
	if rec.Employee != nil {
		result.EmployeeName = rec.Employee.GetFullName()
	}
	if rec.CheckOut != nil {
		result.WorkMinutes = int(rec.CheckOut.Sub(rec.CheckIn).Minutes())
	}
	return result
}
