package employeeapimodels

import (
	"testing"
	"time"

	apperrors "employee-management-backend/lib/utils/app-errors"
	"employee-management-backend/models"
	dbmodels "employee-management-backend/models/db"

	"github.com/stretchr/testify/require"
)

func TestEmployeeDataValidate(t *testing.T) {
	t.Run(`minimal record`, func(t *testing.T) {
		require.NoError(t, EmployeeData{Email: "ivan@company.com", FirstName: "Ivan"}.Validate())
	})
	t.Run(`bad enums`, func(t *testing.T) {
		err := EmployeeData{
			Email:          "ivan@company.com",
			FirstName:      "Ivan",
			EmploymentType: "freelance",
			Role:           "ROOT",
		}.Validate()
		fields := apperrors.FieldErrors(err)
		require.Contains(t, fields, "employment_type")
		require.Contains(t, fields, "role")
	})
	t.Run(`patch with nil fields is valid`, func(t *testing.T) {
		require.NoError(t, EmployeePatch{}.Validate())
	})
	t.Run(`patch checks given phone`, func(t *testing.T) {
		phone := "123"
		require.Error(t, EmployeePatch{Phone: &phone}.Validate())
	})
}

func TestEmployeeConvert(t *testing.T) {
	hire := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	rec := dbmodels.Employee{
		FirstName: "Ivan",
		LastName:  "Petrov",
		HireDate:  &hire,
		Status:    models.EmployeeActiveStatus,
		Role:      models.EmployeeRole,
		IsActive:  true,
		Division:  &dbmodels.Division{Name: "Finance"},
	}
	t.Run(`before tenure`, func(t *testing.T) {
		view := EmployeeConvert(rec, time.Date(2024, 4, 14, 10, 0, 0, 0, time.UTC), 3)
		require.Equal(t, "Ivan Petrov", view.FullName)
		require.Equal(t, "Finance", view.DivisionName)
		require.Equal(t, "2024-01-15", view.HireDate)
		require.Equal(t, 2, view.TenureMonths)
		require.True(t, view.IsEmployed)
		require.False(t, view.LeaveEligible)
	})
	t.Run(`tenure reached`, func(t *testing.T) {
		view := EmployeeConvert(rec, time.Date(2024, 4, 15, 10, 0, 0, 0, time.UTC), 3)
		require.Equal(t, 3, view.TenureMonths)
		require.True(t, view.LeaveEligible)
	})
	t.Run(`terminated is not eligible`, func(t *testing.T) {
		terminated := rec
		terminated.Status = models.EmployeeTerminatedStatus
		view := EmployeeConvert(terminated, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 3)
		require.False(t, view.IsEmployed)
		require.False(t, view.LeaveEligible)
	})
}
