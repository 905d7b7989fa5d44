package models

import "slices"

// Visibility какие записи сотрудников доступны пользователю
type Visibility struct {
	All         bool     // HR, все подразделения
	DivisionIDs []string // подразделения под управлением
	EmployeeID  string   // свои записи
}

func NewVisibility(userID string, role UserRole, managedDivisionIDs []string) Visibility {
	if role.IsHR() {
		return Visibility{All: true, EmployeeID: userID}
	}
	result := Visibility{EmployeeID: userID}
	if role.IsManager() {
		result.DivisionIDs = managedDivisionIDs
	}
	return result
}

func (v Visibility) Allows(employeeID string, divisionID *string) bool {
	if v.All || employeeID == v.EmployeeID {
		return true
	}
	return divisionID != nil && slices.Contains(v.DivisionIDs, *divisionID)
}

func (v Visibility) AllowsDivision(divisionID string) bool {
	return v.All || slices.Contains(v.DivisionIDs, divisionID)
}
