package approval

import (
	"employee-management-backend/models"
)

// Level отношение согласующего к автору заявки, уровни упорядочены по возрастанию прав
type Level int

const (
	None Level = iota
	Self
	DivisionManager
	HRAdmin
)

var levelName = map[Level]string{
	None:            "NONE",
	Self:            "SELF",
	DivisionManager: "DIVISION_MANAGER",
	HRAdmin:         "HR_ADMIN",
}

func (l Level) String() string {
	return levelName[l]
}

type Actor struct {
	ID   string
	Role models.UserRole
}

type Requester struct {
	ID                string
	DivisionID        string
	DivisionManagerID string // руководитель подразделения автора, пусто если не назначен
}

func Resolve(approver Actor, requester Requester) Level {
	if approver.ID == "" {
		return None
	}
	if approver.Role.IsHR() {
		return HRAdmin
	}
	if approver.ID == requester.ID {
		return Self
	}
	if requester.DivisionManagerID != "" && approver.ID == requester.DivisionManagerID {
		return DivisionManager
	}
	return None
}

// CanDecide согласовать или отклонить, свою заявку не решает никто, включая HR
func CanDecide(approver Actor, requester Requester) bool {
	if approver.ID == requester.ID {
		return false
	}
	return Resolve(approver, requester) >= DivisionManager
}

// CanEdit изменить или отозвать заявку на согласовании
func CanEdit(approver Actor, requester Requester) bool {
	level := Resolve(approver, requester)
	return level == Self || level == HRAdmin
}

func CanView(approver Actor, requester Requester) bool {
	return Resolve(approver, requester) > None
}
