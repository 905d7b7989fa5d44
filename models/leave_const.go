package models

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

var leaveStatusHumanName = map[LeaveStatus]string{
	LeavePending:  "На согласовании",
	LeaveApproved: "Согласовано",
	LeaveRejected: "Отклонено",
}

func (s LeaveStatus) ToHuman() string {
	if human, exist := leaveStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s LeaveStatus) IsValid() bool {
	_, ok := leaveStatusHumanName[s]
	return ok
}

// AllowDecision решение принимается только по заявке на согласовании,
// из approved/rejected переходов нет
func (s LeaveStatus) AllowDecision() bool {
	return s == LeavePending
}

func (s LeaveStatus) AllowEdit() bool {
	return s == LeavePending
}

type LeaveType string

const (
	AnnualLeave LeaveType = "annual"
	SickLeave   LeaveType = "sick"
	UnpaidLeave LeaveType = "unpaid"
	OtherLeave  LeaveType = "other"
)

var leaveTypeHumanName = map[LeaveType]string{
	AnnualLeave: "Ежегодный отпуск",
	SickLeave:   "Больничный",
	UnpaidLeave: "Отпуск без сохранения",
	OtherLeave:  "Другое",
}

func (t LeaveType) ToHuman() string {
	if human, exist := leaveTypeHumanName[t]; exist {
		return human
	}
	return string(t)
}

func (t LeaveType) IsValid() bool {
	_, ok := leaveTypeHumanName[t]
	return ok
}

type LeaveAction string

const (
	LeaveActionCreated  LeaveAction = "CREATED"
	LeaveActionUpdated  LeaveAction = "UPDATED"
	LeaveActionApproved LeaveAction = "APPROVED"
	LeaveActionRejected LeaveAction = "REJECTED"
	LeaveActionDeleted  LeaveAction = "DELETED"
)
