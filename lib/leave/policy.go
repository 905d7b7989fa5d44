package leaveprovider

import (
	"fmt"
	"time"

	apperrors "employee-management-backend/lib/utils/app-errors"
	"employee-management-backend/models"
	dbmodels "employee-management-backend/models/db"
)

// Policy правила оформления отпусков
type Policy struct {
	MinTenureMonths int
	AnnualQuotaDays int
}

func (p Policy) CheckEligibility(employee dbmodels.Employee, now time.Time) error {
	if !employee.IsEmployed() {
		return apperrors.Validation("сотрудник не числится в штате")
	}
	if !employee.LeaveEligible(now, p.MinTenureMonths) {
		return apperrors.Validation(fmt.Sprintf("отпуск доступен после %d мес. работы", p.MinTenureMonths))
	}
	return nil
}

func CheckPeriod(start, end time.Time) error {
	if end.Before(start) {
		return apperrors.ValidationFields(map[string]string{"end_date": "дата окончания раньше даты начала"})
	}
	return nil
}

func CheckOverlap(existed []dbmodels.Leave) error {
	if len(existed) == 0 {
		return nil
	}
	rec := existed[0]
	return apperrors.Conflict(fmt.Sprintf("период пересекается с заявкой %s - %s (%s)",
		rec.StartDate.Format(time.DateOnly), rec.EndDate.Format(time.DateOnly), rec.Status.ToHuman()))
}

// DaysInYear дней периода, приходящихся на год
func DaysInYear(start, end time.Time, year int) int {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	from := dbmodels.DateOf(start)
	to := dbmodels.DateOf(end)
	if from.Before(yearStart) {
		from = yearStart
	}
	if to.After(yearEnd) {
		to = yearEnd
	}
	if to.Before(from) {
		return 0
	}
	return dbmodels.LeaveDays(from, to)
}

func UsedDays(list []dbmodels.Leave, year int) int {
	days := 0
	for _, rec := range list {
		days += DaysInYear(rec.StartDate, rec.EndDate, year)
	}
	return days
}

// CheckQuota ежегодный отпуск в каждом году периода не больше остатка квоты;
// approvedByYear согласованные ежегодные отпуска по годам периода
func (p Policy) CheckQuota(leaveType models.LeaveType, start, end time.Time, approvedByYear map[int][]dbmodels.Leave) error {
	if leaveType != models.AnnualLeave {
		return nil
	}
	for year := start.Year(); year <= end.Year(); year++ {
		used := UsedDays(approvedByYear[year], year)
		requested := DaysInYear(start, end, year)
		if used+requested > p.AnnualQuotaDays {
			remaining := p.AnnualQuotaDays - used
			if remaining < 0 {
				remaining = 0
			}
			return apperrors.ValidationFields(map[string]string{
				"end_date": fmt.Sprintf("превышен лимит ежегодного отпуска за %d год, доступно дней: %d", year, remaining),
			})
		}
	}
	return nil
}
