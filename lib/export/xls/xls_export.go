package xlsexport

import (
	"bytes"
	"time"

	"employee-management-backend/lib/utils/helpers"
	attendanceapimodels "employee-management-backend/models/api/attendance"
	leaveapimodels "employee-management-backend/models/api/leave"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportAttendance(list []attendanceapimodels.AttendanceView, loc *time.Location) (*bytes.Buffer, error)
	ExportLeaves(list []leaveapimodels.LeaveView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const (
	AttendanceSheet = "Посещаемость"
	LeaveSheet      = "Отпуска"
	defaultSheet    = "Sheet1"
)

var attendanceColumns = []column{
	{"Дата", 12},
	{"Сотрудник", 30},
	{"Приход", 10},
	{"Уход", 10},
	{"Опоздание", 12},
	{"Отработано, мин", 16},
	{"Лицо подтверждено", 18},
	{"Комментарий", 40},
}

var leaveColumns = []column{
	{"Сотрудник", 30},
	{"Тип", 22},
	{"Начало", 12},
	{"Окончание", 12},
	{"Дней", 8},
	{"Статус", 18},
	{"Решение принял", 30},
	{"Причина", 40},
	{"Комментарий решения", 40},
}

func (i impl) ExportAttendance(list []attendanceapimodels.AttendanceView, loc *time.Location) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer closeFile(f)
	row, err := writeHeader(f, defaultSheet, 0, attendanceColumns)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		if err = applyDataCellStyle(f, defaultSheet, 1, row+1, len(attendanceColumns), row+len(list)); err != nil {
			return nil, errors.Wrap(err, "ошибка оформления таблицы в xlsx")
		}
		for _, item := range list {
			row++
			day, _ := helpers.ParseDate(item.Date)
			checkIn := item.CheckIn
			err = writeRow(f, defaultSheet, row,
				formatDay(day),
				item.EmployeeName,
				formatClock(&checkIn, loc),
				formatClock(item.CheckOut, loc),
				yesNo(item.Late),
				item.WorkMinutes,
				yesNo(item.FaceVerified),
				item.Notes,
			)
			if err != nil {
				return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
			}
		}
	}
	if err = f.SetSheetName(defaultSheet, AttendanceSheet); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа xlsx")
	}
	return f.WriteToBuffer()
}

func (i impl) ExportLeaves(list []leaveapimodels.LeaveView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer closeFile(f)
	row, err := writeHeader(f, defaultSheet, 0, leaveColumns)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		if err = applyDataCellStyle(f, defaultSheet, 1, row+1, len(leaveColumns), row+len(list)); err != nil {
			return nil, errors.Wrap(err, "ошибка оформления таблицы в xlsx")
		}
		for _, item := range list {
			row++
			start, _ := helpers.ParseDate(item.StartDate)
			end, _ := helpers.ParseDate(item.EndDate)
			err = writeRow(f, defaultSheet, row,
				item.EmployeeName,
				item.LeaveTypeName,
				formatDay(start),
				formatDay(end),
				item.TotalDays,
				item.StatusName,
				item.DecidedByName,
				item.Reason,
				item.DecisionComment,
			)
			if err != nil {
				return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
			}
		}
	}
	if err = f.SetSheetName(defaultSheet, LeaveSheet); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа xlsx")
	}
	return f.WriteToBuffer()
}

func closeFile(f *excelize.File) {
	if err := f.Close(); err != nil {
		log.WithError(err).Error("ошибка закрытия файла")
	}
}
