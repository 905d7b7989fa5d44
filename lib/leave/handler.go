package leaveprovider

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"employee-management-backend/config"
	"employee-management-backend/db"
	"employee-management-backend/lib/approval"
	employeestore "employee-management-backend/lib/employee/store"
	pdfexport "employee-management-backend/lib/export/pdf"
	xlsexport "employee-management-backend/lib/export/xls"
	leavehistorystore "employee-management-backend/lib/leave/history-store"
	"employee-management-backend/lib/leave/store"
	pushhandler "employee-management-backend/lib/notification"
	apperrors "employee-management-backend/lib/utils/app-errors"
	"employee-management-backend/lib/utils/helpers"
	initchecker "employee-management-backend/lib/utils/init-checker"
	"employee-management-backend/lib/utils/lock"
	"employee-management-backend/models"
	leaveapimodels "employee-management-backend/models/api/leave"
	dbmodels "employee-management-backend/models/db"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(actor approval.Actor, request leaveapimodels.LeaveData) (id string, err error)
	Update(actor approval.Actor, id string, request leaveapimodels.LeaveData) error
	Patch(actor approval.Actor, id string, request leaveapimodels.LeavePatch) error
	Delete(actor approval.Actor, id string) error
	Approve(actor approval.Actor, id string, request leaveapimodels.LeaveDecision) error
	Reject(actor approval.Actor, id string, request leaveapimodels.LeaveDecision) error
	Get(actor approval.Actor, id string) (item leaveapimodels.LeaveView, err error)
	List(filter leaveapimodels.LeaveFilter, visibility models.Visibility) (list []leaveapimodels.LeaveView, rowCount int64, err error)
	History(actor approval.Actor, id string) (list []leaveapimodels.LeaveHistoryView, err error)
	Balance(visibility models.Visibility, employeeID string, year int) (balance leaveapimodels.LeaveBalance, err error)
	Letter(actor approval.Actor, id string) (pdf []byte, fileName string, err error)
	Report(ctx context.Context, filter leaveapimodels.LeaveFilter, visibility models.Visibility) (*bytes.Buffer, error)
	GetRbacFlowAllow() models.RbacFunc
}

var Instance Provider

const leaveLockWait = 5 * time.Second

func NewHandler() {
	instance := impl{
		store:         store.NewInstance(db.DB),
		historyStore:  leavehistorystore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		notifier:      pushhandler.Instance,
		xls:           xlsexport.Instance,
		policy: Policy{
			MinTenureMonths: config.Conf.Leave.MinTenureMonths,
			AnnualQuotaDays: config.Conf.Leave.AnnualQuotaDays,
		},
		companyName: config.Conf.App.CompanyName,
		loc:         config.Location(),
		now:         time.Now,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"historyStore", instance.historyStore,
		"employeeStore", instance.employeeStore,
		"notifier", instance.notifier,
		"xls", instance.xls,
	)
	Instance = instance
}

type impl struct {
	store         store.Provider
	historyStore  leavehistorystore.Provider
	employeeStore employeestore.Provider
	notifier      pushhandler.Provider
	xls           xlsexport.Provider
	policy        Policy
	companyName   string
	loc           *time.Location
	now           func() time.Time
}

func (i impl) Create(actor approval.Actor, request leaveapimodels.LeaveData) (id string, err error) {
	logger := log.WithField("user_id", actor.ID)
	employeeID := request.EmployeeID
	if employeeID == "" {
		employeeID = actor.ID
	}
	if employeeID != actor.ID && !actor.Role.IsHR() {
		return "", apperrors.Forbidden("оформить заявку за другого сотрудника может только HR")
	}
	employee, err := i.employeeStore.GetByID(employeeID)
	if err != nil {
		return "", err
	}
	if employee == nil || employee.IsDeleted() {
		return "", apperrors.ValidationFields(map[string]string{"employee_id": "сотрудник не найден"})
	}
	start, end, err := parsePeriod(request.StartDate, request.EndDate)
	if err != nil {
		return "", err
	}
	err = i.policy.CheckEligibility(*employee, i.now().In(i.loc))
	if err != nil {
		return "", err
	}
	rec := dbmodels.Leave{
		EmployeeID: employeeID,
		LeaveType:  request.LeaveType,
		StartDate:  start,
		EndDate:    end,
		TotalDays:  dbmodels.LeaveDays(start, end),
		Reason:     strings.TrimSpace(request.Reason),
		Status:     models.LeavePending,
	}
	err = i.withEmployeeLock(employeeID, func() error {
		err := i.checkPeriod(employeeID, "", request.LeaveType, start, end)
		if err != nil {
			return err
		}
		id, err = i.store.Create(rec)
		return err
	})
	if err != nil {
		return "", err
	}
	logger = logger.WithField("rec_id", id)
	logger.Info("создана заявка на отпуск")
	i.saveHistory(logger, id, actor.ID, models.LeaveActionCreated, models.LeavePending, "", dbmodels.EntityChanges{})

	requester := requesterOf(*employee)
	if requester.DivisionManagerID != "" && requester.DivisionManagerID != employee.ID {
		msg := fmt.Sprintf("%s: %s, %s - %s (%d дн.)", employee.GetFullName(), rec.LeaveType.ToHuman(),
			helpers.FormatDate(&start), helpers.FormatDate(&end), rec.TotalDays)
		i.notifier.SendNotification(requester.DivisionManagerID, models.LeaveCreatedNotification, msg)
	}
	return id, nil
}

func (i impl) Update(actor approval.Actor, id string, request leaveapimodels.LeaveData) error {
	return i.Patch(actor, id, request.FullPatch())
}

func (i impl) Patch(actor approval.Actor, id string, request leaveapimodels.LeavePatch) error {
	rec, _, err := i.getLeave(id)
	if err != nil {
		return err
	}
	return i.withEmployeeLock(rec.EmployeeID, func() error {
		return i.patch(actor, id, request)
	})
}

func (i impl) patch(actor approval.Actor, id string, request leaveapimodels.LeavePatch) error {
	logger := log.
		WithField("user_id", actor.ID).
		WithField("rec_id", id)
	rec, requester, err := i.getLeave(id)
	if err != nil {
		return err
	}
	err = checkEditable(actor, *rec, requester)
	if err != nil {
		return err
	}
	leaveType := rec.LeaveType
	if request.LeaveType != nil {
		leaveType = *request.LeaveType
	}
	startValue := helpers.FormatDate(&rec.StartDate)
	if request.StartDate != nil {
		startValue = *request.StartDate
	}
	endValue := helpers.FormatDate(&rec.EndDate)
	if request.EndDate != nil {
		endValue = *request.EndDate
	}
	start, end, err := parsePeriod(startValue, endValue)
	if err != nil {
		return err
	}
	err = i.checkPeriod(rec.EmployeeID, rec.ID, leaveType, start, end)
	if err != nil {
		return err
	}
	changes := dbmodels.EntityChanges{}
	updMap := map[string]interface{}{}
	if leaveType != rec.LeaveType {
		updMap["leave_type"] = leaveType
		changes.Add("leave_type", rec.LeaveType, leaveType)
	}
	if !start.Equal(rec.StartDate) || !end.Equal(rec.EndDate) {
		updMap["start_date"] = start
		updMap["end_date"] = end
		updMap["total_days"] = dbmodels.LeaveDays(start, end)
		changes.Add("start_date", helpers.FormatDate(&rec.StartDate), helpers.FormatDate(&start))
		changes.Add("end_date", helpers.FormatDate(&rec.EndDate), helpers.FormatDate(&end))
	}
	if request.Reason != nil && strings.TrimSpace(*request.Reason) != rec.Reason {
		updMap["reason"] = strings.TrimSpace(*request.Reason)
		changes.Add("reason", rec.Reason, updMap["reason"])
	}
	if len(updMap) == 0 {
		return nil
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		return err
	}
	logger.Info("изменена заявка на отпуск")
	i.saveHistory(logger, id, actor.ID, models.LeaveActionUpdated, rec.Status, "", changes)
	return nil
}

// Delete отзыв заявки на согласовании
func (i impl) Delete(actor approval.Actor, id string) error {
	logger := log.
		WithField("user_id", actor.ID).
		WithField("rec_id", id)
	rec, requester, err := i.getLeave(id)
	if err != nil {
		return err
	}
	err = checkEditable(actor, *rec, requester)
	if err != nil {
		return err
	}
	err = i.store.Delete(id)
	if err != nil {
		return err
	}
	logger.Info("заявка на отпуск отозвана")
	i.saveHistory(logger, id, actor.ID, models.LeaveActionDeleted, rec.Status, "", dbmodels.EntityChanges{})
	return nil
}

func (i impl) Approve(actor approval.Actor, id string, request leaveapimodels.LeaveDecision) error {
	return i.decide(actor, id, models.LeaveApproved, strings.TrimSpace(request.Comment))
}

func (i impl) Reject(actor approval.Actor, id string, request leaveapimodels.LeaveDecision) error {
	comment := strings.TrimSpace(request.Comment)
	if comment == "" {
		return apperrors.ValidationFields(map[string]string{"comment": "не указана причина отклонения"})
	}
	return i.decide(actor, id, models.LeaveRejected, comment)
}

func (i impl) decide(actor approval.Actor, id string, status models.LeaveStatus, comment string) error {
	rec, _, err := i.getLeave(id)
	if err != nil {
		return err
	}
	return i.withEmployeeLock(rec.EmployeeID, func() error {
		return i.decideLocked(actor, id, status, comment)
	})
}

// decideLocked проверка лимита и смена статуса под блокировкой заявок сотрудника
func (i impl) decideLocked(actor approval.Actor, id string, status models.LeaveStatus, comment string) error {
	logger := log.
		WithField("user_id", actor.ID).
		WithField("rec_id", id).
		WithField("leave_status", status)
	rec, requester, err := i.getLeave(id)
	if err != nil {
		return err
	}
	if !rec.Status.AllowDecision() {
		return apperrors.Conflict(fmt.Sprintf("заявка уже рассмотрена: %s", rec.Status.ToHuman()))
	}
	if !approval.CanDecide(actor, requester) {
		return apperrors.Forbidden("нет права решения по заявке")
	}
	if status == models.LeaveApproved {
		approvedByYear, err := i.approvedAnnual(rec.EmployeeID, rec.StartDate, rec.EndDate)
		if err != nil {
			return err
		}
		err = i.policy.CheckQuota(rec.LeaveType, rec.StartDate, rec.EndDate, approvedByYear)
		if err != nil {
			return err
		}
	}
	now := i.now()
	updMap := map[string]interface{}{
		"status":           status,
		"decided_by_id":    actor.ID,
		"decided_at":       now,
		"decision_comment": comment,
	}
	ok, err := i.store.Decide(id, updMap)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Conflict("заявка уже рассмотрена")
	}
	logger.Info("решение по заявке на отпуск")

	action := models.LeaveActionApproved
	code := models.LeaveApprovedNotification
	if status == models.LeaveRejected {
		action = models.LeaveActionRejected
		code = models.LeaveRejectedNotification
	}
	changes := dbmodels.EntityChanges{}
	changes.Add("status", rec.Status, status)
	i.saveHistory(logger, id, actor.ID, action, status, comment, changes)

	if status == models.LeaveApproved && rec.Covers(helpers.Today(now, i.loc)) &&
		rec.Employee != nil && rec.Employee.Status == models.EmployeeActiveStatus {
		err = i.employeeStore.SetStatus([]string{rec.EmployeeID}, models.EmployeeOnLeaveStatus)
		if err != nil {
			logger.WithError(err).Error("ошибка перевода сотрудника в статус отпуска")
		}
	}

	msg := fmt.Sprintf("%s, %s - %s: %s", rec.LeaveType.ToHuman(),
		helpers.FormatDate(&rec.StartDate), helpers.FormatDate(&rec.EndDate), status.ToHuman())
	if comment != "" {
		msg += ". " + comment
	}
	i.notifier.SendNotification(rec.EmployeeID, code, msg)
	return nil
}

func (i impl) Get(actor approval.Actor, id string) (item leaveapimodels.LeaveView, err error) {
	rec, requester, err := i.getLeave(id)
	if err != nil {
		return item, err
	}
	if !approval.CanView(actor, requester) {
		return item, apperrors.Forbidden("нет доступа к заявке")
	}
	return leaveapimodels.LeaveConvert(*rec), nil
}

func (i impl) List(filter leaveapimodels.LeaveFilter, visibility models.Visibility) (list []leaveapimodels.LeaveView, rowCount int64, err error) {
	err = checkFilter(filter)
	if err != nil {
		return nil, 0, err
	}
	rowCount, err = i.store.ListCount(filter, visibility)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.List(filter, visibility)
	if err != nil {
		return nil, 0, err
	}
	list = make([]leaveapimodels.LeaveView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, leaveapimodels.LeaveConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) History(actor approval.Actor, id string) (list []leaveapimodels.LeaveHistoryView, err error) {
	_, err = i.Get(actor, id)
	if err != nil {
		return nil, err
	}
	recList, err := i.historyStore.List(id)
	if err != nil {
		return nil, err
	}
	list = make([]leaveapimodels.LeaveHistoryView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, leaveapimodels.LeaveHistoryConvert(rec))
	}
	return list, nil
}

func (i impl) Balance(visibility models.Visibility, employeeID string, year int) (balance leaveapimodels.LeaveBalance, err error) {
	if employeeID == "" {
		employeeID = visibility.EmployeeID
	}
	employee, err := i.employeeStore.GetByID(employeeID)
	if err != nil {
		return balance, err
	}
	if employee == nil {
		return balance, apperrors.NotFound("сотрудник не найден")
	}
	if !visibility.Allows(employee.ID, employee.DivisionID) {
		return balance, apperrors.Forbidden("нет доступа к сотруднику")
	}
	if year == 0 {
		year = helpers.Today(i.now(), i.loc).Year()
	}
	approved, err := i.store.ListInYear(employeeID, year, models.AnnualLeave, []models.LeaveStatus{models.LeaveApproved})
	if err != nil {
		return balance, err
	}
	pending, err := i.store.ListInYear(employeeID, year, models.AnnualLeave, []models.LeaveStatus{models.LeavePending})
	if err != nil {
		return balance, err
	}
	balance = leaveapimodels.LeaveBalance{
		EmployeeID:  employeeID,
		Year:        year,
		QuotaDays:   i.policy.AnnualQuotaDays,
		UsedDays:    UsedDays(approved, year),
		PendingDays: UsedDays(pending, year),
	}
	balance.RemainingDays = balance.QuotaDays - balance.UsedDays
	if balance.RemainingDays < 0 {
		balance.RemainingDays = 0
	}
	return balance, nil
}

var letterLeaveType = map[models.LeaveType]string{
	models.AnnualLeave: "Annual leave",
	models.SickLeave:   "Sick leave",
	models.UnpaidLeave: "Unpaid leave",
	models.OtherLeave:  "Other leave",
}

func (i impl) Letter(actor approval.Actor, id string) (pdf []byte, fileName string, err error) {
	rec, requester, err := i.getLeave(id)
	if err != nil {
		return nil, "", err
	}
	if !approval.CanView(actor, requester) {
		return nil, "", apperrors.Forbidden("нет доступа к заявке")
	}
	if rec.Status != models.LeaveApproved {
		return nil, "", apperrors.Validation("письмо доступно только для согласованной заявки")
	}
	number := "LV-" + strings.ToUpper(shortID(rec.ID))
	data := pdfexport.LetterData{
		CompanyName:   i.companyName,
		Number:        number,
		LeaveTypeName: letterLeaveType[rec.LeaveType],
		StartDate:     rec.StartDate,
		EndDate:       rec.EndDate,
		TotalDays:     rec.TotalDays,
		Comment:       rec.DecisionComment,
	}
	if rec.Employee != nil {
		data.EmployeeName = rec.Employee.GetFullName()
		data.EmployeeCode = rec.Employee.EmployeeID
		if rec.Employee.Division != nil {
			data.DivisionName = rec.Employee.Division.Name
		}
		if rec.Employee.Position != nil {
			data.PositionName = rec.Employee.Position.Name
		}
	}
	if rec.DecidedBy != nil {
		data.ApproverName = rec.DecidedBy.GetFullName()
	}
	if rec.DecidedAt != nil {
		data.DecidedAt = rec.DecidedAt.In(i.loc)
	}
	pdf, err = pdfexport.GenerateLeaveLetter(data)
	if err != nil {
		return nil, "", err
	}
	return pdf, number + ".pdf", nil
}

func (i impl) Report(ctx context.Context, filter leaveapimodels.LeaveFilter, visibility models.Visibility) (*bytes.Buffer, error) {
	err := checkFilter(filter)
	if err != nil {
		return nil, err
	}
	if filter.DivisionID != "" && !visibility.AllowsDivision(filter.DivisionID) {
		return nil, apperrors.Forbidden("нет доступа к подразделению")
	}
	if !lock.Export.Acquire(ctx) {
		return nil, ctx.Err()
	}
	defer lock.Export.Release()
	recList, err := i.store.ListAll(filter, visibility)
	if err != nil {
		return nil, err
	}
	list := make([]leaveapimodels.LeaveView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, leaveapimodels.LeaveConvert(rec))
	}
	return i.xls.ExportLeaves(list)
}

// GetRbacFlowAllow правило маршрутов approve/reject: решение только по матрице согласования
func (i impl) GetRbacFlowAllow() models.RbacFunc {
	return func(userID string, role models.UserRole, path string) bool {
		id := leaveIDFromPath(path)
		if id == "" {
			return false
		}
		rec, requester, err := i.getLeave(id)
		if err != nil {
			if !apperrors.Is(err, apperrors.KindNotFound) {
				log.WithError(err).WithField("leave_id", id).Error("ошибка проверки права решения по заявке")
			}
			// ошибку чтения и несуществующую заявку возвращает обработчик решения (500/404), права он проверяет повторно
			return true
		}
		if rec.EmployeeID == userID {
			return false
		}
		return approval.CanDecide(approval.Actor{ID: userID, Role: role}, requester)
	}
}

// withEmployeeLock проверки периода и запись заявок одного сотрудника идут по очереди
func (i impl) withEmployeeLock(employeeID string, safeCode func() error) error {
	success, err := lock.WithDelay(context.Background(), "leave:"+employeeID, leaveLockWait, safeCode)
	if err != nil {
		return err
	}
	if !success {
		return apperrors.Conflict("заявки сотрудника сейчас обрабатываются, повторите позже")
	}
	return nil
}

func (i impl) getLeave(id string) (*dbmodels.Leave, approval.Requester, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, approval.Requester{}, err
	}
	if rec == nil {
		return nil, approval.Requester{}, apperrors.NotFound("заявка на отпуск не найдена")
	}
	requester := approval.Requester{ID: rec.EmployeeID}
	if rec.Employee != nil {
		requester = requesterOf(*rec.Employee)
	}
	return rec, requester, nil
}

func (i impl) checkPeriod(employeeID, excludeID string, leaveType models.LeaveType, start, end time.Time) error {
	err := CheckPeriod(start, end)
	if err != nil {
		return err
	}
	overlapping, err := i.store.Overlapping(employeeID, start, end, excludeID)
	if err != nil {
		return err
	}
	err = CheckOverlap(overlapping)
	if err != nil {
		return err
	}
	approvedByYear, err := i.approvedAnnual(employeeID, start, end)
	if err != nil {
		return err
	}
	return i.policy.CheckQuota(leaveType, start, end, approvedByYear)
}

func (i impl) approvedAnnual(employeeID string, start, end time.Time) (map[int][]dbmodels.Leave, error) {
	result := map[int][]dbmodels.Leave{}
	for year := start.Year(); year <= end.Year(); year++ {
		list, err := i.store.ListInYear(employeeID, year, models.AnnualLeave, []models.LeaveStatus{models.LeaveApproved})
		if err != nil {
			return nil, err
		}
		result[year] = list
	}
	return result, nil
}

func (i impl) saveHistory(logger *log.Entry, leaveID, userID string, action models.LeaveAction, status models.LeaveStatus, comment string, changes dbmodels.EntityChanges) {
	rec := dbmodels.LeaveHistory{
		LeaveID:  leaveID,
		UserID:   userID,
		UserName: i.userName(userID),
		Action:   action,
		Status:   status,
		Comment:  comment,
		Changes:  changes,
	}
	_, err := i.historyStore.Create(rec)
	if err != nil {
		logger.WithError(err).Error("ошибка сохранения истории заявки")
	}
}

func (i impl) userName(userID string) string {
	user, err := i.employeeStore.GetByID(userID)
	if err != nil || user == nil {
		return models.SystemUser
	}
	return user.GetFullName()
}

func checkEditable(actor approval.Actor, rec dbmodels.Leave, requester approval.Requester) error {
	if !approval.CanView(actor, requester) {
		return apperrors.NotFound("заявка на отпуск не найдена")
	}
	if !approval.CanEdit(actor, requester) {
		return apperrors.Forbidden("изменить заявку может только автор или HR")
	}
	if !rec.Status.AllowEdit() {
		return apperrors.Conflict("изменить можно только заявку на согласовании")
	}
	return nil
}

func requesterOf(employee dbmodels.Employee) approval.Requester {
	result := approval.Requester{
		ID:         employee.ID,
		DivisionID: helpers.StrValue(employee.DivisionID),
	}
	if employee.Division != nil {
		result.DivisionManagerID = helpers.StrValue(employee.Division.ManagerID)
	}
	return result
}

func parsePeriod(startValue, endValue string) (start, end time.Time, err error) {
	start, err = helpers.ParseDate(startValue)
	if err != nil {
		return start, end, apperrors.ValidationFields(map[string]string{"start_date": err.Error()})
	}
	end, err = helpers.ParseDate(endValue)
	if err != nil {
		return start, end, apperrors.ValidationFields(map[string]string{"end_date": err.Error()})
	}
	return start, end, nil
}

func checkFilter(filter leaveapimodels.LeaveFilter) error {
	from, err := helpers.ParseOptionalDate(filter.DateFrom)
	if err != nil {
		return apperrors.ValidationFields(map[string]string{"date_from": err.Error()})
	}
	to, err := helpers.ParseOptionalDate(filter.DateTo)
	if err != nil {
		return apperrors.ValidationFields(map[string]string{"date_to": err.Error()})
	}
	if from != nil && to != nil && to.Before(*from) {
		return apperrors.ValidationFields(map[string]string{"date_to": "окончание периода раньше начала"})
	}
	return nil
}

// leaveIDFromPath /api/v1/leaves/{id}/approve
func leaveIDFromPath(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for idx, part := range parts {
		if part == "leaves" && idx+1 < len(parts) {
			return parts[idx+1]
		}
	}
	return ""
}

func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
