package rbac

import (
	"employee-management-backend/models"
)

var (
	HrRoleSet        = []models.UserRole{models.SuperAdminRole, models.HRAdminRole}
	HrManagerRoleSet = []models.UserRole{models.SuperAdminRole, models.HRAdminRole, models.ManagerRole}
	AllRoles         = []models.UserRole{models.SuperAdminRole, models.HRAdminRole, models.ManagerRole, models.EmployeeRole}
)

func (i *impl) mustRegister(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) {
	if err := i.RegisterRule(module, permission, roles, swaggerPattern, handler); err != nil {
		panic(err.Error())
	}
}

func (i *impl) initRules(flowAllow models.RbacFunc) {
	i.profile()
	i.divisions()
	i.positions()
	i.employees()
	i.attendance()
	i.leaves(flowAllow)
	i.dashboard()
}

func (i *impl) profile() {
	i.mustRegister(models.ProfileModule, models.EditPermission, AllRoles, "/api/v1/auth/profile [get]", nil)
	i.mustRegister(models.ProfileModule, models.EditPermission, AllRoles, "/api/v1/auth/profile [put]", nil)
	i.mustRegister(models.ProfileModule, models.EditPermission, AllRoles, "/api/v1/auth/change_password [put]", nil)
	i.mustRegister(models.ProfileModule, models.ViewPermission, AllRoles, "/api/v1/auth/permissions [get]", nil)
}

func (i *impl) divisions() {
	//VIEW
	i.mustRegister(models.DivisionsModule, models.ViewPermission, AllRoles, "/api/v1/divisions [get]", nil)
	i.mustRegister(models.DivisionsModule, models.ViewPermission, AllRoles, "/api/v1/divisions/{id} [get]", nil)
	i.mustRegister(models.DivisionsModule, models.ViewPermission, HrManagerRoleSet, "/api/v1/divisions/{id}/statistics [get]", nil)
	i.mustRegister(models.DivisionsModule, models.ViewPermission, HrManagerRoleSet, "/api/v1/divisions/{id}/employees [get]", nil)
	//MANAGE
	i.mustRegister(models.DivisionsModule, models.ManagePermission, HrRoleSet, "/api/v1/divisions [post]", nil)
	i.mustRegister(models.DivisionsModule, models.ManagePermission, HrRoleSet, "/api/v1/divisions/{id} [put]", nil)
	i.mustRegister(models.DivisionsModule, models.ManagePermission, HrRoleSet, "/api/v1/divisions/{id} [patch]", nil)
	i.mustRegister(models.DivisionsModule, models.ManagePermission, HrRoleSet, "/api/v1/divisions/{id} [delete]", nil)
}

func (i *impl) positions() {
	//VIEW
	i.mustRegister(models.PositionsModule, models.ViewPermission, AllRoles, "/api/v1/positions [get]", nil)
	i.mustRegister(models.PositionsModule, models.ViewPermission, AllRoles, "/api/v1/positions/{id} [get]", nil)
	//MANAGE
	i.mustRegister(models.PositionsModule, models.ManagePermission, HrRoleSet, "/api/v1/positions [post]", nil)
	i.mustRegister(models.PositionsModule, models.ManagePermission, HrRoleSet, "/api/v1/positions/{id} [put]", nil)
	i.mustRegister(models.PositionsModule, models.ManagePermission, HrRoleSet, "/api/v1/positions/{id} [patch]", nil)
	i.mustRegister(models.PositionsModule, models.ManagePermission, HrRoleSet, "/api/v1/positions/{id} [delete]", nil)
}

func (i *impl) employees() {
	//VIEW видимость записей ограничивается в обработчике
	i.mustRegister(models.EmployeesModule, models.ViewPermission, AllRoles, "/api/v1/employees [get]", nil)
	i.mustRegister(models.EmployeesModule, models.ViewPermission, AllRoles, "/api/v1/employees/{id} [get]", nil)
	//MANAGE
	i.mustRegister(models.EmployeesModule, models.ManagePermission, HrRoleSet, "/api/v1/employees [post]", nil)
	i.mustRegister(models.EmployeesModule, models.ManagePermission, HrRoleSet, "/api/v1/employees/{id} [put]", nil)
	i.mustRegister(models.EmployeesModule, models.ManagePermission, HrRoleSet, "/api/v1/employees/{id} [patch]", nil)
	i.mustRegister(models.EmployeesModule, models.ManagePermission, HrRoleSet, "/api/v1/employees/{id} [delete]", nil)
	i.mustRegister(models.EmployeesModule, models.ManagePermission, HrRoleSet, "/api/v1/employees/{id}/restore [put]", nil)
	i.mustRegister(models.EmployeesModule, models.ManagePermission, HrRoleSet, "/api/v1/employees/{id}/face [post]", nil)
}

func (i *impl) attendance() {
	//CREATE
	i.mustRegister(models.AttendanceModule, models.CreatePermission, AllRoles, "/api/v1/attendance/check_in [post]", nil)
	i.mustRegister(models.AttendanceModule, models.CreatePermission, AllRoles, "/api/v1/attendance/check_out [post]", nil)
	//VIEW
	i.mustRegister(models.AttendanceModule, models.ViewPermission, AllRoles, "/api/v1/attendance [get]", nil)
	i.mustRegister(models.AttendanceModule, models.ViewPermission, AllRoles, "/api/v1/attendance/{id} [get]", nil)
	//EXPORT
	i.mustRegister(models.ReportsModule, models.ExportPermission, HrManagerRoleSet, "/api/v1/attendance/report [get]", nil)
}

func (i *impl) leaves(flowAllow models.RbacFunc) {
	//VIEW
	i.mustRegister(models.LeaveModule, models.ViewPermission, AllRoles, "/api/v1/leaves [get]", nil)
	i.mustRegister(models.LeaveModule, models.ViewPermission, AllRoles, "/api/v1/leaves/balance [get]", nil)
	i.mustRegister(models.LeaveModule, models.ViewPermission, AllRoles, "/api/v1/leaves/{id} [get]", nil)
	i.mustRegister(models.LeaveModule, models.ViewPermission, AllRoles, "/api/v1/leaves/{id}/history [get]", nil)
	i.mustRegister(models.LeaveModule, models.ViewPermission, AllRoles, "/api/v1/leaves/{id}/letter [get]", nil)
	//CREATE/EDIT только своя заявка или HR, проверяется в обработчике
	i.mustRegister(models.LeaveModule, models.CreatePermission, AllRoles, "/api/v1/leaves [post]", nil)
	i.mustRegister(models.LeaveModule, models.EditPermission, AllRoles, "/api/v1/leaves/{id} [put]", nil)
	i.mustRegister(models.LeaveModule, models.EditPermission, AllRoles, "/api/v1/leaves/{id} [patch]", nil)
	i.mustRegister(models.LeaveModule, models.EditPermission, AllRoles, "/api/v1/leaves/{id} [delete]", nil)
	//FLOW
	flowRule := AllowByRoleAndFunc(HrManagerRoleSet, flowAllow)
	i.mustRegister(models.LeaveModule, models.FlowPermission, HrManagerRoleSet, "/api/v1/leaves/{id}/approve [post]", flowRule)
	i.mustRegister(models.LeaveModule, models.FlowPermission, HrManagerRoleSet, "/api/v1/leaves/{id}/reject [post]", flowRule)
	//EXPORT
	i.mustRegister(models.ReportsModule, models.ExportPermission, HrManagerRoleSet, "/api/v1/leaves/report [get]", nil)
}

func (i *impl) dashboard() {
	i.mustRegister(models.DashboardModule, models.ViewPermission, AllRoles, "/api/v1/dashboard [get]", nil)
}
