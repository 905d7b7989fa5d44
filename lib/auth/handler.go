package authhandler

import (
	"context"
	"slices"
	"strings"
	"time"

	"employee-management-backend/config"
	"employee-management-backend/db"
	tokenstore "employee-management-backend/lib/auth/token-store"
	employeestore "employee-management-backend/lib/employee/store"
	"employee-management-backend/lib/rbac"
	apperrors "employee-management-backend/lib/utils/app-errors"
	authutils "employee-management-backend/lib/utils/auth-utils"
	initchecker "employee-management-backend/lib/utils/init-checker"
	"employee-management-backend/models"
	authapimodels "employee-management-backend/models/api/auth"
	employeeapimodels "employee-management-backend/models/api/employee"
	dbmodels "employee-management-backend/models/db"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Login(ctx context.Context, email, password string) (response authapimodels.JWTResponse, err error)
	Refresh(ctx context.Context, refreshToken string) (response authapimodels.JWTResponse, err error)
	Logout(ctx context.Context, userID, jti string, expiresAt time.Time, refreshToken string) error
	GetProfile(userID string) (item employeeapimodels.EmployeeView, err error)
	UpdateProfile(userID string, request authapimodels.ProfileUpdate) error
	ChangePassword(userID string, request authapimodels.ChangePasswordRequest) error
	Permissions(role models.UserRole) authapimodels.PermissionsView
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:      employeestore.NewInstance(db.DB),
		tokenStore: tokenstore.Instance,
		rbac:       rbac.Instance,
		now:        time.Now,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"tokenStore", instance.tokenStore,
		"rbac", instance.rbac,
	)
	Instance = instance
}

type impl struct {
	store      employeestore.Provider
	tokenStore tokenstore.Provider
	rbac       rbac.Provider
	now        func() time.Time
}

const invalidCredentials = "неверная почта или пароль"

func (i impl) Login(ctx context.Context, email, password string) (response authapimodels.JWTResponse, err error) {
	logger := log.WithField("email", email)
	user, err := i.store.GetByEmail(email)
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка поиска сотрудника по почте")
		return authapimodels.JWTResponse{}, err
	}
	if user == nil {
		logger.Debug("сотрудник с такой почтой не найден")
		return authapimodels.JWTResponse{}, apperrors.Unauthorized(invalidCredentials)
	}
	if !authutils.CheckPassword(user.Password, password) {
		logger.Debug("сотрудник не прошел проверку пароля")
		return authapimodels.JWTResponse{}, apperrors.Unauthorized(invalidCredentials)
	}
	if !user.CanLogin() {
		logger.Info("попытка входа неактивного сотрудника")
		return authapimodels.JWTResponse{}, apperrors.Unauthorized("учетная запись отключена")
	}
	response, err = i.issueTokens(*user)
	if err != nil {
		logger.WithError(err).Error("ошибка генерации JWT")
		return authapimodels.JWTResponse{}, err
	}
	err = i.store.Update(user.ID, map[string]interface{}{"last_login": i.now()})
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка обновления даты последнего входа")
	}
	return response, nil
}

// Refresh выдает новую пару токенов, использованный refresh отзывается
func (i impl) Refresh(ctx context.Context, refreshToken string) (response authapimodels.JWTResponse, err error) {
	claims, err := authutils.ParseToken(refreshToken)
	if err != nil {
		return authapimodels.JWTResponse{}, apperrors.Unauthorized("refresh token недействителен")
	}
	if authutils.ClaimString(claims, "typ") != authutils.RefreshTokenType {
		return authapimodels.JWTResponse{}, apperrors.Unauthorized("ожидается refresh token")
	}
	// refresh token используется один раз, из параллельных запросов проходит первый
	first, err := i.tokenStore.RevokeOnce(ctx, authutils.ClaimString(claims, "jti"), authutils.ClaimExpiresAt(claims))
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	if !first {
		return authapimodels.JWTResponse{}, apperrors.Unauthorized("refresh token отозван")
	}
	userID := authutils.ClaimString(claims, "sub")
	logger := log.WithField("user_id", userID)
	user, err := i.store.GetByID(userID)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	if user == nil || !user.CanLogin() {
		return authapimodels.JWTResponse{}, apperrors.Unauthorized("учетная запись отключена")
	}
	response, err = i.issueTokens(*user)
	if err != nil {
		logger.WithError(err).Error("ошибка генерации JWT")
		return authapimodels.JWTResponse{}, err
	}
	return response, nil
}

func (i impl) Logout(ctx context.Context, userID, jti string, expiresAt time.Time, refreshToken string) error {
	logger := log.WithField("user_id", userID)
	err := i.tokenStore.Revoke(ctx, jti, expiresAt)
	if err != nil {
		return err
	}
	if refreshToken != "" {
		claims, err := authutils.ParseToken(refreshToken)
		if err != nil {
			logger.WithError(err).Debug("при выходе передан недействительный refresh token")
		} else if authutils.ClaimString(claims, "sub") == userID {
			err = i.tokenStore.Revoke(ctx, authutils.ClaimString(claims, "jti"), authutils.ClaimExpiresAt(claims))
			if err != nil {
				return err
			}
		}
	}
	logger.Info("выход из системы")
	return nil
}

func (i impl) GetProfile(userID string) (item employeeapimodels.EmployeeView, err error) {
	user, err := i.getUser(userID)
	if err != nil {
		return employeeapimodels.EmployeeView{}, err
	}
	return employeeapimodels.EmployeeConvert(*user, i.now().In(config.Location()), config.Conf.Leave.MinTenureMonths), nil
}

func (i impl) UpdateProfile(userID string, request authapimodels.ProfileUpdate) error {
	_, err := i.getUser(userID)
	if err != nil {
		return err
	}
	updMap := map[string]interface{}{}
	if request.Phone != nil {
		updMap["phone"] = strings.TrimSpace(*request.Phone)
	}
	if strings.TrimSpace(request.FirstName) != "" {
		updMap["first_name"] = strings.TrimSpace(request.FirstName)
	}
	if strings.TrimSpace(request.LastName) != "" {
		updMap["last_name"] = strings.TrimSpace(request.LastName)
	}
	if len(updMap) == 0 {
		return nil
	}
	return i.store.Update(userID, updMap)
}

func (i impl) ChangePassword(userID string, request authapimodels.ChangePasswordRequest) error {
	logger := log.WithField("user_id", userID)
	user, err := i.getUser(userID)
	if err != nil {
		return err
	}
	if !authutils.CheckPassword(user.Password, request.OldPassword) {
		return apperrors.ValidationFields(map[string]string{"old_password": "неверный текущий пароль"})
	}
	if request.OldPassword == request.NewPassword {
		return apperrors.ValidationFields(map[string]string{"new_password": "новый пароль совпадает с текущим"})
	}
	passwordHash, err := authutils.HashPassword(request.NewPassword)
	if err != nil {
		return err
	}
	err = i.store.Update(userID, map[string]interface{}{"password": passwordHash})
	if err != nil {
		return err
	}
	logger.Info("пароль изменен")
	return nil
}

func (i impl) Permissions(role models.UserRole) authapimodels.PermissionsView {
	result := authapimodels.PermissionsView{
		Role:        string(role),
		Permissions: map[string][]string{},
	}
	for module, permissions := range i.rbac.GetPermissions(role) {
		list := make([]string, 0, len(permissions))
		for _, permission := range permissions {
			list = append(list, string(permission))
		}
		slices.Sort(list)
		result.Permissions[string(module)] = list
	}
	return result
}

func (i impl) getUser(userID string) (*dbmodels.Employee, error) {
	user, err := i.store.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsDeleted() {
		return nil, apperrors.NotFound("сотрудник не найден")
	}
	return user, nil
}

func (i impl) issueTokens(user dbmodels.Employee) (authapimodels.JWTResponse, error) {
	access, err := authutils.GetToken(user.ID, user.GetFullName(), user.Role)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	refresh, err := authutils.GetRefreshToken(user.ID, user.GetFullName(), user.Role)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	return authapimodels.JWTResponse{
		Token:        access.Token,
		RefreshToken: refresh.Token,
		ExpiresIn:    config.Conf.Auth.JWTExpireInSec,
	}, nil
}
