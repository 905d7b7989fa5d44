package rbac

import (
	"regexp"
	"slices"
	"strings"

	"employee-management-backend/models"

	"github.com/pkg/errors"
)

type Provider interface {
	GetRuleFunc(method, path string) (models.RbacFunc, bool)
	RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) error
	GetPermissions(role models.UserRole) map[models.Module][]models.Permission
}

var Instance Provider

// NewHandler правила маршрутов, flowAllow проверяет право решения по конкретной заявке на отпуск
func NewHandler(flowAllow models.RbacFunc) {
	Instance = newInstance(flowAllow)
}

func newInstance(flowAllow models.RbacFunc) *impl {
	i := &impl{
		rules:       map[HTTPMethod]*PathRule{},
		permissions: map[models.UserRole]map[models.Module][]models.Permission{},
	}
	i.initRules(flowAllow)
	return i
}

type impl struct {
	rules       map[HTTPMethod]*PathRule
	permissions map[models.UserRole]map[models.Module][]models.Permission
}

func (i *impl) GetRuleFunc(method, path string) (models.RbacFunc, bool) {
	normalizedPath := normalizePath(path)
	httpMethod := HTTPMethod(strings.ToUpper(method))

	pathRule, exists := i.rules[httpMethod]
	if !exists {
		return nil, false
	}
	return i.findInPathRule(pathRule, normalizedPath)
}

func (i *impl) RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) error {
	path, method, err := parseSwaggerPattern(swaggerPattern)
	if err != nil {
		return err
	}
	i.addPermission(module, permission, roles)

	pathRule, exists := i.rules[method]
	if !exists {
		pathRule = &PathRule{
			Exact: map[string]models.RbacFunc{},
		}
		i.rules[method] = pathRule
	}
	if handler == nil {
		handler = AllowByRoleFunc(roles)
	}
	if !strings.Contains(path, "{") {
		pathRule.Exact[path] = handler
		return nil
	}
	pattern, err := pathToRegex(path)
	if err != nil {
		return errors.Wrapf(err, "некорректный шаблон маршрута %s", swaggerPattern)
	}
	pathRule.Patterns = append(pathRule.Patterns, PatternRule{
		Pattern: pattern,
		Handler: handler,
	})
	return nil
}

// addPermission карта модулей и прав роли для меню фронта
func (i *impl) addPermission(module models.Module, permission models.Permission, roles []models.UserRole) {
	for _, role := range roles {
		modules, ok := i.permissions[role]
		if !ok {
			modules = map[models.Module][]models.Permission{}
			i.permissions[role] = modules
		}
		if !slices.Contains(modules[module], permission) {
			modules[module] = append(modules[module], permission)
		}
	}
}

func (i *impl) GetPermissions(role models.UserRole) map[models.Module][]models.Permission {
	return i.permissions[role]
}

var pathParamRegex = regexp.MustCompile(`\{[^}]+?\}`)

// pathToRegex /api/v1/leaves/{id}/approve -> ^/api/v1/leaves/([^/]+)/approve$
func pathToRegex(path string) (*regexp.Regexp, error) {
	parts := pathParamRegex.Split(path, -1)
	for idx, part := range parts {
		parts[idx] = regexp.QuoteMeta(part)
	}
	return regexp.Compile("^" + strings.Join(parts, "([^/]+)") + "$")
}

func (i *impl) findInPathRule(pathRule *PathRule, path string) (models.RbacFunc, bool) {
	if handler, exists := pathRule.Exact[path]; exists {
		return handler, true
	}
	for _, patternRule := range pathRule.Patterns {
		if patternRule.Pattern.MatchString(path) {
			return patternRule.Handler, true
		}
	}
	return nil, false
}

func AllowFunc() models.RbacFunc {
	return func(userID string, role models.UserRole, uri string) bool {
		return true
	}
}

func AllowByRoleFunc(accessRoles []models.UserRole) models.RbacFunc {
	allowMap := map[models.UserRole]bool{}
	for _, role := range accessRoles {
		allowMap[role] = true
	}
	return func(userID string, role models.UserRole, uri string) bool {
		return allowMap[role]
	}
}

// AllowByRoleAndFunc роль из списка и дополнительная проверка rule
func AllowByRoleAndFunc(accessRoles []models.UserRole, rule models.RbacFunc) models.RbacFunc {
	byRole := AllowByRoleFunc(accessRoles)
	if rule == nil {
		return byRole
	}
	return func(userID string, role models.UserRole, uri string) bool {
		return byRole(userID, role, uri) && rule(userID, role, uri)
	}
}

// parseSwaggerPattern разбирает строку вида "/api/v1/leaves/{id} [put]"
func parseSwaggerPattern(pattern string) (path string, method HTTPMethod, err error) {
	pattern = strings.TrimSpace(pattern)
	bracketStart := strings.LastIndex(pattern, "[")
	bracketEnd := strings.LastIndex(pattern, "]")
	if bracketStart == -1 || bracketEnd <= bracketStart {
		return "", "", errors.Errorf("не указан метод в шаблоне маршрута (%v)", pattern)
	}
	method = HTTPMethod(strings.ToUpper(strings.TrimSpace(pattern[bracketStart+1 : bracketEnd])))
	return normalizePath(pattern[:bracketStart]), method, nil
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
