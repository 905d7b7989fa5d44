package authapimodels

import (
	"net/mail"

	"employee-management-backend/lib/utils/validators"

	"github.com/pkg/errors"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	_, err := mail.ParseAddress(r.Email)
	if err != nil {
		return errors.New("почта имеет неправильный формат")
	}
	if r.Password == "" {
		return errors.New("не указан пароль")
	}
	return nil
}

type ProfileUpdate struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,phone"`
}

func (r ProfileUpdate) Validate() error {
	return validators.Struct(r)
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// PermissionsView права роли по модулям для меню
type PermissionsView struct {
	Role        string              `json:"role"`
	Permissions map[string][]string `json:"permissions"`
}

func (r ChangePasswordRequest) Validate() error {
	return validators.Struct(r)
}
