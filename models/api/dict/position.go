package dictapimodels

import (
	"time"

	"employee-management-backend/lib/utils/validators"
	apimodels "employee-management-backend/models/api"
	dbmodels "employee-management-backend/models/db"
)

type PositionData struct {
	Code        string  `json:"code" validate:"required,dict_code"`
	Name        string  `json:"name" validate:"required,max=255"`
	Level       int     `json:"level" validate:"gte=1"`
	ParentID    *string `json:"parent_id"`
	Description string  `json:"description"`
}

func (p PositionData) Validate() error {
	return validators.Struct(p)
}

type PositionPatch struct {
	Code        *string `json:"code" validate:"omitempty,dict_code"`
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Level       *int    `json:"level" validate:"omitempty,gte=1"`
	ParentID    *string `json:"parent_id"`
	Description *string `json:"description"`
}

func (p PositionPatch) Validate() error {
	return validators.Struct(p)
}

type PositionView struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Level       int       `json:"level"`
	ParentID    *string   `json:"parent_id"`
	ParentName  string    `json:"parent_name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PositionFilter struct {
	apimodels.Pagination
	Search string `query:"search"` // поиск по названию и коду
	Level  *int   `query:"level"`  // фильтр по уровню
}

func PositionConvert(rec dbmodels.Position) PositionView {
	result := PositionView{
		ID:          rec.ID,
		Code:        rec.Code,
		Name:        rec.Name,
		Level:       rec.Level,
		ParentID:    rec.ParentID,
		Description: rec.Description,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
	if rec.Parent != nil {
		result.ParentName = rec.Parent.Name
	}
	return result
}
