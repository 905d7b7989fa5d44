package apimodels

type Response struct {
	Status  string            `json:"status"`            //результат обработки fail/success
	Message string            `json:"message,omitempty"` //сообщение ошибки
	Data    interface{}       `json:"data,omitempty"`    //данные ответа
	Errors  map[string]string `json:"errors,omitempty"`  //ошибки валидации по полям
}

type ScrollerResponse struct {
	Response
	RowCount   int64           `json:"row_count"`            //для списков, общее кол-во записей, учитывая фильтр (если он есть)
	Pagination *PaginationInfo `json:"pagination,omitempty"` //положение страницы в списке
}

func NewError(message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
	}
}

func NewValidationError(message string, fields map[string]string) Response {
	return Response{
		Status:  "fail",
		Message: message,
		Errors:  fields,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage ограничивает смещение выборки, (MaxPage-1)*MaxPageSize помещается в int32
	MaxPage = 100000
)

type Pagination struct {
	Page    int `json:"page" query:"page"`         // Страница (1,2,3..)
	PerPage int `json:"per_page" query:"per_page"` // Записей на странице
}

func (r Pagination) GetPage() (page, limit int) {
	page = 1
	limit = DefaultPageSize
	if r.Page > 0 {
		page = r.Page
	}
	if page > MaxPage {
		page = MaxPage
	}
	if r.PerPage > 0 {
		limit = r.PerPage
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

type PaginationInfo struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	PerPage     int   `json:"per_page"`
	TotalItems  int64 `json:"total_items"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

func NewPaginationInfo(page, limit int, total int64) PaginationInfo {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return PaginationInfo{
		CurrentPage: page,
		TotalPages:  totalPages,
		PerPage:     limit,
		TotalItems:  total,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}

func NewScrollerResponse(data interface{}, rowCount int64) ScrollerResponse {
	return ScrollerResponse{
		Response: Response{
			Status: "success",
			Data:   data,
		},
		RowCount: rowCount,
	}
}

func NewPageResponse(data interface{}, rowCount int64, page, limit int) ScrollerResponse {
	info := NewPaginationInfo(page, limit, rowCount)
	resp := NewScrollerResponse(data, rowCount)
	resp.Pagination = &info
	return resp
}
