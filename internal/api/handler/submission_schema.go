package handler

import "github.com/iramedia/work-reports/internal/core/domain"

type submitRequest struct {
	WorkText   string `json:"work_text"   form:"work_text"   validate:"required"`
	Date       string `json:"date"        form:"date"        validate:"omitempty,datetime=2006-01-02"`
	ClientName string `json:"client_name" form:"client_name"`
	WorkType   string `json:"work_type"   form:"work_type"`
	Quantity   int    `json:"quantity"    form:"quantity"    validate:"omitempty,min=0"`
}

type updateReportRequest struct {
	WorkText   string `json:"work_text"   form:"work_text"   validate:"required"`
	ClientName string `json:"client_name" form:"client_name"`
	WorkType   string `json:"work_type"   form:"work_type"`
	Quantity   int    `json:"quantity"    form:"quantity"    validate:"omitempty,min=0"`
}

type dashboardResponse struct {
	SubmittedToday bool                 `json:"submitted_today"`
	Recent         []*domain.Submission `json:"recent"`
}
