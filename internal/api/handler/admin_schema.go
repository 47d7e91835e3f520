package handler

import (
	"github.com/iramedia/work-reports/internal/core/domain"
	"github.com/iramedia/work-reports/internal/core/ports"
)

type createEmployeeRequest struct {
	Name           string `json:"name"            form:"name"            validate:"required"`
	Email          string `json:"email"           form:"email"           validate:"required,email"`
	Password       string `json:"password"        form:"password"        validate:"required,min=6"`
	Role           string `json:"role"            form:"role"            validate:"omitempty,oneof=admin employee"`
	EmploymentType string `json:"employment_type" form:"employment_type" validate:"omitempty,oneof=inhouse freelancer"`
}

type updateEmployeeRequest struct {
	Name           string `json:"name"            form:"name"            validate:"required"`
	Email          string `json:"email"           form:"email"           validate:"required,email"`
	Password       string `json:"password"        form:"password"        validate:"omitempty,min=6"`
	EmploymentType string `json:"employment_type" form:"employment_type" validate:"omitempty,oneof=inhouse freelancer"`
}

type adminSubmissionView struct {
	domain.Submission
	EmployeeName   string `json:"employee_name"`
	EmployeeEmail  string `json:"employee_email"`
	EmploymentType string `json:"employment_type"`
	Amount         int    `json:"amount"`
}

type adminDashboardResponse struct {
	Statistics  *ports.Statistics     `json:"statistics"`
	Submissions []adminSubmissionView `json:"submissions"`
	Employees   []*domain.User        `json:"employees"`
}

type employeeReportResponse struct {
	Employee *domain.User           `json:"employee"`
	Months   []ports.MonthlySummary `json:"months"`
}

func newAdminSubmissionView(s *ports.AdminSubmission) adminSubmissionView {
	return adminSubmissionView{
		Submission:     s.Submission,
		EmployeeName:   s.EmployeeName,
		EmployeeEmail:  s.EmployeeEmail,
		EmploymentType: s.EmploymentType,
		Amount:         s.Amount,
	}
}
