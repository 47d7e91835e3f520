package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iramedia/work-reports/internal/core/domain"
	"github.com/iramedia/work-reports/internal/core/ports"
)

// AdminHandler serves the admin dashboard and employee management endpoints.
type AdminHandler struct {
	admin       ports.AdminService
	identity    ports.IdentityService
	submissions ports.SubmissionService
}

func NewAdminHandler(admin ports.AdminService, identity ports.IdentityService, submissions ports.SubmissionService) *AdminHandler {
	return &AdminHandler{
		admin:       admin,
		identity:    identity,
		submissions: submissions,
	}
}

// Dashboard returns statistics, the filtered submissions list, and all users.
//
// @Summary      Admin dashboard
// @Tags         admin
// @Produce      json
// @Param        employee  query  string  false  "Filter by employee name (substring)"
// @Param        date      query  string  false  "Filter by date (YYYY-MM-DD)"
// @Success      200  {object}  adminDashboardResponse
// @Router       /admin [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	filter := listFilter(c)

	stats, err := h.admin.Statistics(ctx)
	if err != nil {
		return err
	}
	rows, err := h.admin.ListSubmissions(ctx, filter)
	if err != nil {
		return err
	}
	employees, err := h.identity.List(ctx)
	if err != nil {
		return err
	}

	views := make([]adminSubmissionView, 0, len(rows))
	for _, row := range rows {
		views = append(views, newAdminSubmissionView(row))
	}

	return c.JSON(http.StatusOK, adminDashboardResponse{
		Statistics:  stats,
		Submissions: views,
		Employees:   employees,
	})
}

// ListSubmissions returns the joined submissions list with optional filters.
//
// @Summary      List submissions
// @Tags         admin
// @Produce      json
// @Param        employee  query  string  false  "Filter by employee name (substring)"
// @Param        date      query  string  false  "Filter by date (YYYY-MM-DD)"
// @Success      200  {array}  adminSubmissionView
// @Router       /admin/submissions [get]
func (h *AdminHandler) ListSubmissions(c echo.Context) error {
	rows, err := h.admin.ListSubmissions(c.Request().Context(), listFilter(c))
	if err != nil {
		return err
	}

	views := make([]adminSubmissionView, 0, len(rows))
	for _, row := range rows {
		views = append(views, newAdminSubmissionView(row))
	}
	return c.JSON(http.StatusOK, views)
}

// CreateEmployee registers a new user account.
//
// @Summary      Create an employee
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      createEmployeeRequest  true  "New employee"
// @Success      201   {object}  domain.User
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/employees [post]
func (h *AdminHandler) CreateEmployee(c echo.Context) error {
	var req createEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if req.Role == "" {
		req.Role = domain.RoleEmployee
	}

	user, err := h.identity.Create(c.Request().Context(), ports.CreateUserInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Role:           req.Role,
		EmploymentType: req.EmploymentType,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// UpdateEmployee edits an existing user account.
//
// @Summary      Update an employee
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "User ID"
// @Param        body  body      updateEmployeeRequest  true  "Updated fields"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /admin/employees/{id} [put]
func (h *AdminHandler) UpdateEmployee(c echo.Context) error {
	var req updateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.identity.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		EmploymentType: req.EmploymentType,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteEmployee removes a user together with their reports and attachments.
//
// @Summary      Delete an employee
// @Tags         admin
// @Param        id  path  string  true  "User ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /admin/employees/{id} [delete]
func (h *AdminHandler) DeleteEmployee(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if id == caller.UserID {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "cannot delete your own account")
	}

	if err := h.identity.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// EmployeeReport returns one employee and their per-month aggregates.
//
// @Summary      Employee activity report
// @Tags         admin
// @Produce      json
// @Param        id  path  string  true  "User ID"
// @Success      200  {object}  employeeReportResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/employees/{id}/reports [get]
func (h *AdminHandler) EmployeeReport(c echo.Context) error {
	user, months, err := h.admin.EmployeeReport(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employeeReportResponse{Employee: user, Months: months})
}

// MonthlyReport returns one employee's submissions for a month with the
// derived freelancer amounts. With format=csv the month is served as a CSV
// download instead of JSON.
//
// @Summary      Employee monthly detail
// @Tags         admin
// @Produce      json
// @Param        id      path   string  true   "User ID"
// @Param        month   query  string  false  "Month (YYYY-MM), defaults to the current month"
// @Param        format  query  string  false  "Set to csv for a CSV download"
// @Success      200  {object}  ports.MonthlyReport
// @Failure      404  {object}  errorResponse
// @Router       /admin/employees/{id}/monthly [get]
func (h *AdminHandler) MonthlyReport(c echo.Context) error {
	month := c.QueryParam("month")
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}

	if c.QueryParam("format") == "csv" {
		// Buffered so a bad month or unknown employee still gets its error
		// status instead of a truncated download.
		var buf bytes.Buffer
		if err := h.admin.ExportMonthlyCSV(c.Request().Context(), c.Param("id"), month, &buf); err != nil {
			return err
		}
		filename := fmt.Sprintf("monthly_report_%s.csv", month)
		c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
		return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
	}

	report, err := h.submissions.MonthlyReport(c.Request().Context(), c.Param("id"), month)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// ExportCSV streams the filtered submissions list as a CSV download.
//
// @Summary      Export submissions as CSV
// @Tags         admin
// @Produce      text/csv
// @Param        employee  query  string  false  "Filter by employee name (substring)"
// @Param        date      query  string  false  "Filter by date (YYYY-MM-DD)"
// @Success      200
// @Router       /admin/reports/export [get]
func (h *AdminHandler) ExportCSV(c echo.Context) error {
	filename := fmt.Sprintf("work_reports_%s.csv", time.Now().UTC().Format("2006-01-02"))

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Response().WriteHeader(http.StatusOK)

	return h.admin.ExportCSV(c.Request().Context(), listFilter(c), c.Response())
}

func listFilter(c echo.Context) ports.ListSubmissionsFilter {
	return ports.ListSubmissionsFilter{
		EmployeeName: c.QueryParam("employee"),
		Date:         c.QueryParam("date"),
	}
}
