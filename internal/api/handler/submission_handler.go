package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iramedia/work-reports/internal/api/metrics"
	"github.com/iramedia/work-reports/internal/core/domain"
	"github.com/iramedia/work-reports/internal/core/ports"
)

// SubmissionHandler serves the employee-facing report lifecycle.
type SubmissionHandler struct {
	submissions ports.SubmissionService
}

func NewSubmissionHandler(submissions ports.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions}
}

// Dashboard returns today's submission status plus the caller's recent reports.
//
// @Summary      Employee dashboard
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Router       /dashboard [get]
func (h *SubmissionHandler) Dashboard(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	submitted, err := h.submissions.StatusForToday(ctx, caller.UserID)
	if err != nil {
		return err
	}
	recent, err := h.submissions.RecentForUser(ctx, caller.UserID, 0)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		SubmittedToday: submitted,
		Recent:         recent,
	})
}

// Submit creates the caller's daily report, optionally with one attachment.
//
// @Summary      Submit a daily report
// @Tags         reports
// @Accept       multipart/form-data
// @Produce      json
// @Param        work_text    formData  string  true   "Description of the day's work"
// @Param        date         formData  string  false  "Report date (YYYY-MM-DD), defaults to today"
// @Param        client_name  formData  string  false  "Client the work was for"
// @Param        work_type    formData  string  false  "Kind of deliverable"
// @Param        quantity     formData  int     false  "Units produced"
// @Param        file         formData  file    false  "Attachment"
// @Success      201  {object}  domain.Submission
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /submit [post]
func (h *SubmissionHandler) Submit(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	upload, closeUpload, err := formUpload(c)
	if err != nil {
		return err
	}
	defer closeUpload()

	start := time.Now()
	created, err := h.submissions.Submit(c.Request().Context(), ports.SubmitInput{
		UserID:     caller.UserID,
		Date:       req.Date,
		WorkText:   req.WorkText,
		ClientName: req.ClientName,
		WorkType:   req.WorkType,
		Quantity:   req.Quantity,
		File:       upload,
	})
	if err != nil {
		metrics.SubmitDuration.WithLabelValues("rejected").Observe(time.Since(start).Seconds())
		metrics.SubmissionsRejectedTotal.WithLabelValues(rejectionReason(err)).Inc()
		return err
	}
	metrics.SubmitDuration.WithLabelValues("created").Observe(time.Since(start).Seconds())

	withAttachment := "no"
	if created.HasAttachment() {
		withAttachment = "yes"
	}
	metrics.SubmissionsCreatedTotal.WithLabelValues(withAttachment).Inc()

	return c.JSON(http.StatusCreated, created)
}

// Download streams a submission's attachment with its original file name.
//
// @Summary      Download an attachment
// @Tags         reports
// @Produce      application/octet-stream
// @Param        id   path  string  true  "Submission ID"
// @Success      200
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /download/{id} [get]
func (h *SubmissionHandler) Download(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	att, err := h.submissions.Download(c.Request().Context(), c.Param("id"), caller)
	if err != nil {
		return err
	}
	metrics.AttachmentDownloadsTotal.Inc()

	return c.Attachment(att.Path, att.Name)
}

// UpdateReport edits one of the caller's reports; admins may edit any.
//
// @Summary      Update a report
// @Tags         reports
// @Accept       multipart/form-data
// @Produce      json
// @Param        id  path  string  true  "Submission ID"
// @Success      200  {object}  domain.Submission
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /reports/{id} [put]
func (h *SubmissionHandler) UpdateReport(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req updateReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	upload, closeUpload, err := formUpload(c)
	if err != nil {
		return err
	}
	defer closeUpload()

	updated, err := h.submissions.UpdateReport(c.Request().Context(), c.Param("id"), caller, ports.UpdateReportInput{
		WorkText:   req.WorkText,
		ClientName: req.ClientName,
		WorkType:   req.WorkType,
		Quantity:   req.Quantity,
		File:       upload,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteReport removes one of the caller's reports; admins may remove any.
//
// @Summary      Delete a report
// @Tags         reports
// @Param        id  path  string  true  "Submission ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /reports/{id} [delete]
func (h *SubmissionHandler) DeleteReport(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	if err := h.submissions.DeleteReport(c.Request().Context(), c.Param("id"), caller); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// formUpload extracts the optional "file" part of a multipart form. The
// returned cleanup func is always safe to defer.
func formUpload(c echo.Context) (*ports.FileUpload, func(), error) {
	noop := func() {}

	fh, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, echo.NewHTTPError(http.StatusBadRequest, "invalid upload")
	}

	src, err := fh.Open()
	if err != nil {
		return nil, noop, echo.NewHTTPError(http.StatusBadRequest, "invalid upload")
	}
	return &ports.FileUpload{
		Name:    fh.Filename,
		Size:    fh.Size,
		Content: src,
	}, func() { closeFile(src) }, nil
}

func closeFile(f multipart.File) {
	_ = f.Close()
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyWorkText):
		return "empty_text"
	case errors.Is(err, domain.ErrDuplicateSubmission):
		return "duplicate_date"
	case errors.Is(err, domain.ErrFileRejected):
		return "file_rejected"
	default:
		return "invalid"
	}
}
