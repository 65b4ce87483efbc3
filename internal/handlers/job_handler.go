package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/itgram/backend/internal/models"
	"github.com/itgram/backend/internal/notify"
	"github.com/itgram/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// JobHandler handles job listing and application HTTP requests
type JobHandler struct {
	jobRepository  repositories.JobRepository
	userRepository repositories.UserRepository
	notifier       *notify.Service
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(jobRepo repositories.JobRepository, userRepo repositories.UserRepository, notifier *notify.Service) *JobHandler {
	return &JobHandler{
		jobRepository:  jobRepo,
		userRepository: userRepo,
		notifier:       notifier,
	}
}

// RegisterJobRoutes registers job-related routes
func (h *JobHandler) RegisterJobRoutes(g *echo.Group) {
	g.POST("/jobs", h.CreateJob)
	g.GET("/jobs", h.GetAllJobs)
	g.GET("/jobs/applied", h.GetAppliedJobs)
	g.GET("/jobs/mine", h.GetMyJobs)
	g.GET("/jobs/:id", h.GetJob)
	g.POST("/jobs/:id/apply", h.ApplyToJob)
	g.DELETE("/jobs/:id/apply", h.WithdrawApplication)
	g.PUT("/jobs/:id/applicants/:userId", h.DecideApplication)
	g.DELETE("/jobs/:id", h.DeleteJob)
}

// CreateJob creates a new job listing
func (h *JobHandler) CreateJob(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.CreateJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	exists, err := h.jobRepository.JobExists(ctx, req.JobTitle, req.CompanyName, user.PublicID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if exists {
		return echo.NewHTTPError(http.StatusConflict, "You already posted this job")
	}

	job := &models.Job{
		AuthorID:       user.PublicID,
		JobTitle:       req.JobTitle,
		Role:           req.Role,
		Category:       req.Category,
		CompanyName:    req.CompanyName,
		JobDescription: req.JobDescription,
		City:           req.City,
		Country:        req.Country,
		EmploymentType: req.EmploymentType,
		Deadline:       req.Deadline,
		SalaryRange:    req.SalaryRange,
		SkillsRequired: req.SkillsRequired,
	}
	if err := h.jobRepository.CreateJob(ctx, job); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": job})
}

// GetAllJobs returns job listings with pagination
func (h *JobHandler) GetAllJobs(c echo.Context) error {
	skip, limit := paginationParams(c)
	jobs, err := h.jobRepository.GetAllJobs(c.Request().Context(), skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": jobs})
}

// GetJob returns a single job listing
func (h *JobHandler) GetJob(c echo.Context) error {
	job, err := h.jobRepository.GetJobByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Job not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": job})
}

// GetMyJobs returns the job listings posted by the authenticated user
func (h *JobHandler) GetMyJobs(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	jobs, err := h.jobRepository.GetJobsByAuthorID(c.Request().Context(), user.PublicID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": jobs})
}

// GetAppliedJobs returns the jobs the authenticated user has applied to
func (h *JobHandler) GetAppliedJobs(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	jobs, err := h.jobRepository.GetJobsAppliedByUser(c.Request().Context(), user.PublicID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": jobs})
}

// ApplyToJob applies to a job and notifies the poster
func (h *JobHandler) ApplyToJob(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.ApplyToJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	job, err := h.jobRepository.GetJobByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Job not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if job.AuthorID == user.PublicID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot apply to your own job")
	}
	for _, applicant := range job.Applicants {
		if applicant.UserID == user.PublicID {
			return echo.NewHTTPError(http.StatusConflict, "Already applied to this job")
		}
	}
	if job.Deadline != nil && job.Deadline.Before(time.Now()) {
		return echo.NewHTTPError(http.StatusBadRequest, "Application deadline has passed")
	}

	applicant := models.Applicant{
		UserID:    user.PublicID,
		Message:   req.Message,
		ResumeURL: req.ResumeURL,
		Status:    models.ApplicantPending,
		AppliedAt: time.Now(),
	}
	if err := h.jobRepository.AddApplicant(ctx, job.ID.Hex(), applicant); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.notifier.Dispatch(ctx, &models.Notification{
		RecipientID: job.AuthorID,
		SenderID:    user.PublicID,
		Kind:        models.NotificationJobApplication,
		JobID:       &job.ID,
		Message:     user.Username + " applied to " + job.JobTitle,
	})

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"applied": true}})
}

// WithdrawApplication removes the authenticated user's application
func (h *JobHandler) WithdrawApplication(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	if err := h.jobRepository.RemoveApplicant(c.Request().Context(), c.Param("id"), user.PublicID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Job not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"withdrawn": true}})
}

// DecideApplication accepts or rejects an application and notifies
// the applicant of the outcome
func (h *JobHandler) DecideApplication(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.DecideApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	job, err := h.jobRepository.GetJobByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Job not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if job.AuthorID != user.PublicID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the job poster can decide applications")
	}

	applicantID := c.Param("userId")
	if err := h.jobRepository.SetApplicantStatus(ctx, job.ID.Hex(), applicantID, req.Status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Application not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	kind := models.NotificationJobAccept
	message := "Your application for " + job.JobTitle + " was accepted"
	if req.Status == models.ApplicantRejected {
		kind = models.NotificationJobReject
		message = "Your application for " + job.JobTitle + " was rejected"
	}
	h.notifier.Dispatch(ctx, &models.Notification{
		RecipientID: applicantID,
		SenderID:    user.PublicID,
		Kind:        kind,
		JobID:       &job.ID,
		Message:     message,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"status": req.Status}})
}

// DeleteJob deletes a job listing the authenticated user owns
func (h *JobHandler) DeleteJob(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	job, err := h.jobRepository.GetJobByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Job not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if job.AuthorID != user.PublicID {
		return echo.NewHTTPError(http.StatusForbidden, "Not authorized to delete this job")
	}

	if err := h.jobRepository.DeleteJob(ctx, job.ID.Hex()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
