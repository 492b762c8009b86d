package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/jobportal/backend/internal/middleware"
	"github.com/jobportal/backend/internal/models"
	"github.com/jobportal/backend/internal/respond"
	"github.com/jobportal/backend/internal/store"
)

// JobStore defines the interface for job persistence.
type JobStore interface {
	Insert(ctx context.Context, job *models.Job) (string, error)
	Search(ctx context.Context, f store.JobFilter) ([]models.Job, error)
	GetByID(ctx context.Context, id string) (*models.Job, error)
	ListByEmployer(ctx context.Context, employerID string) ([]models.Job, error)
	AddApplication(ctx context.Context, jobID string, app models.Application) error
	SetApplicationStatus(ctx context.Context, jobID, applicationID string, status models.ApplicationStatus) error
}

// UserDirectory resolves user references on jobs and applications.
type UserDirectory interface {
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]models.User, error)
}

// ResumeDirectory resolves resume references on applications.
type ResumeDirectory interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]models.Resume, error)
}

// Handler holds job catalog and application workflow HTTP handlers.
type Handler struct {
	jobs    JobStore
	users   UserDirectory
	resumes ResumeDirectory
	logger  *zap.Logger
}

func NewHandler(jobs JobStore, users UserDirectory, resumes ResumeDirectory, logger *zap.Logger) *Handler {
	return &Handler{jobs: jobs, users: users, resumes: resumes, logger: logger}
}

type createJobRequest struct {
	Title        string                 `json:"title"`
	Company      string                 `json:"company"`
	Location     string                 `json:"location"`
	Description  string                 `json:"description"`
	Requirements string                 `json:"requirements"`
	SalaryMin    int                    `json:"salaryMin"`
	SalaryMax    int                    `json:"salaryMax"`
	JobType      models.JobType         `json:"jobType"`
	Experience   models.ExperienceLevel `json:"experience"`
}

// Create posts a new job. The employer reference comes from the
// authenticated identity, never from the request body.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Company) == "" ||
		strings.TrimSpace(req.Location) == "" || req.Description == "" || req.Requirements == "" {
		respond.Error(w, http.StatusBadRequest, "validation_error", "title, company, location, description and requirements are required")
		return
	}
	if !req.JobType.Valid() {
		respond.Error(w, http.StatusBadRequest, "validation_error", "invalid jobType")
		return
	}
	if !req.Experience.Valid() {
		respond.Error(w, http.StatusBadRequest, "validation_error", "invalid experience level")
		return
	}
	if req.SalaryMin <= 0 || req.SalaryMin >= req.SalaryMax {
		respond.Error(w, http.StatusBadRequest, "validation_error", "salary range requires 0 < min < max")
		return
	}

	job := &models.Job{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Description:  req.Description,
		Requirements: req.Requirements,
		Salary:       models.Salary{Min: req.SalaryMin, Max: req.SalaryMax, Currency: "USD"},
		JobType:      req.JobType,
		Experience:   req.Experience,
		Employer:     user.ID,
		IsActive:     true,
	}
	if _, err := h.jobs.Insert(r.Context(), job); err != nil {
		h.logger.Error("insert job", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "internal_error", "server error while creating job")
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Job posted successfully",
		"job":     job,
	})
}

// List returns active jobs matching the optional query filters,
// newest first, with employer names populated.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.JobFilter{
		Search:     q.Get("search"),
		Location:   q.Get("location"),
		JobType:    q.Get("jobType"),
		Experience: q.Get("experience"),
	}

	jobs, err := h.jobs.Search(r.Context(), filter)
	if err != nil {
		h.logger.Error("search jobs", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "internal_error", "server error while fetching jobs")
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	if err := h.populateEmployers(r.Context(), jobs, false); err != nil {
		h.logger.Error("populate employers", zap.Error(err))
	}

	respond.JSON(w, http.StatusOK, map[string]interface{}{"jobs": jobs})
}

// Get returns a single job with employer contact details and the fully
// populated application list.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, "not_found", "job not found")
		return
	}

	single := []models.Job{*job}
	if err := h.populateEmployers(r.Context(), single, true); err != nil {
		h.logger.Error("populate employer", zap.Error(err))
	}
	if err := h.populateApplications(r.Context(), single, true); err != nil {
		h.logger.Error("populate applications", zap.Error(err))
	}

	respond.JSON(w, http.StatusOK, map[string]interface{}{"job": single[0]})
}

// MyJobs returns the authenticated employer's postings, newest first.
func (h *Handler) MyJobs(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	jobs, err := h.jobs.ListByEmployer(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("list employer jobs", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "internal_error", "server error while fetching jobs")
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	if err := h.populateApplications(r.Context(), jobs, false); err != nil {
		h.logger.Error("populate applications", zap.Error(err))
	}

	respond.JSON(w, http.StatusOK, map[string]interface{}{"jobs": jobs})
}

type applyRequest struct {
	ResumeID string `json:"resumeId"`
}

// Apply submits an application to a job. A second application by the
// same jobseeker fails even when both arrive concurrently.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	jobID := chi.URLParam(r, "id")

	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	if req.ResumeID == "" {
		respond.Error(w, http.StatusBadRequest, "validation_error", "resumeId is required")
		return
	}

	app := models.Application{
		ID:        primitive.NewObjectID(),
		Jobseeker: user.ID,
		Resume:    req.ResumeID,
		AppliedAt: time.Now(),
		Status:    models.StatusPending,
	}
	if err := h.jobs.AddApplication(r.Context(), jobID, app); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "not_found", "job not found")
		case errors.Is(err, store.ErrAlreadyApplied):
			respond.Error(w, http.StatusBadRequest, "already_applied", "you have already applied for this job")
		default:
			h.logger.Error("add application", zap.Error(err), zap.String("job_id", jobID))
			respond.Error(w, http.StatusInternalServerError, "internal_error", "server error while applying for job")
		}
		return
	}

	respond.JSON(w, http.StatusOK, map[string]interface{}{"message": "Application submitted successfully"})
}

type statusRequest struct {
	JobID         string                   `json:"jobId"`
	ApplicationID string                   `json:"applicationId"`
	Status        models.ApplicationStatus `json:"status"`
}

// UpdateApplicationStatus transitions one application. Only the job's
// owning employer may do this, and only to an enumerated status.
func (h *Handler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	if !req.Status.Valid() {
		respond.Error(w, http.StatusBadRequest, "validation_error", "status must be one of pending, reviewed, shortlisted, rejected")
		return
	}

	job, err := h.jobs.GetByID(r.Context(), req.JobID)
	if err != nil {
		respond.Error(w, http.StatusNotFound, "not_found", "job not found")
		return
	}
	if job.Employer != user.ID {
		respond.Error(w, http.StatusForbidden, "forbidden", "not authorized to update this job")
		return
	}

	if err := h.jobs.SetApplicationStatus(r.Context(), req.JobID, req.ApplicationID, req.Status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "not_found", "application not found")
			return
		}
		h.logger.Error("set application status", zap.Error(err), zap.String("job_id", req.JobID))
		respond.Error(w, http.StatusInternalServerError, "internal_error", "server error while updating status")
		return
	}

	respond.JSON(w, http.StatusOK, map[string]interface{}{"message": "Application status updated successfully"})
}

// populateEmployers fills EmployerInfo on each job. Contact details
// (email, phone) are only exposed on the job-detail view.
func (h *Handler) populateEmployers(ctx context.Context, jobs []models.Job, withContact bool) error {
	ids := make([]string, 0, len(jobs))
	seen := make(map[string]bool, len(jobs))
	for i := range jobs {
		if !seen[jobs[i].Employer] {
			seen[jobs[i].Employer] = true
			ids = append(ids, jobs[i].Employer)
		}
	}

	users, err := h.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range jobs {
		u, ok := users[jobs[i].Employer]
		if !ok {
			continue
		}
		info := &models.EmployerContact{
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Company:   u.Company,
		}
		if withContact {
			info.Email = u.Email
			info.Phone = u.Phone
		}
		jobs[i].EmployerInfo = info
	}
	return nil
}

// populateApplications fills jobseeker details and, when asked, the
// original resume filename on every embedded application.
func (h *Handler) populateApplications(ctx context.Context, jobs []models.Job, withResumes bool) error {
	var userIDs, resumeIDs []string
	seenUsers := make(map[string]bool)
	seenResumes := make(map[string]bool)
	for i := range jobs {
		for j := range jobs[i].Applications {
			app := &jobs[i].Applications[j]
			if !seenUsers[app.Jobseeker] {
				seenUsers[app.Jobseeker] = true
				userIDs = append(userIDs, app.Jobseeker)
			}
			if withResumes && !seenResumes[app.Resume] {
				seenResumes[app.Resume] = true
				resumeIDs = append(resumeIDs, app.Resume)
			}
		}
	}
	if len(userIDs) == 0 {
		return nil
	}

	users, err := h.users.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return err
	}
	var resumes map[string]models.Resume
	if withResumes {
		if resumes, err = h.resumes.GetByIDs(ctx, resumeIDs); err != nil {
			return err
		}
	}

	for i := range jobs {
		for j := range jobs[i].Applications {
			app := &jobs[i].Applications[j]
			if u, ok := users[app.Jobseeker]; ok {
				app.JobseekerInfo = &models.Applicant{
					FirstName: u.FirstName,
					LastName:  u.LastName,
					Email:     u.Email,
				}
			}
			if res, ok := resumes[app.Resume]; ok {
				app.ResumeName = res.OriginalName
			}
		}
	}
	return nil
}
