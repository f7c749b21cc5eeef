package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"tearoomcms/internal/model"
	"tearoomcms/internal/notify"
	"tearoomcms/internal/repository"
)

// JobInput is the job posting form.
type JobInput struct {
	Title       string
	Description string
	Type        string
	Salary      string
}

// JobService defines the job posting use cases.
type JobService interface {
	// Create adds an active posting dated now. An empty Type means full-time and an empty Salary is stored as null.
	Create(ctx context.Context, in JobInput) (*model.JobPosting, error)
	// List returns every posting, newest first.
	List(ctx context.Context) ([]model.JobPosting, error)
	// Delete permanently removes a posting.
	Delete(ctx context.Context, id string) error
}

type jobService struct {
	repo     repository.JobRepository
	notifier notify.Notifier
	now      Clock
}

// NewJobService constructs a JobService.
func NewJobService(repo repository.JobRepository, notifier notify.Notifier, now Clock) JobService {
	return &jobService{repo: repo, notifier: notifier, now: now}
}

func (s *jobService) Create(ctx context.Context, in JobInput) (*model.JobPosting, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return nil, invalid(msgJobFields)
	}

	jobType := model.JobType(strings.TrimSpace(in.Type))
	if jobType == "" {
		jobType = model.JobFullTime
	}
	if !jobType.Valid() {
		return nil, invalid(msgInvalidJobType)
	}

	var salary *string
	if v := strings.TrimSpace(in.Salary); v != "" {
		salary = &v
	}

	job := &model.JobPosting{
		Title:       title,
		Description: description,
		Type:        jobType,
		Salary:      salary,
		PostedDate:  s.now().UTC(),
		Active:      true,
	}
	id, err := s.repo.Add(ctx, job)
	if err != nil {
		return nil, failed("create job posting", err)
	}
	job.ID = id

	log.Info().Str("id", id).Str("title", title).Msg("job posting created")
	s.notifier.Notify(ctx)
	return job, nil
}

func (s *jobService) List(ctx context.Context) ([]model.JobPosting, error) {
	jobs, err := s.repo.List(ctx)
	if err != nil {
		return nil, failed("load job postings", err)
	}
	return jobs, nil
}

func (s *jobService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return failed("delete job posting", err)
	}

	log.Info().Str("id", id).Msg("job posting deleted")
	s.notifier.Notify(ctx)
	return nil
}
