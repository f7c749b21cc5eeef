package repository

import (
	"context"

	"tearoomcms/internal/docstore"
	"tearoomcms/internal/model"
)

// JobRepository defines data access for job postings.
type JobRepository interface {
	// Add stores a new posting and returns its generated id.
	Add(ctx context.Context, job *model.JobPosting) (string, error)
	// Get returns a posting by id.
	Get(ctx context.Context, id string) (*model.JobPosting, error)
	// List returns every posting, active or not, newest first.
	List(ctx context.Context) ([]model.JobPosting, error)
	// Delete removes a posting. Deletion is permanent.
	Delete(ctx context.Context, id string) error
}

type jobRepository struct {
	store docstore.Store
}

// NewJobRepository creates a JobRepository on store.
func NewJobRepository(store docstore.Store) JobRepository {
	return &jobRepository{store: store}
}

func (r *jobRepository) Add(ctx context.Context, job *model.JobPosting) (string, error) {
	if err := check(model.CollectionJobs, job); err != nil {
		return "", err
	}
	body := *job
	body.ID = ""
	return r.store.Add(ctx, model.CollectionJobs, body)
}

func (r *jobRepository) Get(ctx context.Context, id string) (*model.JobPosting, error) {
	job, err := decodeOne[model.JobPosting](ctx, r.store, model.CollectionJobs, id)
	if err != nil {
		return nil, err
	}
	job.ID = id
	return job, nil
}

func (r *jobRepository) List(ctx context.Context) ([]model.JobPosting, error) {
	snaps, err := r.store.Query(ctx, model.CollectionJobs, docstore.Query{OrderBy: "postedDate", Desc: true})
	if err != nil {
		return nil, err
	}
	return decodeAll(model.CollectionJobs, snaps, func(v *model.JobPosting, id string) { v.ID = id }), nil
}

func (r *jobRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, model.CollectionJobs, id)
}
