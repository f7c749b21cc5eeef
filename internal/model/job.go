package model

import "time"

// CollectionJobs holds one document per job posting.
const CollectionJobs = "jobs"

// JobType is the employment type of a posting.
type JobType string

const (
	JobFullTime JobType = "full-time"
	JobPartTime JobType = "part-time"
	JobSeasonal JobType = "seasonal"
	JobCasual   JobType = "casual"
)

var jobTypeLabels = map[JobType]string{
	JobFullTime: "Full Time",
	JobPartTime: "Part Time",
	JobSeasonal: "Seasonal",
	JobCasual:   "Casual",
}

// Label returns the display name of the job type, or the raw value for unknown types.
func (t JobType) Label() string {
	if l, ok := jobTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// Valid reports whether t is a known job type.
func (t JobType) Valid() bool {
	_, ok := jobTypeLabels[t]
	return ok
}

// JobPosting is a vacancy. Only active postings are shown publicly.
type JobPosting struct {
	ID          string    `json:"id,omitempty" bson:"-"`
	Title       string    `json:"title" bson:"title" validate:"required"`
	Description string    `json:"description" bson:"description" validate:"required"`
	Type        JobType   `json:"type" bson:"type" validate:"omitempty,oneof=full-time part-time seasonal casual"`
	Salary      *string   `json:"salary" bson:"salary"`
	PostedDate  time.Time `json:"postedDate" bson:"postedDate"`
	Active      bool      `json:"active" bson:"active"`
}
