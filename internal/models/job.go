package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Job applicant statuses
const (
	ApplicantPending  = "pending"
	ApplicantAccepted = "accepted"
	ApplicantRejected = "rejected"
)

// SalaryRange is the advertised salary band for a job
type SalaryRange struct {
	Min int `json:"min" bson:"min"`
	Max int `json:"max" bson:"max"`
}

// Applicant is a single application embedded in a job document
type Applicant struct {
	UserID    string    `json:"user_id" bson:"user_id"`
	Message   string    `json:"message" bson:"message"`
	ResumeURL string    `json:"resume_url" bson:"resume_url"`
	Status    string    `json:"status" bson:"status"`
	AppliedAt time.Time `json:"applied_at" bson:"applied_at"`
}

// Job represents a job listing stored in MongoDB
type Job struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID       string             `json:"author_id" bson:"author_id"`
	JobTitle       string             `json:"job_title" bson:"job_title"`
	Role           string             `json:"role" bson:"role"`
	Category       string             `json:"category" bson:"category"`
	CompanyName    string             `json:"company_name" bson:"company_name"`
	JobDescription string             `json:"job_description" bson:"job_description"`
	City           string             `json:"city" bson:"city"`
	Country        string             `json:"country" bson:"country"`
	EmploymentType string             `json:"employment_type" bson:"employment_type"`
	Deadline       *time.Time         `json:"deadline,omitempty" bson:"deadline,omitempty"`
	SalaryRange    *SalaryRange       `json:"salary_range,omitempty" bson:"salary_range,omitempty"`
	SkillsRequired []string           `json:"skills_required,omitempty" bson:"skills_required,omitempty"`
	Applicants     []Applicant        `json:"applicants,omitempty" bson:"applicants,omitempty"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

// JobCompact is the denormalized job snippet embedded in enriched notifications
type JobCompact struct {
	ID          primitive.ObjectID `json:"id"`
	JobTitle    string             `json:"job_title"`
	CompanyName string             `json:"company_name"`
}

// ToCompact returns the compact representation of a job
func (j *Job) ToCompact() JobCompact {
	return JobCompact{
		ID:          j.ID,
		JobTitle:    j.JobTitle,
		CompanyName: j.CompanyName,
	}
}

// CreateJobRequest defines the request body for creating a job listing
type CreateJobRequest struct {
	JobTitle       string       `json:"job_title" validate:"required,min=2,max=120"`
	Role           string       `json:"role" validate:"required,min=2,max=120"`
	Category       string       `json:"category" validate:"required,min=2,max=60"`
	CompanyName    string       `json:"company_name" validate:"required,min=1,max=120"`
	JobDescription string       `json:"job_description" validate:"required,min=10"`
	City           string       `json:"city,omitempty"`
	Country        string       `json:"country,omitempty"`
	EmploymentType string       `json:"employment_type" validate:"required,oneof=fulltime freelance contract internship"`
	Deadline       *time.Time   `json:"deadline,omitempty"`
	SalaryRange    *SalaryRange `json:"salary_range,omitempty"`
	SkillsRequired []string     `json:"skills_required,omitempty"`
}

// ApplyToJobRequest defines the request body for applying to a job
type ApplyToJobRequest struct {
	Message   string `json:"message" validate:"required,min=1,max=1000"`
	ResumeURL string `json:"resume_url" validate:"required,url"`
}

// DecideApplicationRequest defines the request body for accepting or
// rejecting an applicant
type DecideApplicationRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}
