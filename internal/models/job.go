package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
)

func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
		return true
	}
	return false
}

type ExperienceLevel string

const (
	ExperienceEntry  ExperienceLevel = "entry"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
	ExperienceLead   ExperienceLevel = "lead"
)

func (e ExperienceLevel) Valid() bool {
	switch e {
	case ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceLead:
		return true
	}
	return false
}

type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusReviewed    ApplicationStatus = "reviewed"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusRejected    ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusShortlisted, StatusRejected:
		return true
	}
	return false
}

// Salary is the advertised range; Min must be strictly below Max.
type Salary struct {
	Min      int    `json:"min"      bson:"min"`
	Max      int    `json:"max"      bson:"max"`
	Currency string `json:"currency" bson:"currency"`
}

// Applicant is the populated jobseeker view embedded in responses.
type Applicant struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Application is a sub-document embedded in a Job. At most one exists
// per (job, jobseeker) pair.
type Application struct {
	ID        primitive.ObjectID `json:"id"        bson:"_id"`
	Jobseeker string             `json:"jobseeker" bson:"jobseeker"`
	Resume    string             `json:"resume"    bson:"resume"`
	AppliedAt time.Time          `json:"appliedAt" bson:"applied_at"`
	Status    ApplicationStatus  `json:"status"    bson:"status"`

	// Populated at read time, never stored.
	JobseekerInfo *Applicant `json:"jobseekerInfo,omitempty" bson:"-"`
	ResumeName    string     `json:"resumeName,omitempty"    bson:"-"`
}

// EmployerContact is the populated employer view on a Job. Email and
// phone are only filled on the job-detail endpoint.
type EmployerContact struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// Job is a posting stored in MongoDB with its applications embedded.
type Job struct {
	ID           primitive.ObjectID `json:"id"           bson:"_id,omitempty"`
	Title        string             `json:"title"        bson:"title"`
	Company      string             `json:"company"      bson:"company"`
	Location     string             `json:"location"     bson:"location"`
	Description  string             `json:"description"  bson:"description"`
	Requirements string             `json:"requirements" bson:"requirements"`
	Salary       Salary             `json:"salary"       bson:"salary"`
	JobType      JobType            `json:"jobType"      bson:"job_type"`
	Experience   ExperienceLevel    `json:"experience"   bson:"experience"`
	Employer     string             `json:"employer"     bson:"employer"`
	IsActive     bool               `json:"isActive"     bson:"is_active"`
	Applications []Application      `json:"applications" bson:"applications"`
	CreatedAt    time.Time          `json:"createdAt"    bson:"created_at"`

	EmployerInfo *EmployerContact `json:"employerInfo,omitempty" bson:"-"`
}
