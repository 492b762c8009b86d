package store

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jobportal/backend/internal/models"
)

// JobFilter holds the optional search filters for the public job list.
type JobFilter struct {
	Search     string
	Location   string
	JobType    string
	Experience string
}

// buildJobFilter translates a JobFilter into a Mongo query. Only active
// jobs are ever matched; text filters are case-insensitive substring
// matches with the input treated literally.
func buildJobFilter(f JobFilter) bson.M {
	query := bson.M{"is_active": true}
	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"company": re},
			bson.M{"description": re},
		}
	}
	if f.Location != "" {
		query["location"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Location), Options: "i"}
	}
	if f.JobType != "" {
		query["job_type"] = f.JobType
	}
	if f.Experience != "" {
		query["experience"] = f.Experience
	}
	return query
}

// JobStore handles job CRUD and application updates in MongoDB.
type JobStore struct {
	col *mongo.Collection
}

func NewJobStore(db *mongo.Database) *JobStore {
	return &JobStore{col: db.Collection("jobs")}
}

func (s *JobStore) Insert(ctx context.Context, job *models.Job) (string, error) {
	job.CreatedAt = time.Now()
	if job.Applications == nil {
		job.Applications = []models.Application{}
	}
	res, err := s.col.InsertOne(ctx, job)
	if err != nil {
		return "", fmt.Errorf("mongo insert job: %w", err)
	}
	oid := res.InsertedID.(primitive.ObjectID)
	job.ID = oid
	return oid.Hex(), nil
}

func (s *JobStore) Search(ctx context.Context, f JobFilter) ([]models.Job, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.col.Find(ctx, buildJobFilter(f), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var jobs []models.Job
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *JobStore) GetByID(ctx context.Context, id string) (*models.Job, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var job models.Job
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&job); err != nil {
		return nil, ErrNotFound
	}
	return &job, nil
}

func (s *JobStore) ListByEmployer(ctx context.Context, employerID string) ([]models.Job, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.col.Find(ctx, bson.M{"employer": employerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var jobs []models.Job
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// AddApplication appends app to the job unless the jobseeker already
// applied. The duplicate guard and the push run as one UpdateOne, so
// per-document atomicity keeps concurrent applies from both landing.
func (s *JobStore) AddApplication(ctx context.Context, jobID string, app models.Application) error {
	oid, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": oid, "applications.jobseeker": bson.M{"$ne": app.Jobseeker}},
		bson.M{"$push": bson.M{"applications": app}},
	)
	if err != nil {
		return fmt.Errorf("mongo add application: %w", err)
	}
	if res.MatchedCount == 0 {
		// Either the job is missing or the guard filtered it out.
		n, err := s.col.CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			return fmt.Errorf("mongo count job: %w", err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return ErrAlreadyApplied
	}
	return nil
}

// SetApplicationStatus updates one embedded application. Ownership is
// checked by the caller against the fetched job.
func (s *JobStore) SetApplicationStatus(ctx context.Context, jobID, applicationID string, status models.ApplicationStatus) error {
	jid, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return ErrNotFound
	}
	aid, err := primitive.ObjectIDFromHex(applicationID)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": jid, "applications._id": aid},
		bson.M{"$set": bson.M{"applications.$.status": status}},
	)
	if err != nil {
		return fmt.Errorf("mongo set status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ResumeStore handles resume metadata CRUD in MongoDB.
type ResumeStore struct {
	col *mongo.Collection
}

func NewResumeStore(db *mongo.Database) *ResumeStore {
	return &ResumeStore{col: db.Collection("resumes")}
}

func (s *ResumeStore) Insert(ctx context.Context, resume *models.Resume) (string, error) {
	resume.UploadedAt = time.Now()
	resume.IsActive = true
	res, err := s.col.InsertOne(ctx, resume)
	if err != nil {
		return "", fmt.Errorf("mongo insert resume: %w", err)
	}
	oid := res.InsertedID.(primitive.ObjectID)
	resume.ID = oid
	return oid.Hex(), nil
}

func (s *ResumeStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Resume, error) {
	opts := options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: -1}})
	cur, err := s.col.Find(ctx, bson.M{"jobseeker": ownerID, "is_active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var resumes []models.Resume
	if err := cur.All(ctx, &resumes); err != nil {
		return nil, err
	}
	return resumes, nil
}

func (s *ResumeStore) GetByID(ctx context.Context, id string) (*models.Resume, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var resume models.Resume
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&resume); err != nil {
		return nil, ErrNotFound
	}
	return &resume, nil
}

// GetByIDs batch-loads resumes for populating application listings.
func (s *ResumeStore) GetByIDs(ctx context.Context, ids []string) (map[string]models.Resume, error) {
	resumes := make(map[string]models.Resume, len(ids))
	if len(ids) == 0 {
		return resumes, nil
	}
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	cur, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var all []models.Resume
	if err := cur.All(ctx, &all); err != nil {
		return nil, err
	}
	for _, r := range all {
		resumes[r.ID.Hex()] = r
	}
	return resumes, nil
}

func (s *ResumeStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("mongo delete resume: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
