package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resume is the metadata record for an uploaded file. The bytes live in
// object storage under ObjectKey; the key is never exposed to clients.
type Resume struct {
	ID           primitive.ObjectID `json:"id"           bson:"_id,omitempty"`
	Jobseeker    string             `json:"jobseeker"    bson:"jobseeker"`
	Filename     string             `json:"filename"     bson:"filename"`
	OriginalName string             `json:"originalName" bson:"original_name"`
	ObjectKey    string             `json:"-"            bson:"object_key"`
	FileSize     int64              `json:"fileSize"     bson:"file_size"`
	MimeType     string             `json:"mimeType"     bson:"mime_type"`
	IsActive     bool               `json:"isActive"     bson:"is_active"`
	UploadedAt   time.Time          `json:"uploadedAt"   bson:"uploaded_at"`
}

// ResumeView is the trimmed shape returned after a successful upload.
type ResumeView struct {
	ID           primitive.ObjectID `json:"id"`
	OriginalName string             `json:"originalName"`
	FileSize     int64              `json:"fileSize"`
	UploadedAt   time.Time          `json:"uploadedAt"`
}
