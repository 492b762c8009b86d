package store

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildJobFilterAlwaysActiveOnly(t *testing.T) {
	q := buildJobFilter(JobFilter{})
	if q["is_active"] != true {
		t.Fatalf("expected is_active:true, got %v", q)
	}
	if len(q) != 1 {
		t.Fatalf("empty filter should only constrain is_active, got %v", q)
	}
}

func TestBuildJobFilterSearch(t *testing.T) {
	q := buildJobFilter(JobFilter{Search: "engineer"})
	or, ok := q["$or"].(bson.A)
	if !ok || len(or) != 3 {
		t.Fatalf("expected $or over three fields, got %v", q["$or"])
	}
	first := or[0].(bson.M)
	re, ok := first["title"].(primitive.Regex)
	if !ok {
		t.Fatalf("expected regex on title, got %T", first["title"])
	}
	if re.Pattern != "engineer" || re.Options != "i" {
		t.Fatalf("expected case-insensitive literal pattern, got %+v", re)
	}
}

func TestBuildJobFilterEscapesRegexMeta(t *testing.T) {
	q := buildJobFilter(JobFilter{Search: "c++ (senior)"})
	or := q["$or"].(bson.A)
	re := or[0].(bson.M)["title"].(primitive.Regex)
	if re.Pattern == "c++ (senior)" {
		t.Fatalf("regex metacharacters were not escaped: %q", re.Pattern)
	}
}

func TestBuildJobFilterExactAndSubstringFields(t *testing.T) {
	q := buildJobFilter(JobFilter{
		Location:   "Berlin",
		JobType:    "internship",
		Experience: "entry",
	})
	if q["job_type"] != "internship" {
		t.Fatalf("jobType must match exactly, got %v", q["job_type"])
	}
	if q["experience"] != "entry" {
		t.Fatalf("experience must match exactly, got %v", q["experience"])
	}
	re, ok := q["location"].(primitive.Regex)
	if !ok || re.Options != "i" {
		t.Fatalf("location must be a case-insensitive substring match, got %v", q["location"])
	}
}
