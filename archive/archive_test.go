package archive

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"searchagent/types"
)

type recordingS3 struct {
	keys   []string
	bodies [][]byte
	types  []string
}

func (r *recordingS3) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, _ := io.ReadAll(in.Body)
	r.keys = append(r.keys, *in.Key)
	r.bodies = append(r.bodies, body)
	r.types = append(r.types, *in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func TestSaveDocument(t *testing.T) {
	rec := &recordingS3{}
	a := &Archive{client: rec, bucket: "bucket", prefix: "agent"}

	doc := types.ExtractedDocument{
		URL:     "https://a.example.com/story",
		Title:   "Story",
		Content: "Body",
	}
	key, err := a.SaveDocument(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(key, "agent/documents/") || !strings.HasSuffix(key, ".json") {
		t.Errorf("key = %q", key)
	}
	if rec.types[0] != "application/json" {
		t.Errorf("content type = %q", rec.types[0])
	}

	var round types.ExtractedDocument
	if err := json.Unmarshal(rec.bodies[0], &round); err != nil {
		t.Fatalf("stored body not valid JSON: %v", err)
	}
	if round.URL != doc.URL || round.Title != doc.Title {
		t.Errorf("round trip mismatch: %+v", round)
	}
}

func TestSaveScreenshot(t *testing.T) {
	rec := &recordingS3{}
	a := &Archive{client: rec, bucket: "bucket", prefix: ""}

	key, err := a.SaveScreenshot(context.Background(), "https://a.example.com", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(key, "screenshots/") || !strings.HasSuffix(key, ".png") {
		t.Errorf("key = %q", key)
	}
	if rec.types[0] != "image/png" {
		t.Errorf("content type = %q", rec.types[0])
	}
}

func TestNilArchiveIsNoop(t *testing.T) {
	var a *Archive
	key, err := a.SaveDocument(context.Background(), types.ExtractedDocument{URL: "https://x"})
	if err != nil || key != "" {
		t.Errorf("nil archive should no-op, got %q, %v", key, err)
	}
}
