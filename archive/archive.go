// Package archive persists pipeline artifacts to S3: extracted documents as
// JSON snapshots and debug screenshots from the browser tier. A nil *Archive
// is valid and stores nothing.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"searchagent/types"
)

// putObjectAPI is the slice of the S3 client the archive uses; tests
// substitute a recorder.
type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archive writes artifacts under bucket/prefix.
type Archive struct {
	client putObjectAPI
	bucket string
	prefix string
}

// New builds an archive over the default AWS configuration chain.
func New(ctx context.Context, bucket, prefix, region string) (*Archive, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &Archive{
		client: s3.NewFromConfig(awsCfg),
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// SaveDocument uploads the document as a JSON snapshot and returns its key.
func (a *Archive) SaveDocument(ctx context.Context, doc types.ExtractedDocument) (string, error) {
	if a == nil {
		return "", nil
	}
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	key := a.key("documents", types.GenerateID(doc.URL)+".json")
	if err := a.put(ctx, key, body, "application/json"); err != nil {
		return "", err
	}
	return key, nil
}

// SaveScreenshot uploads a browser screenshot of pageURL. Used to debug
// selector drift and anti-bot walls on results pages that stopped yielding.
func (a *Archive) SaveScreenshot(ctx context.Context, pageURL string, png []byte) (string, error) {
	if a == nil {
		return "", nil
	}
	stamp := time.Now().UTC().Format("20060102T150405")
	key := a.key("screenshots", types.GenerateID(pageURL)+"-"+stamp+".png")
	if err := a.put(ctx, key, png, "image/png"); err != nil {
		return "", err
	}
	return key, nil
}

func (a *Archive) put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}

func (a *Archive) key(kind, name string) string {
	if a.prefix == "" {
		return kind + "/" + name
	}
	return a.prefix + "/" + kind + "/" + name
}
