package backup

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Uploader ships document snapshots to an S3-compatible bucket (DigitalOcean
// Spaces or plain S3).
type Uploader struct {
	s3Client *s3.S3
	bucket   string
	endpoint string
}

// Config holds credentials and bucket location for the snapshot uploader.
type Config struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Endpoint  string
}

// NewUploader creates a snapshot uploader.
func NewUploader(config Config) (*Uploader, error) {
	sess, err := session.NewSession(&aws.Config{
		Credentials: credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"",
		),
		Endpoint:         aws.String(config.Endpoint),
		Region:           aws.String(config.Region),
		S3ForcePathStyle: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create backup session: %w", err)
	}

	return &Uploader{
		s3Client: s3.New(sess),
		bucket:   config.Bucket,
		endpoint: config.Endpoint,
	}, nil
}

// UploadSnapshot stores one serialized document under a timestamped key and
// returns the object key.
func (u *Uploader) UploadSnapshot(ctx context.Context, data []byte) (string, error) {
	key := fmt.Sprintf("snapshots/state-%s.json", time.Now().UTC().Format("20060102T150405"))

	_, err := u.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        aws.ReadSeekCloser(bytes.NewReader(data)),
		ACL:         aws.String("private"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot: %w", err)
	}
	return key, nil
}
