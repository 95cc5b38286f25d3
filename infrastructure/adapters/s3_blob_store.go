package adapters

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/jspector2018/podifyai/application/ports/outbound"
	"github.com/jspector2018/podifyai/config"
)

type s3BlobStore struct {
	s3Svc    *s3.S3
	s3Config *config.S3Config
	logger   outbound.LoggerPort
}

func NewS3BlobStore(s3Svc *s3.S3, s3Config *config.S3Config, logger outbound.LoggerPort) outbound.BlobStorePort {
	return &s3BlobStore{
		s3Svc:    s3Svc,
		s3Config: s3Config,
		logger:   logger,
	}
}

func (s *s3BlobStore) Store(ctx context.Context, req outbound.StoreBlobRequest) (string, error) {
	putInput := &s3.PutObjectInput{
		Bucket:        aws.String(req.Bucket),
		Key:           aws.String(req.Path),
		Body:          bytes.NewReader(req.Content),
		ContentType:   aws.String(req.ContentType),
		ContentLength: aws.Int64(int64(len(req.Content))),
	}

	_, err := s.s3Svc.PutObjectWithContext(ctx, putInput)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to upload object to S3", map[string]interface{}{
			"bucket": req.Bucket,
			"path":   req.Path,
		})
		return "", err
	}

	s3Url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", req.Bucket, s.s3Config.Region, req.Path)
	s.logger.DebugWithFields("Successfully uploaded object to S3", map[string]interface{}{
		"s3Url": s3Url,
	})

	return s3Url, nil
}
