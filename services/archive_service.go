package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appConfig "github.com/productsuite/productsuite-api/config"
)

// ArchiveInterface defines the interface for the export archive
type ArchiveInterface interface {
	UploadExport(key string, contents []byte) (string, error)
}

// ArchiveService keeps a copy of every generated export in an S3 bucket
type ArchiveService struct {
	client *s3.Client
	bucket string
}

var archiveServiceInstance ArchiveInterface

// InitArchiveService initializes the export archive with AWS credentials.
// It is only called when an archive bucket is configured.
func InitArchiveService() (ArchiveInterface, error) {
	cfg := appConfig.GetConfig()

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	archiveServiceInstance = &ArchiveService{
		client: s3.NewFromConfig(awsConfig),
		bucket: cfg.AWSS3Bucket,
	}
	return archiveServiceInstance, nil
}

// GetArchiveService returns the initialized archive instance, or nil when
// no archive bucket is configured
func GetArchiveService() ArchiveInterface {
	return archiveServiceInstance
}

// SetArchiveService sets the archive instance (primarily for testing)
func SetArchiveService(service ArchiveInterface) {
	archiveServiceInstance = service
}

// UploadExport stores an export under the given key and returns its location
func (s *ArchiveService) UploadExport(key string, contents []byte) (string, error) {
	_, err := s.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(contents),
		ContentType: aws.String(ExcelContentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload export %s: %w", key, err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
