package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/shoplink/shoplink-api/config"
)

// FileStorage is the blob-store collaborator for chat document attachments.
// SaveFile stores the uploaded file under storageName and returns a
// retrievable URL for it.
type FileStorage interface {
	SaveFile(fileHeader *multipart.FileHeader, storageName string) (string, error)
	DeleteFile(storageName string) error
}

var fileStorageInstance FileStorage

// InitFileStorage initializes the file storage backend. When an S3 bucket
// is configured attachments go to S3, otherwise to the local filesystem.
func InitFileStorage(cfg *appConfig.Config) (FileStorage, error) {
	if !cfg.UseS3() {
		fileStorageInstance = NewLocalFileStorage(cfg.UploadDir)
		log.Printf("File storage: local directory %s", cfg.UploadDir)
		return fileStorageInstance, nil
	}

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

	client := s3.NewFromConfig(awsConfig)

	fileStorageInstance = &S3FileStorage{
		client: client,
		bucket: cfg.AWSS3Bucket,
		region: cfg.AWSRegion,
	}
	log.Printf("File storage: S3 bucket %s", cfg.AWSS3Bucket)

	return fileStorageInstance, nil
}

// GetFileStorage returns the initialized file storage instance
func GetFileStorage() FileStorage {
	return fileStorageInstance
}

// SetFileStorage sets the file storage instance (primarily for testing)
func SetFileStorage(storage FileStorage) {
	fileStorageInstance = storage
}

// S3FileStorage stores chat attachments in an S3 bucket
type S3FileStorage struct {
	client *s3.Client
	bucket string
	region string
}

// SaveFile uploads the attachment to S3 under chat-files/{storageName}
// and returns the object URL.
func (s *S3FileStorage) SaveFile(fileHeader *multipart.FileHeader, storageName string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("warning: failed to close file: %v", closeErr)
		}
	}()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	key := "chat-files/" + storageName

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

// DeleteFile deletes an attachment from S3
func (s *S3FileStorage) DeleteFile(storageName string) error {
	if storageName == "" {
		return nil
	}

	_, err := s.client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String("chat-files/" + storageName),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}
