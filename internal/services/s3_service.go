package services

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"sway-pr/config"
	"sway-pr/internal/utils"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// FileArchive keeps a copy of uploaded source files.
type FileArchive interface {
	Archive(ctx context.Context, folder, fileName string, data []byte, contentType string) (string, error)
}

type S3Service struct {
	s3Client s3iface.S3API
	config   *config.S3Config
}

func NewS3Service(config *config.S3Config) (*S3Service, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:           aws.String(config.Region),
		Credentials:      credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, ""),
		Endpoint:         aws.String(config.ServiceUrl),
		S3ForcePathStyle: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("error creating S3 session: %v", err)
	}

	return NewS3ServiceWithClient(s3.New(sess), config), nil
}

func NewS3ServiceWithClient(client s3iface.S3API, config *config.S3Config) *S3Service {
	return &S3Service{s3Client: client, config: config}
}

// Archive stores data under folder/<unix-nanos>-<fileName> and returns its URL.
func (s *S3Service) Archive(ctx context.Context, folder, fileName string, data []byte, contentType string) (string, error) {
	key := path.Join(folder, fmt.Sprintf("%d-%s", time.Now().UnixNano(), path.Base(fileName)))
	return s.UploadBytes(ctx, data, key, contentType)
}

func (s *S3Service) UploadBytes(ctx context.Context, data []byte, key string, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	utils.LogDebug("uploading %s to S3 (%d bytes)", key, len(data))

	params := &s3.PutObjectInput{
		Bucket:      aws.String(s.config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}

	if _, err := s.s3Client.PutObjectWithContext(ctx, params); err != nil {
		return "", fmt.Errorf("error uploading to S3: %v", err)
	}

	fileUrl := fmt.Sprintf("%s/%s", s.config.BucketUrl, key)
	utils.LogInfo("archived %s", fileUrl)

	return fileUrl, nil
}
