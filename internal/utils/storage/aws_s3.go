package storage

import (
	"Lost-Found-Registry/internal/utils"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	AllowImage = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

	ErrStorageDisabled = errors.New("file storage is not configured")
	ErrFileType        = errors.New("file type not allowed")
)

type (
	AwsS3 interface {
		UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error)
		DeleteFile(ctx context.Context, objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	// objectPutter is the part of *s3.Client used here.
	objectPutter interface {
		PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
		DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	}

	awsS3 struct {
		client objectPutter
		bucket string
		region string
	}
)

// NewAwsS3 builds the S3 client from configuration. Without a bucket every
// upload fails with ErrStorageDisabled.
func NewAwsS3() AwsS3 {
	bucket := utils.GetConfig("AWS_S3_BUCKET")
	region := utils.GetConfig("AWS_S3_REGION")
	s := &awsS3{bucket: bucket, region: region}
	if bucket == "" {
		return s
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if key := utils.GetConfig("AWS_ACCESS_KEY"); key != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, utils.GetConfig("AWS_SECRET_KEY"), ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return s
	}
	s.client = s3.NewFromConfig(cfg)
	return s
}

func NewAwsS3WithClient(client objectPutter, bucket, region string) AwsS3 {
	return &awsS3{client: client, bucket: bucket, region: region}
}

func (s *awsS3) UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	if s.client == nil {
		return "", ErrStorageDisabled
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	contentType := http.DetectContentType(head[:n])
	if len(allowed) > 0 && !contains(allowed, contentType) {
		return "", fmt.Errorf("%w: %s", ErrFileType, contentType)
	}

	objectKey := path.Join(folder, fileName+strings.ToLower(filepath.Ext(file.Filename)))
	body := io.MultiReader(strings.NewReader(string(head[:n])), src)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return objectKey, nil
}

func (s *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	if s.client == nil {
		return ErrStorageDisabled
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (s *awsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("%s/%s", s.baseURL(), objectKey)
}

func (s *awsS3) GetObjectKeyFromLink(link string) string {
	prefix := s.baseURL() + "/"
	if !strings.HasPrefix(link, prefix) {
		return ""
	}
	return strings.TrimPrefix(link, prefix)
}

func (s *awsS3) baseURL() string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s.bucket, s.region)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
