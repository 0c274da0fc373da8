// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/eshopx/eshop-backend/internal/config"
)

// Accepted upload content types and their file extensions.
var imageTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/jpg":  "jpg",
}

type StorageService struct {
	s3Client *s3.S3
	cfg      *config.Config
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.AWS.AccessKeyID == "" {
		// Local disk storage for development
		return &StorageService{cfg: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		cfg:      cfg,
	}, nil
}

// SaveImage validates and stores one uploaded image, returning the
// filename it was stored under.
func (s *StorageService) SaveImage(header *multipart.FileHeader) (string, error) {
	contentType := header.Header.Get("Content-Type")
	ext, ok := imageTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidImageType, contentType)
	}

	if header.Size > s.cfg.Uploads.MaxSizeMB*1024*1024 {
		return "", fmt.Errorf("%w: %d bytes", ErrFileTooLarge, header.Size)
	}

	filename := generateFileName(header.Filename, ext)

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	if s.s3Client != nil {
		return filename, s.saveToS3(file, filename, contentType, header.Size)
	}
	return filename, s.saveToDisk(file, filename)
}

// ImageURL builds the public URL for a stored filename. Local files are
// served from the static uploads path on the request host; S3 objects
// resolve to CloudFront or the bucket endpoint.
func (s *StorageService) ImageURL(scheme, host, filename string) string {
	if s.s3Client != nil {
		if s.cfg.AWS.CloudFrontURL != "" {
			return fmt.Sprintf("%s/%s", strings.TrimSuffix(s.cfg.AWS.CloudFrontURL, "/"), filename)
		}
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.AWS.S3Bucket, s.cfg.AWS.Region, filename)
	}
	return fmt.Sprintf("%s://%s%s/%s", scheme, host, s.cfg.Uploads.PublicPath, filename)
}

func (s *StorageService) saveToDisk(file multipart.File, filename string) error {
	if err := os.MkdirAll(s.cfg.Uploads.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst, err := os.Create(filepath.Join(s.cfg.Uploads.Dir, filename))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (s *StorageService) saveToS3(file multipart.File, filename, contentType string, size int64) error {
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	_, err = s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.AWS.S3Bucket),
		Key:           aws.String(filename),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}

func generateFileName(original, ext string) string {
	base := strings.TrimSuffix(original, filepath.Ext(original))
	base = strings.ReplaceAll(base, " ", "-")
	if base == "" {
		base = "image"
	}
	return fmt.Sprintf("%s-%s.%s", base, uuid.NewString(), ext)
}
