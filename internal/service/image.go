package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pageza/recipeshare/backend/config"
	"github.com/sirupsen/logrus"

	"github.com/pageza/recipeshare/backend/internal/logger"
)

// MaxImageSize is the largest accepted upload in bytes
const MaxImageSize = 5 << 20

// ObjectPutter is the part of the S3 client used for uploads
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageService stores recipe images in S3
type ImageService struct {
	client    ObjectPutter
	bucket    string
	publicURL func(key string) string
}

// NewImageService creates an ImageService from the S3 configuration
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{
		client:    s3Config.Client,
		bucket:    s3Config.BucketName,
		publicURL: s3Config.PublicURL,
	}
}

// NewImageServiceWithClient creates an ImageService using a custom client
func NewImageServiceWithClient(client ObjectPutter, bucket, publicBaseURL string) *ImageService {
	base := strings.TrimRight(publicBaseURL, "/")
	return &ImageService{
		client: client,
		bucket: bucket,
		publicURL: func(key string) string {
			return base + "/" + key
		},
	}
}

// UploadRecipeImage stores an image under recipes/<userID>/ and returns its public URL
func (s *ImageService) UploadRecipeImage(ctx context.Context, userID uint, filename, contentType string, size int64, body io.Reader) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return "", FieldError("image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}
	if size > MaxImageSize {
		return "", FieldError("image", fmt.Sprintf("Ensure the file is at most %d bytes.", MaxImageSize))
	}

	key := fmt.Sprintf("recipes/%d/%s%s", userID, uuid.NewString(), imageExtension(filename, mediaType))
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(mediaType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	url := s.publicURL(key)
	logger.FromContext(ctx).WithFields(logrus.Fields{
		"key":  key,
		"size": size,
	}).Info("uploaded recipe image")
	return url, nil
}

func imageExtension(filename, mediaType string) string {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
