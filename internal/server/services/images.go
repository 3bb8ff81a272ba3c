package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	sc "github.com/ppandzharov/blogadmin/internal/server/config"
)

// ImageService hands out presigned upload URLs for post images stored in an
// S3-compatible bucket. The server never proxies image bytes; the admin
// frontend uploads directly against the presigned URL.
type ImageService struct {
	config *sc.Config
}

func NewImageService(config *sc.Config) *ImageService {
	return &ImageService{config: config}
}

// imageStorageKey derives a collision-free object key that keeps the
// original file name readable at the end of the path.
func imageStorageKey(filename string) string {
	d := time.Now()
	name := strings.ReplaceAll(filename, "/", "_")
	return fmt.Sprintf("images/%d/%02d/%v-%s", d.Year(), int(d.Month()), uuid.New(), name)
}

func (s *ImageService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return s3.NewPresignClient(client), nil
}

// PresignUpload returns the storage key and a presigned PUT URL for
// uploading an image named filename.
func (s *ImageService) PresignUpload(ctx context.Context, filename string) (string, string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := imageStorageKey(filename)

	req, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// ImageURL returns the public URL of an uploaded object, for embedding in
// post bodies.
func (s *ImageService) ImageURL(key string) string {
	base := strings.TrimRight(s.config.S3BaseEndpoint, "/")
	return fmt.Sprintf("%s/%s/%s", base, s.config.S3Bucket, key)
}
