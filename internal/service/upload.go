// Package service contains the collaborators the handlers call into:
// image storage, mail dispatch and background account cleanup.
package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	a "boycottwatch/catalog-api/aws"
	"boycottwatch/catalog-api/pkg/util"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// UploadResult is what the account and product flows store on the row.
type UploadResult struct {
	URL      string
	PublicID string
}

// Uploader stores an image under a folder and returns its public location.
// The auth core never touches this capability; it is injected only into the
// handlers that deal with media.
type Uploader interface {
	Upload(ctx context.Context, file *multipart.FileHeader, folder string) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}

// S3Uploader implements Uploader on top of the S3 (or R2) bucket.
type S3Uploader struct {
	S3        *a.S3Client
	PublicURL string

	up *manager.Uploader
}

func NewS3Uploader(s *a.S3Client) *S3Uploader {
	return &S3Uploader{
		S3:        s,
		PublicURL: strings.TrimSuffix(viper.GetString("storage.public_url"), "/"),
		up:        manager.NewUploader(s.C),
	}
}

func (u *S3Uploader) Upload(ctx context.Context, file *multipart.FileHeader, folder string) (*UploadResult, error) {
	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file, %w", err)
	}
	defer f.Close()

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}

	key := folder + "/" + util.RandStr(10) + extFor(contentType)

	ctx, cancel := context.WithDeadline(ctx, time.Now().Add(time.Minute))
	defer cancel()

	_, err = u.up.Upload(ctx, &s3.PutObjectInput{
		Bucket:       u.S3.Bucket,
		Key:          aws.String(key),
		Body:         f,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload image, %w", err)
	}

	zap.L().Debug("Uploaded image", zap.String("key", key))

	return &UploadResult{
		URL:      u.PublicURL + "/" + key,
		PublicID: key,
	}, nil
}

func (u *S3Uploader) Delete(ctx context.Context, publicID string) error {
	_, err := u.S3.C.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: u.S3.Bucket,
		Key:    aws.String(publicID),
	})
	return err
}

func extFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
