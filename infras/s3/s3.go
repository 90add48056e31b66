package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"context"
	"fmt"
	"io"
	"staybook/config"
	"staybook/infras/otel"
	"staybook/shared/constant"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrKey    = "s3.key"
	otelAttrBucket = "s3.bucket"
	otelAttrSize   = "s3.size"
)

// S3 stores public objects in the configured bucket. Upload returns the object
// URL under the public domain.
type S3 interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (url string, err error)
	Delete(ctx context.Context, key string) error
}

type s3Impl struct {
	client       *s3.Client
	bucket       string
	publicDomain string
	otel         otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) S3 {
	external := cfg.External.S3

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(external.AccessKeyID, external.SecretAccessKey, "")),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to load AWS configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if external.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(external.APIEndpoint)
		}

		o.UsePathStyle = true
		o.Region = "auto"
	})

	return &s3Impl{
		client:       client,
		bucket:       external.BucketName,
		publicDomain: strings.TrimSuffix(external.PublicDomain, "/"),
		otel:         otel,
	}
}

func (svc *s3Impl) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Upload")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		otelAttrKey:    key,
		otelAttrBucket: svc.bucket,
		otelAttrSize:   size,
	})

	input := &s3.PutObjectInput{
		Bucket:      aws.String(svc.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}

	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err = svc.client.PutObject(ctx, input); err != nil {
		return constant.Empty, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return svc.publicDomain + "/" + key, nil
}

func (svc *s3Impl) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		otelAttrKey:    key,
		otelAttrBucket: svc.bucket,
	})

	if _, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(svc.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	return nil
}
