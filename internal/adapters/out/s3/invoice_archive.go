// Package s3 archives signed invoices in an S3 bucket.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const keyPrefix = "signed-invoices"

// ObjectPutter is the part of *s3.Client the archive uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint overrides the AWS endpoint, for S3 compatible stores.
	Endpoint string
}

// InvoiceArchive implements ports.InvoiceArchive.
type InvoiceArchive struct {
	client ObjectPutter
	bucket string
	region string
	clock  func() time.Time
}

var _ ports.InvoiceArchive = (*InvoiceArchive)(nil)

func NewInvoiceArchive(ctx context.Context, cfg Config) (*InvoiceArchive, error) {
	var problems []error
	if strings.TrimSpace(cfg.Bucket) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("bucket"))
	}
	if strings.TrimSpace(cfg.Region) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("region"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	sdkConfig, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewInvoiceArchiveWithClient(client, cfg.Bucket, cfg.Region, nil), nil
}

// NewInvoiceArchiveWithClient builds an archive on an existing client. A nil
// clock means time.Now.
func NewInvoiceArchiveWithClient(client ObjectPutter, bucket, region string, clock func() time.Time) *InvoiceArchive {
	if clock == nil {
		clock = time.Now
	}
	return &InvoiceArchive{client: client, bucket: bucket, region: region, clock: clock}
}

// Store uploads the invoice and returns its s3:// location.
func (a *InvoiceArchive) Store(ctx context.Context, id kernel.OrderID, inv order.SignedInvoiceConfirmation) (string, error) {
	key := objectKey(id, inv.FileName(), a.clock())

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(inv.Content()),
		ContentType:   aws.String(inv.ContentType()),
		ContentLength: aws.Int64(int64(len(inv.Content()))),
		Metadata: map[string]string{
			"sales-order-id": id.String(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload signed invoice to S3: %w", err)
	}

	return fmt.Sprintf("s3://%s/%s", a.bucket, key), nil
}

// objectKey is signed-invoices/<order>/<unix nanos>-<file>.
func objectKey(id kernel.OrderID, fileName string, at time.Time) string {
	return path.Join(keyPrefix, url.PathEscape(id.String()), fmt.Sprintf("%d-%s", at.UnixNano(), fileName))
}
