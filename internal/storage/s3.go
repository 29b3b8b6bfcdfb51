package storage

import (
	"context"
	"io"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the Amazon S3 API used here. The SDK client and
// test fakes both satisfy it.
type S3API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Store implements ObjectStore on top of the AWS SDK v2 S3 client.
type S3Store struct {
	client S3API
}

var _ ObjectStore = (*S3Store)(nil)

func NewS3Store(client S3API) *S3Store {
	return &S3Store{client: client}
}

// ListFolders pages through the bucket with a "/" delimiter and collects
// the common prefixes into a set, so duplicates across pages collapse.
// Listing failures are returned to the caller as-is.
func (s *S3Store) ListFolders(ctx context.Context, bucket string) ([]string, error) {
	folders := make(map[string]struct{})

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(bucket),
		Delimiter: aws.String("/"),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, prefix := range page.CommonPrefixes {
			folders[aws.ToString(prefix.Prefix)] = struct{}{}
		}
	}

	result := make([]string, 0, len(folders))
	for folder := range folders {
		result = append(result, folder)
	}
	sort.Strings(result)
	return result, nil
}

// ListObjects returns the object keys directly under prefix, using the
// same "/" delimiter convention as ListFolders.
func (s *S3Store) ListObjects(ctx context.Context, bucket string, prefix string) ([]string, error) {
	var keys []string

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}

func (s *S3Store) GetObject(ctx context.Context, bucket string, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}
