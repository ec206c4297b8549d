package storage

import (
	"bytes"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Provider stores documents in a single S3-compatible bucket.
type S3Provider struct {
	api    *s3.S3
	bucket string
}

// S3Options configures the S3 backend. Endpoint may point at any
// S3-compatible service.
type S3Options struct {
	KeyID    string
	Secret   string
	Endpoint string
	Region   string
	Bucket   string
}

// NewS3Provider builds an S3 backend from static credentials.
func NewS3Provider(opts S3Options) (*S3Provider, error) {
	cfg := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(opts.KeyID, opts.Secret, ""),
		Region:           aws.String(opts.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if opts.Endpoint != "" {
		cfg.Endpoint = aws.String(opts.Endpoint)
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, err
	}
	return &S3Provider{api: s3.New(sess), bucket: opts.Bucket}, nil
}

func (s *S3Provider) Get(key string) ([]byte, error) {
	out, err := s.api.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (s *S3Provider) Put(key string, data []byte) error {
	_, err := s.api.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	return err
}

func (s *S3Provider) Delete(key string) error {
	_, err := s.api.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Provider) List(prefix string) ([]string, error) {
	var keys []string
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	}
	err := s.api.ListObjectsV2Pages(input, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, item := range page.Contents {
			keys = append(keys, aws.StringValue(item.Key))
		}
		return true
	})
	return keys, err
}

func (s *S3Provider) Exists(key string) (bool, error) {
	_, err := s.api.HeadObject(&s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return false, nil
		}
		// HeadObject reports missing keys as a generic 404.
		if aerr, ok := err.(awserr.RequestFailure); ok && aerr.StatusCode() == 404 {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func isNoSuchKey(err error) bool {
	if aerr, ok := err.(awserr.Error); ok {
		return aerr.Code() == s3.ErrCodeNoSuchKey
	}
	return false
}
