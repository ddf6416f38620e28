package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string]string
	types   map[string]string
	failPut bool
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string]string{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.failPut {
		return nil, errors.New("bucket unavailable")
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Bucket+"/"+*in.Key] = string(body)
	f.types[*in.Key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, *in.Bucket+"/"+*in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3StorageSaveDelete(t *testing.T) {
	fake := newFakeS3()
	s := newS3Storage(fake, S3Config{Bucket: "media", Region: "us-east-1", Endpoint: "http://minio:9000/"})
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "posts/a.png", strings.NewReader("png"), 3, "image/png"))
	assert.Equal(t, "png", fake.objects["media/posts/a.png"])
	assert.Equal(t, "image/png", fake.types["posts/a.png"])
	assert.Equal(t, "http://minio:9000/media/posts/a.png", s.URL("posts/a.png"))

	require.NoError(t, s.Delete(ctx, "posts/a.png"))
	assert.Empty(t, fake.objects)
}

func TestS3StorageSaveError(t *testing.T) {
	fake := newFakeS3()
	fake.failPut = true
	s := newS3Storage(fake, S3Config{Bucket: "media", Region: "eu-west-1"})

	err := s.Save(context.Background(), "posts/a.png", strings.NewReader("png"), 3, "image/png")
	assert.ErrorContains(t, err, "bucket unavailable")
	assert.Equal(t, "https://media.s3.eu-west-1.amazonaws.com/posts/a.png", s.URL("posts/a.png"))
}

func TestNewS3StorageAppliesRegionAndCredentials(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })

	var lo awsconfig.LoadOptions
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		return aws.Config{Region: lo.Region}, nil
	}

	s, err := NewS3Storage(context.Background(), S3Config{
		Bucket:    "media",
		Region:    "us-east-1",
		Endpoint:  "http://127.0.0.1:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	})
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", lo.Region)
	assert.NotNil(t, lo.Credentials)
	assert.Equal(t, "http://127.0.0.1:9000/media/x", s.URL("x"))
}

func TestNewS3StorageConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no region")
	}
	_, err := NewS3Storage(context.Background(), S3Config{Bucket: "media"})
	assert.ErrorContains(t, err, "no region")
}
