package testutil

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/relaypipe/s3sender/internal/s3api"
)

// FakeStore is an in-memory S3API implementation. It models just enough of
// the service for action-sequence tests: buckets are maps of key to content,
// head calls answer existence, and missing resources produce the same typed
// errors the SDK surfaces.
type FakeStore struct {
	mu      sync.Mutex
	buckets map[string]map[string][]byte

	// Calls records operation names in invocation order.
	Calls []string
}

// NewFakeStore returns an empty in-memory store.
func NewFakeStore() *FakeStore {
	return &FakeStore{buckets: make(map[string]map[string][]byte)}
}

// Seed creates the bucket and, when key is non-empty, an object in it.
func (f *FakeStore) Seed(bucket, key string, content []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.buckets[bucket] == nil {
		f.buckets[bucket] = make(map[string][]byte)
	}
	if key != "" {
		f.buckets[bucket][key] = content
	}
}

// HasBucket reports whether the bucket exists in the store.
func (f *FakeStore) HasBucket(bucket string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.buckets[bucket]
	return ok
}

// Object returns the stored content for bucket/key.
func (f *FakeStore) Object(bucket, key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	objects, ok := f.buckets[bucket]
	if !ok {
		return nil, false
	}
	content, ok := objects[key]
	return content, ok
}

func (f *FakeStore) record(op string) {
	f.Calls = append(f.Calls, op)
}

// HeadBucket answers bucket existence.
func (f *FakeStore) HeadBucket(
	_ context.Context,
	params *s3.HeadBucketInput,
	_ ...func(*s3.Options),
) (*s3.HeadBucketOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("HeadBucket")
	if _, ok := f.buckets[aws.ToString(params.Bucket)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadBucketOutput{}, nil
}

// HeadObject answers object existence.
func (f *FakeStore) HeadObject(
	_ context.Context,
	params *s3.HeadObjectInput,
	_ ...func(*s3.Options),
) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("HeadObject")
	objects, ok := f.buckets[aws.ToString(params.Bucket)]
	if !ok {
		return nil, &types.NotFound{}
	}
	if _, ok := objects[aws.ToString(params.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

// CreateBucket creates the bucket, failing when it already exists.
func (f *FakeStore) CreateBucket(
	_ context.Context,
	params *s3.CreateBucketInput,
	_ ...func(*s3.Options),
) (*s3.CreateBucketOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CreateBucket")
	bucket := aws.ToString(params.Bucket)
	if _, ok := f.buckets[bucket]; ok {
		return nil, &types.BucketAlreadyOwnedByYou{}
	}
	f.buckets[bucket] = make(map[string][]byte)
	return &s3.CreateBucketOutput{}, nil
}

// DeleteBucket removes the bucket.
func (f *FakeStore) DeleteBucket(
	_ context.Context,
	params *s3.DeleteBucketInput,
	_ ...func(*s3.Options),
) (*s3.DeleteBucketOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteBucket")
	bucket := aws.ToString(params.Bucket)
	if _, ok := f.buckets[bucket]; !ok {
		return nil, &types.NoSuchBucket{}
	}
	delete(f.buckets, bucket)
	return &s3.DeleteBucketOutput{}, nil
}

// PutObject stores the body under bucket/key.
func (f *FakeStore) PutObject(
	_ context.Context,
	params *s3.PutObjectInput,
	_ ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	content, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("PutObject")
	objects, ok := f.buckets[aws.ToString(params.Bucket)]
	if !ok {
		return nil, &types.NoSuchBucket{}
	}
	objects[aws.ToString(params.Key)] = content
	return &s3.PutObjectOutput{}, nil
}

// GetObject returns the stored body for bucket/key.
func (f *FakeStore) GetObject(
	_ context.Context,
	params *s3.GetObjectInput,
	_ ...func(*s3.Options),
) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetObject")
	objects, ok := f.buckets[aws.ToString(params.Bucket)]
	if !ok {
		return nil, &types.NoSuchBucket{}
	}
	content, ok := objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(strings.NewReader(string(content))),
		ContentLength: aws.Int64(int64(len(content))),
	}, nil
}

// CopyObject copies the source named by CopySource ("bucket/key") to the
// destination bucket/key.
func (f *FakeStore) CopyObject(
	_ context.Context,
	params *s3.CopyObjectInput,
	_ ...func(*s3.Options),
) (*s3.CopyObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CopyObject")

	source := strings.TrimPrefix(aws.ToString(params.CopySource), "/")
	srcBucket, srcKey, ok := strings.Cut(source, "/")
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	srcObjects, ok := f.buckets[srcBucket]
	if !ok {
		return nil, &types.NoSuchBucket{}
	}
	content, ok := srcObjects[srcKey]
	if !ok {
		return nil, &types.NoSuchKey{}
	}

	destObjects, ok := f.buckets[aws.ToString(params.Bucket)]
	if !ok {
		return nil, &types.NoSuchBucket{}
	}
	destObjects[aws.ToString(params.Key)] = append([]byte(nil), content...)
	return &s3.CopyObjectOutput{}, nil
}

// DeleteObject removes the object at bucket/key.
func (f *FakeStore) DeleteObject(
	_ context.Context,
	params *s3.DeleteObjectInput,
	_ ...func(*s3.Options),
) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteObject")
	objects, ok := f.buckets[aws.ToString(params.Bucket)]
	if !ok {
		return nil, &types.NoSuchBucket{}
	}
	delete(objects, aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, nil
}

// Ensure FakeStore implements s3api.S3API interface
var _ s3api.S3API = (*FakeStore)(nil)
