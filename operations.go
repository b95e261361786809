// Package s3sender implements the sender's storage operations. Each
// operation performs its existence guards first, then issues exactly one call
// against the storage service. No operation retries.
package s3sender

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gabriel-vasile/mimetype"

	senderrors "github.com/relaypipe/s3sender/errors"
	"github.com/relaypipe/s3sender/internal/validation"
)

const (
	// DefaultContentType is sent for uploads when detection is disabled or fails
	DefaultContentType = "application/octet-stream"

	// sniffLen is how many leading bytes content-type detection reads
	sniffLen = 512
)

// CreateBucket creates the named bucket if it does not exist. When the bucket
// already exists, existsIsError decides between failure and a no-op success;
// the no-op form backs the auto-creation path of the object operations.
//
// With global bucket access enabled, the configured bucket region becomes the
// location constraint of the create request and must be one of the supported
// regions; otherwise the request carries no location.
func (c *Client) CreateBucket(ctx context.Context, bucket string, existsIsError bool) error {
	exists, err := c.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}

	if exists {
		if existsIsError {
			return senderrors.NewBucketError("createBucket", bucket, senderrors.ErrBucketAlreadyExists).
				WithMessage("please specify a unique bucket name")
		}
		return nil
	}

	input := &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	}
	if c.cfg.ForceGlobalBucketAccess {
		if c.cfg.BucketRegion == "" || !regionSupported(c.cfg.BucketRegion) {
			return senderrors.NewBucketError("createBucket", bucket, senderrors.ErrConfiguration).
				WithMessage(fmt.Sprintf("bucket region unknown or not specified [%s], please use one of the supported regions: %s",
					c.cfg.BucketRegion, strings.Join(availableRegions, ", ")))
		}
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(c.cfg.BucketRegion),
		}
	}

	if _, err := c.api.CreateBucket(ctx, input); err != nil {
		return senderrors.NewBucketError("createBucket", bucket, convertAWSError(err))
	}

	c.log.Info().Str("bucket", bucket).Msg("bucket created")
	return nil
}

// DeleteBucket deletes the named bucket. A missing bucket fails the absence
// guard before any mutating call is attempted.
func (c *Client) DeleteBucket(ctx context.Context, bucket string) error {
	if err := c.requireBucket(ctx, "deleteBucket", bucket); err != nil {
		return err
	}

	if _, err := c.api.DeleteBucket(ctx, &s3.DeleteBucketInput{
		Bucket: aws.String(bucket),
	}); err != nil {
		return senderrors.NewBucketError("deleteBucket", bucket, convertAWSError(err))
	}

	c.log.Info().Str("bucket", bucket).Msg("bucket deleted")
	return nil
}

// Upload puts the data stream into the bucket at key. The bucket is
// auto-created when bucket creation is enabled; an object already present at
// the key is an error and is left untouched.
func (c *Client) Upload(ctx context.Context, bucket, key string, data io.Reader) error {
	if err := validation.ValidateObjectKey(key); err != nil {
		return err
	}

	if err := c.EnsureBucket(ctx, bucket, false); err != nil {
		return err
	}

	exists, err := c.ObjectExists(ctx, bucket, key)
	if err != nil {
		return err
	}
	if exists {
		return senderrors.NewObjectError("upload", bucket, key, senderrors.ErrObjectAlreadyExists).
			WithMessage("please specify a new name for the object")
	}

	contentType := DefaultContentType
	body := data
	if c.detectContentType {
		contentType, body = sniffContentType(data)
	}

	if _, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}); err != nil {
		return senderrors.NewObjectError("upload", bucket, key, convertAWSError(err))
	}

	c.log.Info().Str("bucket", bucket).Str("key", key).Msg("object uploaded")
	return nil
}

// Download retrieves the object and writes its content to destPath on the
// client's filesystem. The response body is fully drained and closed on every
// path; local write failures are operation errors, not log lines.
func (c *Client) Download(ctx context.Context, bucket, key, destPath string) error {
	if err := c.requireBucket(ctx, "download", bucket); err != nil {
		return err
	}
	if err := c.requireObject(ctx, "download", bucket, key); err != nil {
		return err
	}

	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return senderrors.NewObjectError("download", bucket, key, convertAWSError(err))
	}

	if err := c.persist(out.Body, destPath); err != nil {
		return senderrors.NewObjectError("download", bucket, key, err).
			WithMessage("writing object content to " + destPath)
	}

	c.log.Info().Str("bucket", bucket).Str("key", key).Str("dest", destPath).Msg("object downloaded")
	return nil
}

// persist streams body to destPath, creating parent directories as needed.
// The body is drained to EOF and closed even when the local write fails, so
// the connection can be reused.
func (c *Client) persist(body io.ReadCloser, destPath string) (err error) {
	defer func() {
		_, _ = io.Copy(io.Discard, body)
		if closeErr := body.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if dir := filepath.Dir(destPath); dir != "." && dir != "/" {
		if mkErr := c.fs.MkdirAll(dir, 0o755); mkErr != nil {
			return mkErr
		}
	}

	file, err := c.fs.Create(destPath)
	if err != nil {
		return err
	}

	if _, err = io.Copy(file, body); err != nil {
		_ = file.Close()
		return err
	}

	return file.Close()
}

// Copy performs a server-side copy of bucket/key to destBucket/destKey. The
// source must exist, the destination bucket name must be valid and is
// auto-created when bucket creation is enabled, and a destination object
// already present at the key is an error.
func (c *Client) Copy(ctx context.Context, bucket, key, destBucket, destKey string) error {
	if err := c.requireBucket(ctx, "copy", bucket); err != nil {
		return err
	}
	if err := c.requireObject(ctx, "copy", bucket, key); err != nil {
		return err
	}

	if err := validation.ValidateBucketName(destBucket); err != nil {
		return senderrors.NewBucketError("copy", destBucket, senderrors.ErrInvalidBucketName).
			WithMessage(err.Error())
	}
	if err := validation.ValidateObjectKey(destKey); err != nil {
		return err
	}

	if err := c.EnsureBucket(ctx, destBucket, false); err != nil {
		return err
	}

	exists, err := c.ObjectExists(ctx, destBucket, destKey)
	if err != nil {
		return err
	}
	if exists {
		return senderrors.NewObjectError("copy", destBucket, destKey, senderrors.ErrObjectAlreadyExists).
			WithMessage("please specify a new name for the copied object")
	}

	if _, err := c.api.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(destBucket),
		Key:        aws.String(destKey),
		CopySource: aws.String(path.Join(bucket, key)),
	}); err != nil {
		return senderrors.NewObjectError("copy", destBucket, destKey, convertAWSError(err)).
			WithMessage("failed to copy from " + bucket + "/" + key)
	}

	c.log.Info().
		Str("bucket", bucket).
		Str("key", key).
		Str("destBucket", destBucket).
		Str("destKey", destKey).
		Msg("object copied")
	return nil
}

// DeleteObject removes the object at bucket/key. Both the bucket and the
// object must exist; the absence guards fail before any mutating call.
func (c *Client) DeleteObject(ctx context.Context, bucket, key string) error {
	if err := c.requireBucket(ctx, "delete", bucket); err != nil {
		return err
	}
	if err := c.requireObject(ctx, "delete", bucket, key); err != nil {
		return err
	}

	if _, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return senderrors.NewObjectError("delete", bucket, key, convertAWSError(err))
	}

	c.log.Info().Str("bucket", bucket).Str("key", key).Msg("object deleted")
	return nil
}

// EnsureBucket is the only place bucket auto-creation occurs. With bucket
// creation disabled in configuration it fails immediately; otherwise it
// delegates to CreateBucket with the caller's exists-is-error flag. Shared by
// the upload and copy paths.
func (c *Client) EnsureBucket(ctx context.Context, bucket string, existsIsError bool) error {
	if !c.cfg.BucketCreationEnabled {
		exists, err := c.BucketExists(ctx, bucket)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		return senderrors.NewBucketError("ensureBucket", bucket, senderrors.ErrBucketCreationDisabled).
			WithMessage("set bucketCreationEnabled to allow creating missing buckets")
	}
	return c.CreateBucket(ctx, bucket, existsIsError)
}

// requireBucket fails with a descriptive error when the named bucket does not exist.
func (c *Client) requireBucket(ctx context.Context, op, bucket string) error {
	exists, err := c.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if !exists {
		return senderrors.NewBucketError(op, bucket, senderrors.ErrBucketNotFound).
			WithMessage("please specify the name of an existing bucket")
	}
	return nil
}

// requireObject fails with a descriptive error when the named object does not exist.
func (c *Client) requireObject(ctx context.Context, op, bucket, key string) error {
	exists, err := c.ObjectExists(ctx, bucket, key)
	if err != nil {
		return err
	}
	if !exists {
		return senderrors.NewObjectError(op, bucket, key, senderrors.ErrObjectNotFound).
			WithMessage("please specify the name of an existing object")
	}
	return nil
}

// sniffContentType detects the content type from the leading bytes of data
// and returns a reader that replays them. Detection failures fall back to the
// generic binary type.
func sniffContentType(data io.Reader) (string, io.Reader) {
	header := make([]byte, sniffLen)
	n, _ := io.ReadFull(data, header)
	header = header[:n]

	contentType := DefaultContentType
	if n > 0 {
		if mt := mimetype.Detect(header); mt != nil {
			contentType = mt.String()
		}
	}

	return contentType, io.MultiReader(bytes.NewReader(header), data)
}
