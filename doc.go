// Package s3sender implements a message-framework sender adapter for AWS S3.
// A Sender is configured declaratively with a bucket name and a sequence of
// actions (mkBucket, rmBucket, upload, download, copy, delete); each
// invocation resolves named parameters from the message context and executes
// the configured actions in order against a single shared S3 client.
//
// The Sender validates its configuration once, before any network use, and
// refuses to become usable on a malformed configuration. The client handle is
// created by Open and released by Close; concurrent invocations share it.
//
// Example usage:
//
//	cfg := &s3sender.Config{
//	    Region:     "eu-west-1",
//	    Actions:    "upload",
//	    BucketName: "inbound-documents",
//	    Parameters: []string{"objectKey", "file"},
//	}
//	sender := s3sender.NewSender(cfg)
//	if err := sender.Configure(); err != nil {
//	    return err
//	}
//	if err := sender.Open(ctx); err != nil {
//	    return err
//	}
//	defer sender.Close()
//
//	msg, err := sender.Send(ctx, correlationID, message, paramCtx)
package s3sender
