package s3sender

import (
	"context"
	"path"
	"sync"

	"github.com/rs/zerolog"

	senderrors "github.com/relaypipe/s3sender/errors"
)

// Sender executes a configured sequence of S3 actions per message. The host
// framework drives its lifecycle: Configure validates the declarative
// configuration (fail closed), Open builds the shared client, Send runs the
// action sequence per invocation, Close releases the client.
//
// Concurrent Send calls share the client; Close must not race in-flight
// sends, which is the host's ordering responsibility.
type Sender struct {
	cfg  *Config
	opts []Option

	// actions is the typed action sequence, resolved once by Configure
	actions []Action

	client *Client
	log    zerolog.Logger

	mu         sync.RWMutex
	configured bool
	opened     bool
	closed     bool
}

// NewSender creates a Sender for the given configuration. The sender is not
// usable until Configure and Open have succeeded.
func NewSender(cfg *Config, opts ...Option) *Sender {
	return &Sender{
		cfg:  cfg,
		opts: opts,
		log:  zerolog.Nop(),
	}
}

// Configure validates the configuration and resolves the action token list
// into a typed sequence. A failure leaves the sender permanently unusable;
// it performs no network access.
func (s *Sender) Configure() error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}

	actions, err := ParseActions(s.cfg.Actions)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = actions
	s.configured = true
	return nil
}

// Open constructs the shared storage client from the configuration. Calling
// Open twice is undefined and not guarded.
func (s *Sender) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.configured {
		return senderrors.NewError("open", senderrors.ErrSenderNotConfigured)
	}
	if s.closed {
		return senderrors.NewError("open", senderrors.ErrSenderClosed)
	}

	client, err := newClient(ctx, s.cfg, s.opts...)
	if err != nil {
		return err
	}

	s.client = client
	s.log = client.log
	s.opened = true
	return nil
}

// Close releases the client. Subsequent sends fail rather than silently
// doing nothing.
func (s *Sender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.client = nil
	s.opened = false
	s.closed = true
	return nil
}

// Send resolves the declared parameters against the message context and
// executes the configured actions in order against the configured bucket.
// Every action runs unless one returns an error; the sender never
// short-circuits on a logical outcome. The returned message is the input
// message, unmodified.
func (s *Sender) Send(ctx context.Context, correlationID, message string, pc ParameterContext) (string, error) {
	client, actions, err := s.checkout()
	if err != nil {
		return message, err
	}

	values := Values{}
	if pc != nil {
		values, err = pc.Resolve(ctx, s.cfg.Parameters, message)
		if err != nil {
			return message, senderrors.NewError("send", senderrors.ErrParameter).
				WithMessage("evaluating parameters: " + err.Error())
		}
	}

	// The object key parameter overrides the message body as object name.
	objectKey := values.String(ParamObjectKey, message)

	for _, action := range actions {
		s.log.Debug().
			Str("correlationId", correlationID).
			Str("action", action.String()).
			Str("bucket", s.cfg.BucketName).
			Msg("executing action")

		if err := s.execute(ctx, client, action, objectKey, values); err != nil {
			return message, err
		}
	}

	return message, nil
}

// checkout returns the shared client and action sequence, or the lifecycle
// error explaining why the sender is unusable.
func (s *Sender) checkout() (*Client, []Action, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.configured {
		return nil, nil, senderrors.NewError("send", senderrors.ErrSenderNotConfigured)
	}
	if s.closed {
		return nil, nil, senderrors.NewError("send", senderrors.ErrSenderClosed)
	}
	if !s.opened || s.client == nil {
		return nil, nil, senderrors.NewError("send", senderrors.ErrSenderNotConfigured).
			WithMessage("sender was never opened")
	}
	return s.client, s.actions, nil
}

// execute dispatches one action, checking its invocation-time requirements.
func (s *Sender) execute(ctx context.Context, client *Client, action Action, objectKey string, values Values) error {
	bucket := s.cfg.BucketName

	switch action {
	case ActionCreateBucket:
		return client.CreateBucket(ctx, bucket, true)

	case ActionDeleteBucket:
		return client.DeleteBucket(ctx, bucket)

	case ActionUpload:
		if objectKey == "" {
			return senderrors.NewBucketError("upload", bucket, senderrors.ErrInvalidObjectKey).
				WithMessage("no value found for the object key, please assign a value")
		}
		data, ok := values.Reader(ParamFile)
		if !ok {
			return senderrors.NewObjectError("upload", bucket, objectKey, senderrors.ErrParameter).
				WithMessage("the file parameter carries no value, it must be present to perform [upload]")
		}
		return client.Upload(ctx, bucket, objectKey, data)

	case ActionDownload:
		if objectKey == "" {
			return senderrors.NewBucketError("download", bucket, senderrors.ErrInvalidObjectKey).
				WithMessage("no value found for the object key, please assign a value")
		}
		destPath := values.String(ParamDestinationPath, "")
		if destPath == "" {
			if s.cfg.DownloadDirectory == "" {
				return senderrors.NewObjectError("download", bucket, objectKey, senderrors.ErrParameter).
					WithMessage("no destinationPath parameter and no download directory configured")
			}
			destPath = path.Join(s.cfg.DownloadDirectory, objectKey)
		}
		return client.Download(ctx, bucket, objectKey, destPath)

	case ActionCopy:
		if objectKey == "" {
			return senderrors.NewBucketError("copy", bucket, senderrors.ErrInvalidObjectKey).
				WithMessage("no value found for the object key, please assign a value")
		}
		destBucket := values.String(ParamDestinationBucket, "")
		destKey := values.String(ParamDestinationKey, "")
		if destBucket == "" || destKey == "" {
			return senderrors.NewObjectError("copy", bucket, objectKey, senderrors.ErrParameter).
				WithMessage("no value in destinationBucketName and/or destinationObjectKey parameter found, both must be present to perform [copy]")
		}
		return client.Copy(ctx, bucket, objectKey, destBucket, destKey)

	case ActionDelete:
		if objectKey == "" {
			return senderrors.NewBucketError("delete", bucket, senderrors.ErrInvalidObjectKey).
				WithMessage("no value found for the object key, please assign a value")
		}
		return client.DeleteObject(ctx, bucket, objectKey)
	}

	// Unreachable: Configure rejects unknown tokens.
	return senderrors.NewError("send", senderrors.ErrConfiguration).
		WithMessage("unsupported action " + action.String())
}
