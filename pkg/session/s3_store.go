package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the slice of the S3 client the store uses.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store keeps one JSON transcript object per session under a fixed key
// prefix. The sliding window is applied both on load and on write, so the
// stored object never grows past the window.
type S3Store struct {
	client S3API
	bucket string
	prefix string
	window int
}

var _ Store = &S3Store{}

func NewS3Store(client S3API, bucket, prefix string, window int) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
		window: window,
	}
}

func (s *S3Store) key(sessionID string) string {
	return s.prefix + sessionID + ".json"
}

func (s *S3Store) Load(ctx context.Context, sessionID string) ([]Message, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(sessionID)),
	})
	if err != nil {
		var notFound *types.NoSuchKey
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", sessionID, err)
	}

	var messages []Message
	if err := json.Unmarshal(body, &messages); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionID, err)
	}

	return Window(messages, s.window), nil
}

func (s *S3Store) Append(ctx context.Context, sessionID string, turns ...Message) error {
	messages, err := s.Load(ctx, sessionID)
	if err != nil {
		return err
	}

	messages = Window(append(messages, turns...), s.window)

	body, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sessionID, err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(sessionID)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("persist session %s: %w", sessionID, err)
	}
	return nil
}
