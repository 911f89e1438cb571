// Package archive persists serialized router states to S3.
//
// Each state is stored as a JSON object under prefix + id + ".json". Any S3
// compatible store works; set an endpoint for MinIO or LocalStack.
package archive

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/vango-dev/routerstore/internal/config"
	"github.com/vango-dev/routerstore/internal/errors"
	"github.com/vango-dev/routerstore/pkg/routerstore"
)

const contentType = "application/json"

// ObjectAPI is the subset of the S3 client the archive uses.
// *s3.Client satisfies it.
type ObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	s3.ListObjectsV2APIClient
}

// Archive stores serialized router states in an S3 bucket.
type Archive struct {
	client ObjectAPI
	bucket string
	prefix string
	logger *slog.Logger
}

// New creates an archive writing to bucket under prefix.
//
// Example usage:
//
//	a := archive.New(archive.NewClient(cfg.Archive), cfg.Archive.Bucket, cfg.Archive.Prefix, logger)
//	key, err := a.Put(ctx, "nav-42", state)
func New(client ObjectAPI, bucket, prefix string, logger *slog.Logger) *Archive {
	if logger == nil {
		logger = slog.Default()
	}
	return &Archive{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

// NewClient builds an S3 client from archive configuration. Credentials are
// read from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN.
// A custom endpoint switches the client to path-style addressing.
func NewClient(cfg config.ArchiveConfig) *s3.Client {
	opts := s3.Options{
		Region:      cfg.Region,
		Credentials: aws.NewCredentialsCache(envCredentials()),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

func envCredentials() aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		creds := aws.Credentials{
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			Source:          "Environment",
		}
		if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
			return aws.Credentials{}, stderrors.New("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
		}
		return creds, nil
	})
}

// Put stores the JSON encoding of state under id and returns the object key.
// An empty id is replaced by a generated one.
func (a *Archive) Put(ctx context.Context, id string, state any) (string, error) {
	if id == "" {
		id = generateID()
	}
	if err := validateID(id); err != nil {
		return "", err
	}

	data, err := routerstore.Encode(state, false)
	if err != nil {
		return "", err
	}

	key := a.key(id)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"archived-at": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", errors.New("R030").
			WithDetail("s3://" + a.bucket + "/" + key).
			Wrap(err)
	}

	a.logger.Info("router state archived", "bucket", a.bucket, "key", key, "bytes", len(data))
	return key, nil
}

// Get returns the archived JSON for id.
func (a *Archive) Get(ctx context.Context, id string) ([]byte, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	key := a.key(id)
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if stderrors.As(err, &missing) {
			return nil, errors.New("R031").WithDetail(id)
		}
		return nil, errors.New("R034").
			WithDetail("s3://" + a.bucket + "/" + key).
			Wrap(err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.FromError(err, "R034")
	}
	return data, nil
}

// List returns the ids of all archived states.
func (a *Archive) List(ctx context.Context) ([]string, error) {
	paginator := s3.NewListObjectsV2Paginator(a.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String(a.prefix),
	})

	var ids []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.New("R034").
				WithDetail("s3://" + a.bucket + "/" + a.prefix).
				Wrap(err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil || !strings.HasSuffix(*obj.Key, ".json") {
				continue
			}
			ids = append(ids, strings.TrimSuffix(strings.TrimPrefix(*obj.Key, a.prefix), ".json"))
		}
	}
	return ids, nil
}

func (a *Archive) key(id string) string {
	return a.prefix + id + ".json"
}

func validateID(id string) error {
	if id == "" || strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return errors.New("R033").
			WithDetail(strconv.Quote(id))
	}
	return nil
}

func generateID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return time.Now().UTC().Format("20060102T150405") + "-" + hex.EncodeToString(b)
}
