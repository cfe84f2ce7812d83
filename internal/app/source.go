package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrUnknownSource is returned for an unsupported dataset location
var ErrUnknownSource = errors.New("unsupported dataset source")

// maxDatasetSize bounds a fetched dataset
const maxDatasetSize = 4 << 20

// Source fetches the raw dataset
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	// Name is used for format detection and logging
	Name() string
}

// S3Config configures the s3:// source for S3-compatible stores (R2, MinIO)
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// NewSource picks a source from the location: s3://bucket/key, http(s)://..., or a file path
func NewSource(ctx context.Context, location string, s3cfg S3Config) (Source, error) {
	if location == "" {
		return nil, fmt.Errorf("%w: empty location", ErrUnknownSource)
	}

	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain path (a single letter scheme is a Windows drive)
		return &FileSource{Path: location}, nil
	}

	switch u.Scheme {
	case "file":
		return &FileSource{Path: u.Path}, nil
	case "http", "https":
		return &HTTPSource{URL: location, Client: &http.Client{Timeout: 10 * time.Second}}, nil
	case "s3":
		return NewS3Source(ctx, u.Host, strings.TrimPrefix(u.Path, "/"), s3cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, u.Scheme)
	}
}

// FileSource reads the dataset from disk
type FileSource struct {
	Path string
}

func (s *FileSource) Name() string { return s.Path }

func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return data, nil
}

// HTTPSource fetches the dataset with a GET request
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s *HTTPSource) Name() string { return s.URL }

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch dataset: %s", resp.Status)
	}
	return readLimited(resp.Body)
}

// objectGetter is the part of the S3 client the source needs
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads the dataset from an object store
type S3Source struct {
	Bucket string
	Key    string
	client objectGetter
}

// NewS3Source builds an S3 client from the default AWS chain, overridden by cfg
func NewS3Source(ctx context.Context, bucket, key string, cfg S3Config) (*S3Source, error) {
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("%w: s3 location needs bucket and key", ErrUnknownSource)
	}

	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	sdkCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Source{Bucket: bucket, Key: key, client: client}, nil
}

func (s *S3Source) Name() string { return s.Key }

func (s *S3Source) Fetch(ctx context.Context) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s/%s: %w", s.Bucket, s.Key, err)
	}
	defer out.Body.Close()

	return readLimited(out.Body)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxDatasetSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	if len(data) > maxDatasetSize {
		return nil, fmt.Errorf("dataset larger than %d bytes", maxDatasetSize)
	}
	return data, nil
}

// Dataset is a fetched and parsed roster with the fingerprint of its raw bytes
type Dataset struct {
	Roster *Roster
	ETag   string
}

// LoadDataset runs fetch and parse for one request
func LoadDataset(ctx context.Context, cfg Config) (*Dataset, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("%w: no source configured", ErrUnknownSource)
	}

	data, err := cfg.Source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	roster, err := Parse(data, cfg.Format, cfg.Source.Name(), cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", cfg.Source.Name(), err)
	}

	return &Dataset{Roster: roster, ETag: Fingerprint(data)}, nil
}
