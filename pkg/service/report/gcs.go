package report

import (
	"context"
	"path"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/domain/interfaces"
	"google.golang.org/api/option"
)

// GCSSink uploads reports to a Cloud Storage bucket
type GCSSink struct {
	client *storage.Client
	bucket string
	prefix string
}

var _ interfaces.ReportSink = &GCSSink{}

// NewGCSSink creates a Cloud Storage client with application default
// credentials unless opts override them. Call Close when done.
func NewGCSSink(ctx context.Context, bucket, prefix string, opts ...option.ClientOption) (*GCSSink, error) {
	if bucket == "" {
		return nil, goerr.New("gcs bucket is required")
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Cloud Storage client")
	}
	return &GCSSink{client: client, bucket: bucket, prefix: prefix}, nil
}

func (s *GCSSink) Put(ctx context.Context, name string, body []byte) (string, error) {
	key := path.Join(s.prefix, name)
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = "text/plain; charset=utf-8"

	if _, err := w.Write(body); err != nil {
		_ = w.Close()
		return "", goerr.Wrap(err, "failed to write report to Cloud Storage",
			goerr.V("bucket", s.bucket),
			goerr.V("object", key))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize report upload",
			goerr.V("bucket", s.bucket),
			goerr.V("object", key))
	}
	return "gs://" + s.bucket + "/" + key, nil
}

// Close releases the underlying client
func (s *GCSSink) Close() error {
	return s.client.Close()
}
