package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/domain/interfaces"
	"github.com/secmon-lab/casekeeper/pkg/service/report"
	"github.com/secmon-lab/casekeeper/pkg/utils/logging"
	"github.com/secmon-lab/casekeeper/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// Report sink names
const (
	SinkFile = "file"
	SinkS3   = "s3"
	SinkGCS  = "gcs"
)

// Report holds CLI flags selecting where reports are written
type Report struct {
	sink   string
	dir    string
	prefix string

	s3Bucket      string
	s3Region      string
	s3Endpoint    string
	s3PathStyle   bool
	s3AccessKeyID string
	s3SecretKey   string
	gcsBucket     string
}

// Flags returns CLI flags for report configuration
func (x *Report) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "report-sink",
			Usage:       "Report destination (file, s3, gcs)",
			Value:       SinkFile,
			Sources:     cli.EnvVars("CASEKEEPER_REPORT_SINK"),
			Destination: &x.sink,
		},
		&cli.StringFlag{
			Name:        "report-dir",
			Usage:       "Directory for reports when report-sink is file",
			Value:       ".",
			Sources:     cli.EnvVars("CASEKEEPER_REPORT_DIR"),
			Destination: &x.dir,
		},
		&cli.StringFlag{
			Name:        "report-prefix",
			Usage:       "Object key prefix for s3 and gcs sinks",
			Sources:     cli.EnvVars("CASEKEEPER_REPORT_PREFIX"),
			Destination: &x.prefix,
		},
		&cli.StringFlag{
			Name:        "report-s3-bucket",
			Usage:       "S3 bucket for reports",
			Sources:     cli.EnvVars("CASEKEEPER_REPORT_S3_BUCKET"),
			Destination: &x.s3Bucket,
		},
		&cli.StringFlag{
			Name:        "report-s3-region",
			Usage:       "AWS region of the report bucket",
			Value:       "us-east-1",
			Sources:     cli.EnvVars("CASEKEEPER_REPORT_S3_REGION", "AWS_REGION"),
			Destination: &x.s3Region,
		},
		&cli.StringFlag{
			Name:        "report-s3-endpoint",
			Usage:       "Custom S3 endpoint, e.g. for MinIO",
			Sources:     cli.EnvVars("CASEKEEPER_REPORT_S3_ENDPOINT"),
			Destination: &x.s3Endpoint,
		},
		&cli.BoolFlag{
			Name:        "report-s3-path-style",
			Usage:       "Use path-style S3 addressing",
			Sources:     cli.EnvVars("CASEKEEPER_REPORT_S3_PATH_STYLE"),
			Destination: &x.s3PathStyle,
		},
		&cli.StringFlag{
			Name:        "report-s3-access-key-id",
			Usage:       "Static AWS access key ID (default credential chain when empty)",
			Sources:     cli.EnvVars("CASEKEEPER_REPORT_S3_ACCESS_KEY_ID"),
			Destination: &x.s3AccessKeyID,
		},
		&cli.StringFlag{
			Name:        "report-s3-secret-access-key",
			Usage:       "Static AWS secret access key",
			Sources:     cli.EnvVars("CASEKEEPER_REPORT_S3_SECRET_ACCESS_KEY"),
			Destination: &x.s3SecretKey,
		},
		&cli.StringFlag{
			Name:        "report-gcs-bucket",
			Usage:       "Cloud Storage bucket for reports",
			Sources:     cli.EnvVars("CASEKEEPER_REPORT_GCS_BUCKET"),
			Destination: &x.gcsBucket,
		},
	}
}

// LogValue implements slog.LogValuer. Credentials are left out.
func (x *Report) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("sink", x.sink)}
	switch x.sink {
	case SinkFile:
		attrs = append(attrs, slog.String("dir", x.dir))
	case SinkS3:
		attrs = append(attrs,
			slog.String("bucket", x.s3Bucket),
			slog.String("region", x.s3Region),
			slog.String("endpoint", x.s3Endpoint),
		)
	case SinkGCS:
		attrs = append(attrs, slog.String("bucket", x.gcsBucket))
	}
	return slog.GroupValue(attrs...)
}

// Configure builds the report sink. The returned closer must be called when
// the sink is no longer needed.
func (x *Report) Configure(ctx context.Context) (interfaces.ReportSink, func(), error) {
	nop := func() {}

	switch x.sink {
	case "", SinkFile:
		return report.NewFileSink(x.dir), nop, nil

	case SinkS3:
		if x.s3Bucket == "" {
			return nil, nil, goerr.Wrap(ErrMissingBucket, "report-s3-bucket is required", goerr.V(SinkKey, x.sink))
		}
		sink, err := report.NewS3Sink(ctx, report.S3Config{
			Bucket:          x.s3Bucket,
			Prefix:          x.prefix,
			Region:          x.s3Region,
			Endpoint:        x.s3Endpoint,
			PathStyle:       x.s3PathStyle,
			AccessKeyID:     x.s3AccessKeyID,
			SecretAccessKey: x.s3SecretKey,
		})
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to configure S3 report sink")
		}
		logging.Default().Debug("Using S3 report sink", "bucket", x.s3Bucket)
		return sink, nop, nil

	case SinkGCS:
		if x.gcsBucket == "" {
			return nil, nil, goerr.Wrap(ErrMissingBucket, "report-gcs-bucket is required", goerr.V(SinkKey, x.sink))
		}
		sink, err := report.NewGCSSink(ctx, x.gcsBucket, x.prefix)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to configure Cloud Storage report sink")
		}
		logging.Default().Debug("Using Cloud Storage report sink", "bucket", x.gcsBucket)
		return sink, func() { safe.Close(ctx, sink) }, nil

	default:
		return nil, nil, goerr.Wrap(ErrUnknownSink, "unsupported report sink", goerr.V(SinkKey, x.sink))
	}
}
