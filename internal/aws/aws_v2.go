// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
)

// options holds optional overrides for AWS config loading.
type options struct {
	profile string
	region  string
}

// Option customizes how AWS config is loaded.
// Default behavior (no options) inherits the shell environment and shared
// config chain (AWS_PROFILE, ~/.aws/config, ~/.aws/credentials, IMDS, etc.).
type Option func(*options)

// WithProfile sets the shared config profile. Defaults to AWS_PROFILE/env chain.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override. Defaults to env/profile/metadata chain.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// FromEnv returns the options driven by DSVCUT_S3_PROFILE and
// DSVCUT_S3_REGION. Unset variables are skipped.
func FromEnv() []Option {
	var opts []Option
	if p := os.Getenv("DSVCUT_S3_PROFILE"); p != "" {
		opts = append(opts, WithProfile(p))
	}
	if r := os.Getenv("DSVCUT_S3_REGION"); r != "" {
		opts = append(opts, WithRegion(r))
	}
	return opts
}

// LoadAWSConfig loads AWS SDK v2 config. By default it inherits the shell's
// AWS setup (AWS_PROFILE, shared config, env, IMDS).
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}

	return config.LoadDefaultConfig(ctx, loadOpts...)
}

// NewS3 constructs a v2 S3 client from the provided config. When
// DSVCUT_S3_ENDPOINT is set (MinIO, localstack and friends) requests go there
// using path-style addressing.
func NewS3(cfg awsv2.Config, optFns ...func(*s3v2.Options)) *s3v2.Client {
	if ep := os.Getenv("DSVCUT_S3_ENDPOINT"); ep != "" {
		optFns = append(optFns, WithEndpoint(ep))
	}
	return s3v2.NewFromConfig(cfg, optFns...)
}

// WithEndpoint points the S3 client at a custom base endpoint.
func WithEndpoint(endpoint string) func(*s3v2.Options) {
	return func(o *s3v2.Options) {
		o.BaseEndpoint = awsv2.String(endpoint)
		o.UsePathStyle = true
	}
}

// ParseURL splits an s3://bucket/key URL. The boolean is false when raw is
// not an s3 URL at all; an error is returned when it is one but malformed.
func ParseURL(raw string) (bucket string, key string, ok bool, err error) {
	if !strings.HasPrefix(strings.ToLower(raw), "s3://") {
		return "", "", false, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", true, fmt.Errorf("invalid s3 url %q: %w", raw, err)
	}

	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", true, fmt.Errorf("invalid s3 url %q: want s3://bucket/key", raw)
	}

	return bucket, key, true, nil
}
