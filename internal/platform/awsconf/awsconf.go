// Package awsconf resolves the AWS SDK configuration used by every
// provider client: target region, optional shared-config credential
// profile, and optional static credentials for CI environments.
package awsconf

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// Static credential environment variables. When both are set they take
// precedence over the profile and default credential chain.
const (
	envAccessKey = "HSMCTL_ACCESS_KEY"
	envSecretKey = "HSMCTL_SECRET_KEY"
)

// Load resolves an aws.Config for the given region and credential profile.
// An empty profile falls through to the default credential chain.
func Load(ctx context.Context, region, profile string) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}

	if ak, sk := os.Getenv(envAccessKey), os.Getenv(envSecretKey); ak != "" && sk != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(ak, sk, "")))
	} else if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}
