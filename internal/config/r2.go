package config

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2Region is what Cloudflare R2 expects for aws-sdk compatibility.
const R2Region = "auto"

// NewR2Client builds an S3 client pointed at the configured R2 bucket.
// Returns nil when R2 credentials are not configured; export archiving is
// then disabled and exports are served to the caller only.
func (c *Config) NewR2Client(ctx context.Context) *s3.Client {
	if c.R2.AccessKey == "" || c.R2.Endpoint == "" {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.R2.AccessKey,
			c.R2.SecretKey,
			"",
		)),
		awsconfig.WithRegion(R2Region),
	)
	if err != nil {
		log.Printf("[Config] Failed to configure R2 client: %v", err)
		return nil
	}

	endpoint := c.R2.Endpoint
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
}
