package dynamo

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// ClientConfig selects the DynamoDB endpoint. An empty Endpoint uses the
// default AWS resolution chain; a set Endpoint (DynamoDB Local) is paired with
// static credentials.
type ClientConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// NewClient builds a DynamoDB client from the default AWS configuration.
func NewClient(ctx context.Context, cfg ClientConfig) (*dynamodb.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint == "" {
			return
		}
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.Region = valueOr(cfg.Region, "us-east-1")
		o.Credentials = credentials.NewStaticCredentialsProvider(
			valueOr(cfg.AccessKeyID, "x"),
			valueOr(cfg.SecretAccessKey, "x"),
			"",
		)
	}), nil
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
