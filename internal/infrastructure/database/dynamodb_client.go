package database

import (
	"context"
	"log"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"tumblecup_admin/internal/config"
)

// ConnectDynamoDB creates the DynamoDB client for the document backend.
//
// Setting DYNAMODB_ENDPOINT points the client at a local instance
// (e.g. http://dynamodb:8000); local DynamoDB does not validate credentials
// but the SDK still requires them, hence the static provider.
func ConnectDynamoDB(cfg config.DynamoConfig) *dynamodb.Client {
	awsCfg, err := newAWSConfig(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to create dynamodb config: %v", err)
	}
	return dynamodb.NewFromConfig(awsCfg)
}

func newAWSConfig(ctx context.Context, cfg config.DynamoConfig) (awssdk.Config, error) {
	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(creds),
	}

	if cfg.Endpoint != "" {
		resolver := awssdk.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (awssdk.Endpoint, error) {
			if service == dynamodb.ServiceID {
				return awssdk.Endpoint{URL: cfg.Endpoint, SigningRegion: region, HostnameImmutable: true}, nil
			}
			return awssdk.Endpoint{}, &awssdk.EndpointNotFoundError{}
		})
		loadOpts = append(loadOpts, awsconfig.WithEndpointResolverWithOptions(resolver))
	}

	return awsconfig.LoadDefaultConfig(ctx, loadOpts...)
}
