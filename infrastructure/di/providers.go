// Package di assembles the process-wide dependencies. The container is built
// once at startup and lives for the lifetime of the process.
package di

import (
	"context"

	"userdata/application/ports"
	"userdata/infrastructure/config"
	"userdata/infrastructure/persistence/dynamodb"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration. Region falls back to the
// credential chain's own detection when running on AWS infrastructure.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideUserDataRepository creates the user-data repository
func ProvideUserDataRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.UserDataRepository {
	return dynamodb.NewUserDataRepository(client, cfg.DynamoDBTable, logger)
}
