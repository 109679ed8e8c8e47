package di

import (
	"context"

	"userdata/application/ports"
	"userdata/infrastructure/config"

	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	DynamoDB     *awsdynamodb.Client
	UserDataRepo ports.UserDataRepository
}

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, err
	}

	awsCfg, err := ProvideAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client := ProvideDynamoDBClient(awsCfg)

	// Missing table name is not fatal: the process serves traffic and every
	// store call fails when issued, matching the deployed contract.
	if cfg.DynamoDBTable == "" {
		logger.Warn("USER_WORDS_TABLE env var is missing! Writes will fail.")
	}

	repo := ProvideUserDataRepository(client, cfg, logger)

	return &Container{
		Config:       cfg,
		Logger:       logger,
		DynamoDB:     client,
		UserDataRepo: repo,
	}, nil
}
