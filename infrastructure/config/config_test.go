package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "us-west-2", cfg.AWSRegion)
	assert.True(t, cfg.EnableCORS)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":3000")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("USER_WORDS_TABLE", "user-words")
	t.Setenv("ENABLE_CORS", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.ServerAddress)
	assert.Equal(t, "user-words", cfg.DynamoDBTable)
	assert.False(t, cfg.EnableCORS)
	assert.True(t, cfg.IsProduction())
}

func TestMissingTableIsNotAStartupError(t *testing.T) {
	t.Setenv("USER_WORDS_TABLE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.DynamoDBTable)
}
