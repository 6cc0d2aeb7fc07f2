package config

import (
	"os"
	"path/filepath"
	"testing"

	internal "github.com/ZanzyTHEbar/pathkit/pathkit"

	"github.com/stretchr/testify/assert"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ConfigTestSuite tests the config package functionality
type ConfigTestSuite struct {
	suite.Suite
	tempDir string
	origDir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	// Viper state is global; reset it so tests stay order-independent
	viper.Reset()

	// Save original directory
	var err error
	suite.origDir, err = os.Getwd()
	require.NoError(suite.T(), err)

	// Create temporary directory for testing
	tempDir, err := os.MkdirTemp("", "pathkit-config-test-*")
	require.NoError(suite.T(), err)
	suite.tempDir = tempDir

	// Change to temp directory
	err = os.Chdir(tempDir)
	require.NoError(suite.T(), err)
}

func (suite *ConfigTestSuite) TearDownTest() {
	// Change back to original directory
	if suite.origDir != "" {
		os.Chdir(suite.origDir)
	}

	// Clean up temporary directory
	if suite.tempDir != "" {
		os.RemoveAll(suite.tempDir)
	}
}

func (suite *ConfigTestSuite) TestLoadConfigWithDefaults() {
	// Load config without config file (should use defaults)
	cfg, err := LoadConfig("")

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), cfg)

	// Test default values
	assert.Equal(suite.T(), 0, cfg.Pathkit.Bulk.MaxWorkers)
	assert.Equal(suite.T(), 1024, cfg.Pathkit.Bulk.ChunkSize)
	assert.Equal(suite.T(), internal.DefaultIgnoreFileName, cfg.Pathkit.Ignore.File)
	assert.Equal(suite.T(), internal.DefaultDatabaseDSN, cfg.Pathkit.Database.DSN)
	assert.Equal(suite.T(), internal.DefaultDatabaseType, cfg.Pathkit.Database.Type)
}

func (suite *ConfigTestSuite) TestLoadConfigWithFile() {
	// Create a test config file
	configContent := `
pathkit:
  bulk:
    maxWorkers: 8
    chunkSize: 256
  ignore:
    file: ".test_ignore"
    patterns:
      - "*.log"
      - "tmp/"
  database:
    dsn: "test.db"
    type: "sqlite"
`

	configFile := filepath.Join(suite.tempDir, "config.yaml")
	err := os.WriteFile(configFile, []byte(configContent), 0o644)
	require.NoError(suite.T(), err)

	// Load config from file
	cfg, err := LoadConfig(configFile)

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), cfg)

	// Test that values were loaded from file
	assert.Equal(suite.T(), 8, cfg.Pathkit.Bulk.MaxWorkers)
	assert.Equal(suite.T(), 256, cfg.Pathkit.Bulk.ChunkSize)
	assert.Equal(suite.T(), ".test_ignore", cfg.Pathkit.Ignore.File)
	assert.Equal(suite.T(), []string{"*.log", "tmp/"}, cfg.Pathkit.Ignore.Patterns)
	assert.Equal(suite.T(), "test.db", cfg.Pathkit.Database.DSN)
	assert.Equal(suite.T(), "sqlite", cfg.Pathkit.Database.Type)
}

func (suite *ConfigTestSuite) TestLoadConfigInvalidFile() {
	// Try to load from non-existent file - this should error since we specify an explicit path
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}

func (suite *ConfigTestSuite) TestLoadConfigMalformedFile() {
	// Create a malformed config file
	malformedContent := `
pathkit:
  bulk:
    maxWorkers: 8
  invalid_yaml: [unclosed bracket
`

	configFile := filepath.Join(suite.tempDir, "malformed.yaml")
	err := os.WriteFile(configFile, []byte(malformedContent), 0o644)
	require.NoError(suite.T(), err)

	cfg, err := LoadConfig(configFile)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}

func (suite *ConfigTestSuite) TestAppConfigGlobal() {
	// Test that AppConfig global variable is set after loading
	cfg, err := LoadConfig("")
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), cfg.Pathkit.Bulk.ChunkSize, AppConfig.Pathkit.Bulk.ChunkSize)
	assert.Equal(suite.T(), cfg.Pathkit.Database.DSN, AppConfig.Pathkit.Database.DSN)
}
