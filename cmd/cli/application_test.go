package cli_test

import (
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/gitsweep/cmd/cli"
	"github.com/temirov/gitsweep/internal/branches"
)

const (
	embeddedDefaultLogLevelConstant  = "error"
	embeddedDefaultLogFormatConstant = "console"
)

func TestEmbeddedDefaultConfigurationDecodes(testInstance *testing.T) {
	configuration := decodeEmbeddedApplicationConfiguration(testInstance)

	require.Equal(testInstance, embeddedDefaultLogLevelConstant, configuration.Common.LogLevel)
	require.Equal(testInstance, embeddedDefaultLogFormatConstant, configuration.Common.LogFormat)
	require.Equal(testInstance, branches.DefaultCommandConfiguration(), configuration.Tools.Cleanup.Sanitize())
}

func TestEmbeddedDefaultConfigurationReturnsCopy(testInstance *testing.T) {
	firstContent, configurationType := cli.EmbeddedDefaultConfiguration()
	require.Equal(testInstance, "yaml", configurationType)
	require.NotEmpty(testInstance, firstContent)

	firstContent[0] = '#'

	secondContent, _ := cli.EmbeddedDefaultConfiguration()
	require.NotEqual(testInstance, byte('#'), secondContent[0])
}

func TestEmbeddedDefaultsCoverCleanupKeys(testInstance *testing.T) {
	configurationData, _ := cli.EmbeddedDefaultConfiguration()

	var document map[string]any
	require.NoError(testInstance, yaml.Unmarshal(configurationData, &document))

	tools, toolsExist := document["tools"].(map[string]any)
	require.True(testInstance, toolsExist)
	cleanup, cleanupExists := tools["cleanup"].(map[string]any)
	require.True(testInstance, cleanupExists)

	for configurationKey := range branches.DefaultConfigurationValues("") {
		require.Contains(testInstance, cleanup, configurationKey)
	}
}

func decodeEmbeddedApplicationConfiguration(testingInstance testing.TB) cli.ApplicationConfiguration {
	testingInstance.Helper()

	configurationData, _ := cli.EmbeddedDefaultConfiguration()

	var document map[string]any
	require.NoError(testingInstance, yaml.Unmarshal(configurationData, &document))

	var configuration cli.ApplicationConfiguration
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "mapstructure", Result: &configuration})
	require.NoError(testingInstance, decoderError)
	require.NoError(testingInstance, decoder.Decode(document))

	return configuration
}
