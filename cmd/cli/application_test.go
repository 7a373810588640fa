package cli_test

import (
	"bytes"
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/gitship/cmd/cli"
)

func TestEmbeddedDefaultConfigurationMatchesCommandDefaults(testInstance *testing.T) {
	configurationData, configurationType := cli.EmbeddedDefaultConfiguration()
	require.Equal(testInstance, "yaml", configurationType)

	var rawConfiguration map[string]any
	require.NoError(testInstance, yaml.Unmarshal(configurationData, &rawConfiguration))

	var configuration cli.ApplicationConfiguration
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "mapstructure", Result: &configuration})
	require.NoError(testInstance, decoderError)
	require.NoError(testInstance, decoder.Decode(rawConfiguration))

	require.Equal(testInstance, "warn", configuration.Common.LogLevel)
	require.Equal(testInstance, "console", configuration.Common.LogFormat)
	require.False(testInstance, configuration.Tools.Commit.SkipValidation)
	require.Equal(testInstance, "main", configuration.Tools.PullRequest.BaseBranch)
	require.Equal(testInstance, "origin", configuration.Tools.PullRequest.RemoteName)
	require.False(testInstance, configuration.Tools.PullRequest.Draft)
}

func TestEmbeddedDefaultConfigurationReturnsCopy(testInstance *testing.T) {
	firstCopy, _ := cli.EmbeddedDefaultConfiguration()
	require.NotEmpty(testInstance, firstCopy)
	firstCopy[0] = '#'

	secondCopy, _ := cli.EmbeddedDefaultConfiguration()
	require.False(testInstance, bytes.Equal(firstCopy, secondCopy))
}
