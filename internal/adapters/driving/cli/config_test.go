package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCmd_Use(t *testing.T) {
	assert.Equal(t, "config", configCmd.Use)
}

func TestConfigCmd_HasSubcommands(t *testing.T) {
	commands := configCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "show")
	assert.Contains(t, commandNames, "set")
	assert.Contains(t, commandNames, "set-key")
	assert.Contains(t, commandNames, "path")
}

func TestConfigShowCmd_NotConfigured(t *testing.T) {
	configureTest(t, Dependencies{})

	_, err := execute(t, "config", "show")
	assert.EqualError(t, err, "config store not configured")
}

func TestConfigShowCmd_ShowsValuesAndDefaults(t *testing.T) {
	store := newFakeConfigStore()
	store.data["ollama.model"] = "mistral"
	configureTest(t, Dependencies{ConfigStore: store})

	out, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "mistral")
	assert.Contains(t, out, "(default)")
}

func TestConfigShowCmd_MasksAPIKeys(t *testing.T) {
	store := newFakeConfigStore()
	store.data["openai.api_key"] = "sk-abcdefghijklmnop"
	configureTest(t, Dependencies{ConfigStore: store})

	out, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.NotContains(t, out, "sk-abcdefghijklmnop")
	assert.Contains(t, out, "sk-a...mnop")
}

func TestConfigSetCmd_PersistsValue(t *testing.T) {
	store := newFakeConfigStore()
	configureTest(t, Dependencies{ConfigStore: store})

	out, err := execute(t, "config", "set", "ollama.model", "phi3")

	require.NoError(t, err)
	assert.Contains(t, out, "Set ollama.model.")
	assert.Equal(t, "phi3", store.data["ollama.model"])
}

func TestConfigSetCmd_RejectsAPIKeys(t *testing.T) {
	configureTest(t, Dependencies{ConfigStore: newFakeConfigStore()})

	_, err := execute(t, "config", "set", "openai.api_key", "sk-secret")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "set-key")
}

func TestConfigSetKeyCmd_RejectsUnknownProvider(t *testing.T) {
	configureTest(t, Dependencies{ConfigStore: newFakeConfigStore()})

	_, err := execute(t, "config", "set-key", "ollama")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestConfigPathCmd_PrintsPath(t *testing.T) {
	configureTest(t, Dependencies{ConfigStore: newFakeConfigStore()})

	out, err := execute(t, "config", "path")

	require.NoError(t, err)
	assert.Contains(t, out, "/tmp/config.toml")
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "****", maskAPIKey("12345678"))
	assert.Equal(t, "sk-1...wxyz", maskAPIKey("sk-1234567890wxyz"))
}
