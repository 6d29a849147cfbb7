package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCmd_Use(t *testing.T) {
	assert.Equal(t, "watch", watchCmd.Use)
}

func TestWatchCmd_NotConfigured(t *testing.T) {
	configureTest(t, Dependencies{})

	_, err := execute(t, "watch")
	assert.EqualError(t, err, "watch service not configured")
}

func TestWatchCmd_RunsUntilDone(t *testing.T) {
	ran := false
	configureTest(t, Dependencies{
		Watch: func(ctx context.Context) error {
			ran = true
			return nil
		},
	})

	out, err := execute(t, "watch")

	require.NoError(t, err)
	assert.True(t, ran)
	assert.Contains(t, out, "Watcher stopped.")
}

func TestWatchCmd_PropagatesError(t *testing.T) {
	wantErr := errors.New("directory unavailable")
	configureTest(t, Dependencies{
		Watch: func(context.Context) error { return wantErr },
	})

	_, err := execute(t, "watch")
	assert.ErrorIs(t, err, wantErr)
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "ghostvault", rootCmd.Use)
}

func TestRootCmd_HasCoreCommands(t *testing.T) {
	commands := rootCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "watch")
	assert.Contains(t, commandNames, "chat")
	assert.Contains(t, commandNames, "ask")
	assert.Contains(t, commandNames, "document")
	assert.Contains(t, commandNames, "config")
	assert.Contains(t, commandNames, "version")
}
