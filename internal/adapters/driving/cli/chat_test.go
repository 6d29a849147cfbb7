package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatCmd_Use(t *testing.T) {
	assert.Equal(t, "chat", chatCmd.Use)
}

func TestChatCmd_NotConfigured(t *testing.T) {
	configureTest(t, Dependencies{})

	_, err := execute(t, "chat")
	assert.EqualError(t, err, "chat service not configured")
}

func TestChatCmd_MissingCollection(t *testing.T) {
	configureTest(t, missingCollectionDeps())

	out, err := execute(t, "chat")

	require.NoError(t, err)
	assert.Contains(t, out, "No documents indexed yet.")
	assert.Contains(t, out, "ghostvault watch")
	assert.Contains(t, out, "Then place documents in the watched directory.")
}
