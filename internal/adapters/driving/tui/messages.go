package tui

import (
	"github.com/ghostvault-labs/ghostvault/internal/core/ports/driving"
)

// answerMsg carries a completed chat turn back to the model.
type answerMsg struct {
	answer *driving.Answer
}

// answerErrMsg carries a failed chat turn back to the model.
type answerErrMsg struct {
	err error
}

// revealMsg advances the typewriter reveal by one character.
type revealMsg struct{}
