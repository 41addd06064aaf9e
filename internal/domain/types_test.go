package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidCommand(t *testing.T) {
	for _, cmd := range []string{"left", "right", "up", "down", "rotate"} {
		assert.True(t, ValidCommand(cmd), cmd)
	}
	for _, line := range []string{"", "LEFT", "drop", "left ", "rotate\n", "debug: thinking"} {
		assert.False(t, ValidCommand(line), line)
	}
}

func TestParseFinalState(t *testing.T) {
	final, err := ParseFinalState(json.RawMessage(`{"score": 42, "state": "failed"}`))
	require.NoError(t, err)
	assert.Equal(t, 42, final.Score)
	assert.JSONEq(t, `{"score": 42, "state": "failed"}`, string(final.Raw))
}

func TestParseFinalStateMalformed(t *testing.T) {
	_, err := ParseFinalState(json.RawMessage(`not json`))
	require.Error(t, err)
}

func TestSubmitResultGameOver(t *testing.T) {
	assert.False(t, (&SubmitResult{Next: &GameSnapshot{}}).GameOver())
	assert.True(t, (&SubmitResult{Final: &FinalState{Score: 1}}).GameOver())
}
