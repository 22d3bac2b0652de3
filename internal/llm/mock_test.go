package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockReturnsScriptedResponses(t *testing.T) {
	m := &Mock{Responses: []string{"eins", "zwei"}}

	out, err := m.Complete(context.Background(), Request{User: "a"})
	require.NoError(t, err)
	assert.Equal(t, "eins", out)

	out, err = m.Complete(context.Background(), Request{User: "b"})
	require.NoError(t, err)
	assert.Equal(t, "zwei", out)

	// script exhausted: last response repeats
	out, err = m.Complete(context.Background(), Request{User: "c"})
	require.NoError(t, err)
	assert.Equal(t, "zwei", out)

	assert.Equal(t, 3, m.CallCount())
	assert.Equal(t, "b", m.Calls[1].Request.User)
}

func TestMockScriptedErrors(t *testing.T) {
	boom := errors.New("overloaded")
	m := &Mock{Responses: []string{"ok"}, Errs: []error{boom, nil}}

	_, err := m.Complete(context.Background(), Request{})
	assert.ErrorIs(t, err, boom)

	out, err := m.Complete(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestMockWithoutScriptFails(t *testing.T) {
	m := &Mock{}
	_, err := m.Complete(context.Background(), Request{})
	assert.Error(t, err)
}
