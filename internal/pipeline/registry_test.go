package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register(t *testing.T) {
	var calls []string
	r := NewRegistry()

	require.NoError(t, r.Register(newFake("load", &calls, nil)))
	require.NoError(t, r.Register(newFake("report", &calls, nil)))

	tests := []struct {
		name string
		step Step
	}{
		{name: "nil step", step: nil},
		{name: "empty id", step: newFake("", &calls, nil)},
		{name: "duplicate id", step: newFake("load", &calls, nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, r.Register(tt.step))
		})
	}

	assert.Equal(t, 2, r.Count())

	step, ok := r.Get("report")
	require.True(t, ok)
	assert.Equal(t, "step report", step.Name())

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_ListKeepsOrder(t *testing.T) {
	var calls []string
	r := NewRegistry()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, r.Register(newFake(id, &calls, nil)))
	}

	var ids []string
	for _, step := range r.List() {
		ids = append(ids, step.ID())
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}
