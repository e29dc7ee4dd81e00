package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_CachesPerNameAndBaseProps(t *testing.T) {
	r, err := New(8, nil)
	require.NoError(t, err)

	calls := 0
	r.Register("Button", func(context.Context) (any, error) {
		calls++
		return "button-impl", nil
	})

	ctx := context.Background()
	v, ok, err := r.Load(ctx, "Button", nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "button-impl", v)

	_, _, err = r.Load(ctx, "Button", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "second load hits the cache")

	_, _, err = r.Load(ctx, "Button", map[string]string{"variant": "ghost"})
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "different base props is a different cache key")
}

func TestLoad_UnknownNameIsNotAnError(t *testing.T) {
	r, err := New(8, nil)
	require.NoError(t, err)

	v, ok, err := r.Load(context.Background(), "Ghost", nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestLoad_FailureRecordsErrorState(t *testing.T) {
	r, err := New(8, nil)
	require.NoError(t, err)

	boom := errors.New("module not found")
	r.Register("Broken", func(context.Context) (any, error) { return nil, boom })

	_, ok, err := r.Load(context.Background(), "Broken", nil)
	require.True(t, ok)
	require.Error(t, err)

	msg, hasErr := r.Err("Broken")
	require.True(t, hasErr)
	assert.Contains(t, msg, "module not found")

	// A later successful load clears the error state.
	r.Register("Broken", func(context.Context) (any, error) { return "ok", nil })
	v, _, err := r.Load(context.Background(), "Broken", nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	_, hasErr = r.Err("Broken")
	assert.False(t, hasErr)
}

func TestRegister_ReplacingLoaderEvictsCachedValue(t *testing.T) {
	r, err := New(8, nil)
	require.NoError(t, err)

	r.Register("Card", func(context.Context) (any, error) { return "v1", nil })
	v, _, err := r.Load(context.Background(), "Card", nil)
	require.NoError(t, err)
	assert.Equal(t, "v1", v)

	r.Register("Card", func(context.Context) (any, error) { return "v2", nil })
	v, _, err = r.Load(context.Background(), "Card", nil)
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
}

func TestNames_RegistrationOrder(t *testing.T) {
	r, err := New(8, nil)
	require.NoError(t, err)
	r.Register("B", func(context.Context) (any, error) { return nil, nil })
	r.Register("A", func(context.Context) (any, error) { return nil, nil })
	assert.Equal(t, []string{"B", "A"}, r.Names())
}
