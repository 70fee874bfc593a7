package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	limit int
	name  string
}

func TestNew(t *testing.T) {
	cfg := &testConfig{}
	opt := New(func(c *testConfig) error {
		if c.limit != 0 {
			return errors.New("already set")
		}
		c.limit = 5

		return nil
	})

	require.NoError(t, Apply(cfg, opt))
	require.Equal(t, 5, cfg.limit)
	require.Error(t, Apply(cfg, opt), "second apply should reject")
}

func TestNoError(t *testing.T) {
	cfg := &testConfig{}
	opt := NoError(func(c *testConfig) {
		c.name = "set"
	})

	require.NoError(t, Apply(cfg, opt))
	require.Equal(t, "set", cfg.name)
}

func TestApplyOrderAndShortCircuit(t *testing.T) {
	cfg := &testConfig{}
	var calls []string

	first := NoError(func(c *testConfig) { calls = append(calls, "first") })
	failing := New(func(c *testConfig) error {
		calls = append(calls, "failing")

		return errors.New("boom")
	})
	never := NoError(func(c *testConfig) { calls = append(calls, "never") })

	err := Apply(cfg, first, failing, never)
	require.Error(t, err)
	require.Equal(t, []string{"first", "failing"}, calls)
}

func TestApplyNoOptions(t *testing.T) {
	require.NoError(t, Apply(&testConfig{}))
}
