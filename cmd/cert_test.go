package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/gnoverse/tprove/internal/types"
	"github.com/gnoverse/tprove/prove"
)

func TestParseFactFlags(t *testing.T) {
	t.Parallel()

	facts, err := parseFactFlags([]string{"x: x >= 1", "y:y <= 10"})
	require.NoError(t, err)
	assert.Equal(t, []types.Fact{
		{Variable: "x", Predicate: "x >= 1"},
		{Variable: "y", Predicate: "y <= 10"},
	}, facts)

	_, err = parseFactFlags([]string{"no colon here"})
	assert.ErrorContains(t, err, "malformed fact")

	_, err = parseFactFlags([]string{": x > 0"})
	assert.Error(t, err)

	facts, err = parseFactFlags(nil)
	require.NoError(t, err)
	assert.Empty(t, facts)
}

func TestInitConfigurationFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), ".tprove.yaml")

	require.NoError(t, initConfigurationFile(path))

	d, err := os.ReadFile(path)
	require.NoError(t, err)

	var config prove.Config
	require.NoError(t, yaml.Unmarshal(d, &config))
	assert.Equal(t, "tprove", config.Name)
	assert.True(t, config.Brands["Port"].Decidable)
}
