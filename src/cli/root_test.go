package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootRegistersCommands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"serve", "worker", "cleanup", "indexes", "seed"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	flag := root.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
}

func TestConfigFlagDefaultsFromEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/etc/schoolhub.yaml")
	root := newRootCmd()
	assert.Equal(t, "/etc/schoolhub.yaml", root.PersistentFlags().Lookup("config").DefValue)
}

func TestServeFailsWithoutMongoURI(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	root := newRootCmd()
	root.SetArgs([]string{"serve", "--config", t.TempDir() + "/missing.yaml"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URI")
}
