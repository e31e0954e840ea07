package logging_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/containeryard-go/internal/infrastructure/config"
	"github.com/andrescamacho/containeryard-go/internal/infrastructure/logging"
)

func TestNew_WritesJSONWithBaseAttributes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yard.log")
	logger, closer, err := logging.New(config.LoggingConfig{
		Level:    "warn",
		Format:   "json",
		Output:   "file",
		FilePath: path,
		Service:  "yard-test",
	})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", "zone", "A")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "kept", record["msg"])
	assert.Equal(t, "yard-test", record["service"])
	assert.Equal(t, "A", record["zone"])
	assert.True(t, strings.HasSuffix(record["time"].(string), "Z"), "timestamp must be UTC")
}
