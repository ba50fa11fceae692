package config_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/devantler-tech/olschat/pkg/cli/cmd/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaCmd_PrintsValidJSON(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	cmd := config.NewConfigCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"schema"})

	require.NoError(t, cmd.Execute())

	var schema map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &schema))
	assert.Contains(t, out.String(), "service")
}

func TestSchemaCmd_RejectsArgs(t *testing.T) {
	t.Parallel()

	cmd := config.NewConfigCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"schema", "extra"})

	require.Error(t, cmd.Execute())
}
