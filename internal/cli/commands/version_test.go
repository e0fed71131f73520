package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVersionCommand(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{version: "0.1.0", want: "leapedit v0.1.0\n"},
		{version: "1.2.3", want: "leapedit v1.2.3\n"},
		{version: "dev", want: "leapedit vdev\n"},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			cmd := NewVersionCommand(tt.version)
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetArgs(nil)

			require.NoError(t, cmd.Execute())

			first, rest, ok := bytes.Cut(buf.Bytes(), []byte("\n"))
			require.True(t, ok)
			assert.Equal(t, tt.want, string(first)+"\n")
			assert.Contains(t, string(rest), "Starlark")
		})
	}
}

func TestVersionCommand_NeedsNoConfig(t *testing.T) {
	t.Setenv("LEAPEDIT_OUTPUT", "xml")

	cmd := NewVersionCommand("test")
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs(nil)
	assert.NoError(t, cmd.Execute())
	assert.Equal(t, "version", cmd.Use)
	assert.NotEmpty(t, cmd.Long)
}
