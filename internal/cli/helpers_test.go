package cli

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/sortvis/internal/grid"
	"github.com/roach88/sortvis/internal/testutil"
)

// executeCommand runs the root command with args and returns stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

// decodeData unmarshals a JSON success envelope's data into v.
func decodeData(t *testing.T, output string, v interface{}) {
	t.Helper()

	var resp struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &resp), "output: %s", output)
	require.Equal(t, "ok", resp.Status, "output: %s", output)
	require.NoError(t, json.Unmarshal(resp.Data, v))
}

// writeImage writes px as a PNG in dir.
func writeImage(t *testing.T, dir, name string, px grid.PixelGrid) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, px.Image()))
	require.NoError(t, f.Close())
	return path
}

// writeGradient writes a rows x cols gradient PNG in a fresh temp dir.
func writeGradient(t *testing.T, rows, cols int) string {
	t.Helper()
	return writeImage(t, t.TempDir(), "in.png", testutil.Gradient(rows, cols))
}
