package domain

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdirForTest(t *testing.T, dir string) {
	t.Helper()

	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })
}

// extractToReader runs the extractor over log and returns its output.
func extractToReader(t *testing.T, log string) io.Reader {
	t.Helper()

	var out bytes.Buffer
	_, err := ExtractOverrides(context.Background(), strings.NewReader(log), &out)
	require.NoError(t, err)

	return &out
}
