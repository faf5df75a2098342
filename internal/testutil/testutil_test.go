package testutil

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestEnv_WriteReadFile(t *testing.T) {
	env := NewTestEnv(t)

	env.WriteFileString("sub/config.yaml", "naver:\n  client_id: abc\n")
	assert.Equal(t, "naver:\n  client_id: abc\n", env.ReadFileString("sub/config.yaml"))
	assert.True(t, filepath.IsAbs(env.Path("sub", "config.yaml")))
}

func TestTestEnv_Chdir(t *testing.T) {
	env := NewTestEnv(t)
	env.Chdir()

	wd, err := os.Getwd()
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(env.RootDir())
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(wd)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResetConfig(t *testing.T) {
	viper.Set("naver.client_id", "leftover")
	ResetConfig(t)

	assert.Empty(t, viper.GetString("naver.client_id"))
	assert.Empty(t, os.Getenv("NAVER_CLIENT_ID"))
}

func TestLogRecorder(t *testing.T) {
	rec, logger := NewLogRecorder()

	logger.With("component", "naver").Warn("rate limited", "page", 2)
	logger.Debug("noise")

	warns := rec.AtLevel(slog.LevelWarn)
	require.Len(t, warns, 1)
	assert.Equal(t, "rate limited", warns[0].Message)
	assert.Equal(t, "naver", warns[0].Attrs["component"])
	assert.Equal(t, "2", warns[0].Attrs["page"])
	assert.Len(t, rec.Records(), 2)
}

func TestScriptedTransport(t *testing.T) {
	transport := NewScriptedTransport(
		Reply{Status: http.StatusForbidden, Body: "quota"},
		Reply{Body: SearchBody(Items("Batman", 2))},
	)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.test/?start=1", nil)
	require.NoError(t, err)

	resp, err := transport.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = transport.Do(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Batman 1")

	// Queue exhausted: empty result.
	resp, err = transport.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Len(t, transport.Requests(), 3)
}
