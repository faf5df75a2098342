package testutil

import (
	"testing"

	"github.com/spf13/viper"
)

// credentialEnv lists the environment variables the CLI reads credentials
// and endpoints from.
var credentialEnv = []string{
	"NAVER_CLIENT_ID",
	"NAVER_CLIENT_SECRET",
	"NAVER_BASE_URL",
}

// ResetConfig resets viper now and again when the test completes, and
// clears the credential environment so a developer's shell cannot leak
// into the test.
func ResetConfig(t *testing.T) {
	t.Helper()

	viper.Reset()
	for _, key := range credentialEnv {
		t.Setenv(key, "")
	}
	t.Cleanup(viper.Reset)
}
