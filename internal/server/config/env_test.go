package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv_OverlaysSetVariables(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("SHUTDOWN_TIMEOUT", "4s")

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseEnv(cfg, ""))

	assert.Equal(t, "env-secret", cfg.SecretKey)
	assert.Equal(t, BackendMemory, cfg.DataBackend)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 4*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, ":50051", cfg.EndpointAddrGRPC, "unset variables keep their value")
}

func Test_parseEnv_PortKeepsHost(t *testing.T) {
	t.Setenv("PORT", "8080")

	cfg := &Config{EndpointAddrHTTP: "127.0.0.1:5000"}
	require.NoError(t, parseEnv(cfg, ""))
	assert.Equal(t, "127.0.0.1:8080", cfg.EndpointAddrHTTP)
}

func Test_parseEnv_LoadsDotenvWithoutOverriding(t *testing.T) {
	const fromFile = "EXPENSES_TEST_S3_BUCKET_ONLY_IN_FILE"
	t.Cleanup(func() { _ = os.Unsetenv("S3_BUCKET") })
	t.Setenv("JWT_SECRET", "from-process")

	path := filepath.Join(t.TempDir(), ".env")
	content := "JWT_SECRET=from-file\nS3_BUCKET=" + fromFile + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := &Config{}
	require.NoError(t, parseEnv(cfg, path))

	assert.Equal(t, "from-process", cfg.SecretKey)
	assert.Equal(t, fromFile, cfg.S3Bucket)
}

func Test_parseEnv_MissingDotenvIsIgnored(t *testing.T) {
	cfg := &Config{}
	assert.NoError(t, parseEnv(cfg, filepath.Join(t.TempDir(), "absent.env")))
}

func Test_parseEnv_BadDuration(t *testing.T) {
	t.Setenv("READ_TIMEOUT", "soon")
	assert.Error(t, parseEnv(&Config{}, ""))
}
