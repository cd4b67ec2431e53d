package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("HOST_ENTITY_NAME", "new_inquiry")
	t.Setenv("EXTERNAL_API_TIMEOUT_SEC", "5")
	t.Setenv("MINIO_RETENTION_DAYS", "14")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "new_inquiry", cfg.Host.EntityName)
	assert.Equal(t, 5, cfg.ExternalAPI.TimeoutSec)
	assert.Equal(t, 14, cfg.MinIO.RetentionDays)
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"HOST_ENTITY_NAME",
		"HOST_POST_IMAGE_NAME",
		"EXTERNAL_API_CREATE_URL",
		"EXTERNAL_API_UPDATE_URL",
		"EXTERNAL_API_CREATE_RESPONSE",
		"MINIO_ENDPOINT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "sa_inquiry", cfg.Host.EntityName)
	assert.Equal(t, "postInquiry", cfg.Host.PostImageName)
	assert.Equal(t, "http://rest.learncode.academy/api/student2/inquiries/", cfg.ExternalAPI.CreateURL)
	assert.Equal(t, "http://rest.learncode.academy/api/myapi/inquiries/", cfg.ExternalAPI.UpdateURL)
	assert.Equal(t, "frederick", cfg.ExternalAPI.CreateResponse)
	assert.False(t, cfg.MinIO.Enabled())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
