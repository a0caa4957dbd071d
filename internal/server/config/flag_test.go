package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("overrides defaults", func(t *testing.T) {
		os.Args = []string{"testbin",
			"-a", ":9000",
			"-d", "postgres://example/other",
			"-s", "flagsecret",
			"-t", "300",
			"-u", "ak",
			"-p", "sk",
			"-b", "uploads",
			"-g", "eu-west-1",
			"-e", "http://minio:9000/",
		}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFlags(cfg)

		assert.Equal(t, ":9000", cfg.EndpointAddr)
		assert.Equal(t, "postgres://example/other", cfg.DatabaseDSN)
		assert.Equal(t, "flagsecret", cfg.SecretKey)
		assert.Equal(t, 300*time.Second, cfg.SignedURLTTL)
		assert.Equal(t, "ak", cfg.S3AccessKey)
		assert.Equal(t, "sk", cfg.S3SecretKey)
		assert.Equal(t, "uploads", cfg.S3Bucket)
		assert.Equal(t, "eu-west-1", cfg.S3Region)
		assert.Equal(t, "http://minio:9000/", cfg.S3BaseEndpoint)
	})

	t.Run("defaults survive when no flags given", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFlags(cfg)

		assert.Equal(t, ":8080", cfg.EndpointAddr)
		assert.Equal(t, 60*time.Second, cfg.SignedURLTTL)
	})
}
