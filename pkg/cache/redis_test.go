package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/classroom-dashboard-api/pkg/config"
)

func TestOptionsDefaultsTimeouts(t *testing.T) {
	opts := Options(config.RedisConfig{Host: "cache", Port: 6380, DB: 2})

	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 5*time.Second, opts.DialTimeout)
	assert.Equal(t, 5*time.Second, opts.ReadTimeout)
	assert.Zero(t, opts.PoolSize)
}

func TestOptionsHonoursConfig(t *testing.T) {
	opts := Options(config.RedisConfig{Host: "cache", Port: 6379, PoolSize: 20, DialTimeout: time.Second})

	assert.Equal(t, 20, opts.PoolSize)
	assert.Equal(t, time.Second, opts.WriteTimeout)
}
