/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"cert without key", func(c *Config) { c.tlsCert = "cert.pem" }, false},
		{"cert and key", func(c *Config) { c.tlsCert, c.tlsKey = "cert.pem", "key.pem" }, true},
		{"port zero", func(c *Config) { c.port = 0 }, false},
		{"port too high", func(c *Config) { c.port = 65536 }, false},
		{"short codes", func(c *Config) { c.codeLength = 2 }, false},
		{"long codes", func(c *Config) { c.codeLength = 17 }, false},
		{"no items", func(c *Config) { c.itemsPerRound = 0 }, false},
		{"negative bonus", func(c *Config) { c.bonus = -1 }, false},
		{"negative delay", func(c *Config) { c.itemDelay = -time.Second }, false},
		{"zero rate", func(c *Config) { c.rateLimit = 0 }, false},
		{"zero burst", func(c *Config) { c.rateBurst = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.modify(cfg)

			err := cfg.validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestScheme(t *testing.T) {
	cfg := testConfig()
	assert.Equal(t, "http", cfg.scheme())

	cfg.tlsCert, cfg.tlsKey = "cert.pem", "key.pem"
	assert.Equal(t, "https", cfg.scheme())
}

func TestFlagsFromEnvironment(t *testing.T) {
	t.Setenv("BLACKOUT_PORT", "9090")
	t.Setenv("BLACKOUT_ITEMS_PER_ROUND", "5")

	cfg := &Config{}
	newCmd(cfg)

	assert.Equal(t, 9090, cfg.port)
	assert.Equal(t, 5, cfg.itemsPerRound)
	assert.Equal(t, 60*time.Minute, cfg.sessionTimeout)
}
