package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError(t *testing.T) {
	err := MissingKey("image_name")
	assert.ErrorIs(t, err, ErrMissingConfig)
	assert.Equal(t, "missing configuration: image_name", err.Error())

	err = InvalidKey("match_threshold", "must be in (0,1], got %v", 1.5)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.NotErrorIs(t, err, ErrMissingConfig)
	assert.Equal(t, "invalid configuration: match_threshold: must be in (0,1], got 1.5", err.Error())

	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "match_threshold", cfgErr.Key)
}

func TestUserError(t *testing.T) {
	cause := errors.New("no such file")
	err := NewUserError("configuration file not found", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "configuration file not found: no such file", err.Error())
	assert.Equal(t, "configuration file not found", NewUserError("configuration file not found", nil).Error())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", ParseLevel("debug").String())
	assert.Equal(t, "WARN", ParseLevel("warning").String())
	assert.Equal(t, "ERROR", ParseLevel("error").String())
	assert.Equal(t, "INFO", ParseLevel("verbose").String())
}
