package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lkarlslund/screenwatch/internal/common"
	"github.com/lkarlslund/screenwatch/internal/config"
	"github.com/lkarlslund/screenwatch/internal/vision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd(config.New())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "screenwatch dev\n", out.String())
}

func TestRootCommand_MissingRequiredKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("image_name: target.png\n"), 0o600))

	cmd := newRootCmd(config.New())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestRootCommand_ModeFlagOverridesDocument(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"target.png", "alert.mp3"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}
	path := filepath.Join(dir, "config.yaml")
	doc := "image_name: target.png\nmp3_name: alert.mp3\nmatch_threshold: 0.8\ncheck_interval: 5\nnotify_on_refresh: false\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	v := config.New()
	cmd := newRootCmd(v)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path, "--mode", "aggressive"})

	// No control image is configured, so aggressive mode is rejected before
	// any template is loaded.
	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestReportFailure(t *testing.T) {
	var out bytes.Buffer
	common.SetupLogger(common.ParseLevel("info"), "text", &out)
	t.Cleanup(func() { common.SetupLogger(common.ParseLevel("info"), "text", nil) })

	reportFailure(common.NewUserError("configuration file not found", errors.New("open config.yaml")))

	line := out.String()
	assert.Contains(t, line, "level=ERROR")
	assert.Contains(t, line, `msg="Failed to start monitoring"`)
	assert.Contains(t, line, `reason="configuration file not found"`)
	assert.Regexp(t, `time="\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}"`, line)
}

func TestPrintScores(t *testing.T) {
	var out bytes.Buffer
	printScores(&out, "(1920,1080)", 0.8, []scoreRow{
		{role: "target", result: vision.MatchResult{Template: "target", Confidence: 0.93}, hit: true},
		{role: "control", result: vision.MatchResult{Template: "button", Confidence: 0.41}},
	})

	text := out.String()
	assert.Contains(t, text, "threshold 0.80")
	assert.Contains(t, text, "target")
	assert.Contains(t, text, "0.930")
	assert.Contains(t, text, "button")
	assert.Contains(t, text, "absent")
}
