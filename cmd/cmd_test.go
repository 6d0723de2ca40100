package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxtrace/NShor/shor"
)

func init() {
	color.NoColor = true
}

func TestRunPrintsOutcomes(t *testing.T) {
	var buf bytes.Buffer
	code := run([]string{"nshor", "-N", "15", "-N", "abc", "-N", "8", "-o", "classical", "-a", "50", "--seed", "3"}, &buf)
	require.Equal(t, 0, code, buf.String())

	out := buf.String()
	assert.Contains(t, out, "Period oracles: classical")
	assert.Contains(t, out, "\nFactoring 15\nFactors: [3, 5]\nVerification: 3 * 5 = 15\n")
	assert.Contains(t, out, "\nFactoring abc\nError factoring abc: invalid input")
	assert.Contains(t, out, "\nFactoring 8\nFactors: [2, 4]\n")
}

func TestRunJSON(t *testing.T) {
	var buf bytes.Buffer
	code := run([]string{"nshor", "-j", "-N", "21", "-N", "13", "-o", "classical", "-a", "60", "--seed", "9"}, &buf)
	require.Equal(t, 0, code, buf.String())

	var reports []shor.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, []string{"3", "7"}, reports[0].Factors)
	assert.Equal(t, shor.StageExhausted, reports[1].Stage)
	assert.Equal(t, 60, reports[1].Attempts)
}

func TestRunTable(t *testing.T) {
	var buf bytes.Buffer
	code := run([]string{"nshor", "-t", "-N", "35", "-o", "classical", "-a", "60", "--seed", "2"}, &buf)
	require.Equal(t, 0, code, buf.String())
	assert.Contains(t, buf.String(), "5 x 7")
	assert.NotContains(t, buf.String(), "Period oracles")
}

func TestRunVerbosePrintsAttempts(t *testing.T) {
	var buf bytes.Buffer
	code := run([]string{"nshor", "-V", "-N", "15", "-o", "classical", "--seed", "4"}, &buf)
	require.Equal(t, 0, code, buf.String())
	assert.Contains(t, buf.String(), "#1   15 a=")
}

func TestRunRejectsBadOracle(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, 2, run([]string{"nshor", "-o", "quantum"}, &buf))
	assert.Contains(t, buf.String(), "invalid oracle")
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, 2, run([]string{"nshor", "--bogus"}, &buf))
	assert.Contains(t, buf.String(), "usage")
}

func TestRunVersion(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, 0, run([]string{"nshor", "-v"}, &buf))
}

func TestRunInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nshor_config.yaml")

	var buf bytes.Buffer
	require.Equal(t, 0, run([]string{"nshor", "--init-config", path}, &buf), buf.String())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "attempts: 5")

	// never overwrites an existing file
	buf.Reset()
	assert.Equal(t, 1, run([]string{"nshor", "--init-config", path}, &buf))
	assert.Contains(t, buf.String(), "write config")
}
