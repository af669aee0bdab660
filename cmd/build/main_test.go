package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-forge/internal/shared/config"
)

const source = `
personal:
  name: {ru: Иван, en: Ivan}
  surname: {ru: Петров, en: Petrov}
contacts:
  phone: "+7 900 000-00-00"
  email: ivan@example.com
work_experience:
  - organisation:
      name: Acme
    position: {ru: Разработчик, en: Developer}
    bullets:
      - Wrote code.
      - ru: Руководил командой
        en: Led the team
        profiles: [teamlead]
    technologies: [Go]
    from_date: 2013-07
    current: true
`

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "data.yaml")
	require.NoError(t, os.WriteFile(dataFile, []byte(source), 0o600))
	return config.Config{
		DataFile:         dataFile,
		JobTitle:         "Java developer",
		ObjectStoreType:  "local",
		LocalStoreDir:    filepath.Join(dir, "build"),
		PDFCommand:       "definitely-not-a-latex-engine",
		BuildConcurrency: 2,
	}
}

func TestRunWritesArtifacts(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer

	err := run(context.Background(), cfg, []string{"--lang", "en", "--profiles", "teamlead;exclude_phone", "--format", "md,json"}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "en/teamlead")
	assert.Contains(t, out.String(), "en/exclude_phone")
	assert.Equal(t, 5, len(strings.Split(strings.TrimSpace(out.String()), "\n")))

	matches, err := filepath.Glob(filepath.Join(cfg.LocalStoreDir, "*", "en", "teamlead", "Ivan_Petrov_Java_developer_CV.md"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "Led the team")
}

func TestRunDryRunWritesNothing(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), cfg, []string{"-n", "--lang", "ru", "--format", "md"}, &out))
	assert.Contains(t, out.String(), "ru/default")

	_, err := os.Stat(cfg.LocalStoreDir)
	assert.True(t, os.IsNotExist(err))
}

func TestRunRejectsBadInput(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer

	assert.Error(t, run(context.Background(), cfg, []string{"--lang", "fr"}, &out))
	assert.Error(t, run(context.Background(), cfg, []string{"--format", "rtf"}, &out))
	assert.Error(t, run(context.Background(), cfg, []string{"--format", "pdf"}, &out))
	assert.Error(t, run(context.Background(), cfg, []string{"--unknown"}, &out))
	assert.Error(t, run(context.Background(), cfg, []string{"extra"}, &out))
}
