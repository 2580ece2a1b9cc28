package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"armor-vision/internal/domain/digit"
)

func isolate(t *testing.T) {
	t.Helper()
	chdir(t, t.TempDir())
	for _, key := range []string{
		"DATABASE_URL", "POSTGRES_HOST", "ARMOR_ENEMY_COLOR", "ARMOR_INPUT", "ARMOR_CAMERA",
		"ARMOR_TEMPLATE_DIR", "ARMOR_PARAMS_FILE", "ARMOR_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	require.Equal(t, Version+"\n", out)
}

func TestTemplatesCommand_ExportsGlyphs(t *testing.T) {
	isolate(t)
	dir := filepath.Join(t.TempDir(), "tpl")

	out, err := execute(t, "templates", "--dir", dir)
	require.NoError(t, err)
	require.Len(t, strings.Fields(out), 5)

	params := digit.DefaultParams()
	params.TemplateDir = dir
	set, report, err := digit.LoadTemplateSet(params)
	require.NoError(t, err)
	require.Equal(t, digit.SourceFiles, set.Source())
	require.Empty(t, report.Failed)

	// повторный экспорт не трогает существующие файлы
	out, err = execute(t, "templates", "--dir", dir)
	require.NoError(t, err)
	require.Empty(t, strings.TrimSpace(out))

	out, err = execute(t, "templates", "--dir", dir, "--force")
	require.NoError(t, err)
	require.Len(t, strings.Fields(out), 5)
}

func TestExportTemplates_RecognizesOwnGlyphs(t *testing.T) {
	params := digit.DefaultParams()
	params.TemplateDir = t.TempDir()

	written, err := ExportTemplates(params, false)
	require.NoError(t, err)
	require.Len(t, written, len(params.Labels))

	set, _, err := digit.LoadTemplateSet(params)
	require.NoError(t, err)
	matcher := digit.NewMatcher(set, params)
	for _, label := range params.Labels {
		glyph, ok := digit.Glyph(label, params.TemplateSize)
		require.True(t, ok)
		rec := matcher.Match(glyph)
		require.True(t, rec.OK, "label %d", label)
		require.Equal(t, label, rec.Digit)
	}
}

func TestPrepare_FlagsOverrideConfig(t *testing.T) {
	isolate(t)
	t.Setenv("ARMOR_ENEMY_COLOR", "red")

	paramsFile := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(paramsFile, []byte("digit:\n  confidence_floor: 0.55\n"), 0o644))

	s := &session{}
	cmd := &cobra.Command{Use: "flags"}
	bindGlobalFlags(cmd.Flags(), &s.opts)
	require.NoError(t, cmd.Flags().Parse([]string{
		"--enemy-color", "blue", "--disjoint", "--scale-to-frame", "--params", paramsFile, "--templates", "/opt/tpl",
	}))

	require.NoError(t, s.prepare(cmd))
	require.Equal(t, "blue", s.cfg.EnemyColor)
	require.True(t, s.cfg.Tuning.Armor.Pair.DisjointPairs)
	require.True(t, s.cfg.Tuning.Armor.ScaleToFrame)
	require.Equal(t, 0.55, s.cfg.Tuning.Digit.ConfidenceFloor)
	require.Equal(t, "/opt/tpl", s.cfg.Tuning.Digit.TemplateDir)
}

func TestRunCommand_UnavailableSource(t *testing.T) {
	isolate(t)
	_, err := execute(t, "run", "--input", filepath.Join(t.TempDir(), "missing.avi"), "--show=false")
	require.Error(t, err)
}

func TestImageCommand_MissingFile(t *testing.T) {
	isolate(t)
	_, err := execute(t, "image", filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
