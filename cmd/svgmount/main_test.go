package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/benoitkugler/svgmount/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestMountOnceStdout(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, mountOnce(config.Default(), &out, zaptest.NewLogger(t)))
	assert.Contains(t, out.String(), `<div id="container"><svg height="100" width="100"><rect `)
}

func TestMountOnceFiles(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(page, []byte(`<html><body><main id="app">loading</main></body></html>`), 0o644))

	cfg := config.Default()
	cfg.Page = page
	cfg.Mount = "app"
	cfg.Scale = 2
	cfg.Output = config.OutputConfig{
		HTML: filepath.Join(dir, "out.html"),
		PNG:  filepath.Join(dir, "out.png"),
		PDF:  filepath.Join(dir, "out.pdf"),
	}
	var stdout bytes.Buffer
	require.NoError(t, mountOnce(cfg, &stdout, zaptest.NewLogger(t)))
	assert.Zero(t, stdout.Len())

	html, err := os.ReadFile(cfg.Output.HTML)
	require.NoError(t, err)
	assert.Contains(t, string(html), `<main id="app"><svg height="100" width="100">`)
	assert.NotContains(t, string(html), "loading")

	f, err := os.Open(cfg.Output.PNG)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())

	pdf, err := os.ReadFile(cfg.Output.PDF)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}

func TestMountOnceMissingMount(t *testing.T) {
	cfg := config.Default()
	cfg.Mount = "nope"
	var out bytes.Buffer
	assert.Error(t, mountOnce(cfg, &out, zaptest.NewLogger(t)))
	assert.Zero(t, out.Len())
}

func TestRasterizeCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.svg")
	out := filepath.Join(dir, "out.png")
	require.NoError(t, os.WriteFile(in, []byte(
		`<svg xmlns="http://www.w3.org/2000/svg" width="30" height="20"><circle cx="10" cy="10" r="5" fill="teal"/></svg>`), 0o644))

	rootCmd.SetArgs([]string{"rasterize", in, out, "--scale", "3"})
	require.NoError(t, rootCmd.Execute())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 90, img.Bounds().Dx())
	assert.Equal(t, 60, img.Bounds().Dy())
}

func TestCheckWatchable(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "index.html")

	cfg := config.Default()
	assert.Error(t, checkWatchable(cfg))

	cfg.Page = page
	assert.NoError(t, checkWatchable(cfg))

	cfg.Output.HTML = filepath.Join(dir, "out.html")
	assert.NoError(t, checkWatchable(cfg))

	cfg.Output.HTML = filepath.Join(dir, "sub", "..", "index.html")
	assert.Error(t, checkWatchable(cfg))
}

func TestWatchRejectsPageAsOutput(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "index.html")
	const content = `<html><body><div id="container"></div></body></html>`
	require.NoError(t, os.WriteFile(page, []byte(content), 0o644))

	rootCmd.SetArgs([]string{"--page", page, "--out", page, "--watch"})
	assert.Error(t, rootCmd.Execute())

	// the page is left untouched
	got, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}
