package loader

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func newTestLoader(t *testing.T, options ...LoaderBuilderOption) Loader {
	t.Helper()
	l := NewLoader(options...)
	t.Cleanup(l.Close)
	return l
}

func TestClassifySource(t *testing.T) {
	assert.Equal(t, SourceHTTP, ClassifySource("https://example.com/earth.jpg"))
	assert.Equal(t, SourceHTTP, ClassifySource("HTTP://example.com/earth.jpg"))
	assert.Equal(t, SourceFile, ClassifySource("/tmp/earth.jpg"))
	assert.Equal(t, SourceFile, ClassifySource("file:///tmp/earth.jpg"))
	assert.Equal(t, SourceFile, ClassifySource("textures/earth.png"))
}

func TestLocalPath(t *testing.T) {
	p, err := LocalPath("file:///tmp/earth.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/earth.jpg", p)

	p, err = LocalPath("~/earth.jpg")
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(p, "~"))
	assert.True(t, strings.HasSuffix(p, "earth.jpg"))
}

func TestLoadTexture_LocalFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "earth.png", encodePNG(t, 4, 2, color.RGBA{10, 20, 30, 255}))
	l := newTestLoader(t)

	tex, err := l.LoadTexture(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), tex.Width)
	assert.Equal(t, uint32(2), tex.Height)
	assert.Equal(t, []byte{10, 20, 30, 255}, tex.Pixels[:4])

	cached, ok := l.Get(path)
	assert.True(t, ok)
	assert.Equal(t, tex, cached)
}

func TestLoadTexture_Downscales(t *testing.T) {
	path := writeFile(t, t.TempDir(), "big.png", encodePNG(t, 64, 32, color.RGBA{255, 255, 255, 255}))
	l := newTestLoader(t, WithMaxDimension(16))

	tex, err := l.LoadTexture(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, uint32(16), tex.Width)
	assert.Equal(t, uint32(8), tex.Height)
	assert.Len(t, tex.Pixels, 16*8*4)
}

func TestLoadTexture_NotAnImage(t *testing.T) {
	path := writeFile(t, t.TempDir(), "notes.png", []byte("definitely not a png file, just text"))
	l := newTestLoader(t)

	_, err := l.LoadTexture(context.Background(), path)
	assert.ErrorIs(t, err, ErrNotImage)
	_, ok := l.Get(path)
	assert.False(t, ok)
}

func TestLoadTexture_MissingFile(t *testing.T) {
	l := newTestLoader(t)
	_, err := l.LoadTexture(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadTexture_HTTPCachesResult(t *testing.T) {
	body := encodePNG(t, 2, 2, color.RGBA{1, 2, 3, 255})
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "image/png")
		w.Write(body)
	}))
	defer srv.Close()

	l := newTestLoader(t, WithHTTPClient(srv.Client()))
	src := srv.URL + "/earth.png"

	for range 3 {
		tex, err := l.LoadTexture(context.Background(), src)
		require.NoError(t, err)
		assert.Equal(t, uint32(2), tex.Width)
	}
	assert.Equal(t, int32(1), hits.Load())

	l.Invalidate(src)
	_, err := l.LoadTexture(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestLoadTexture_HTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	l := newTestLoader(t, WithHTTPClient(srv.Client()))
	_, err := l.LoadTexture(context.Background(), srv.URL+"/missing.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestLoadTextureAsync_ReportsOnce(t *testing.T) {
	path := writeFile(t, t.TempDir(), "earth.png", encodePNG(t, 2, 2, color.RGBA{0, 0, 0, 255}))
	l := newTestLoader(t)

	type result struct {
		src string
		tex common.TextureStagingData
		err error
	}
	done := make(chan result, 2)
	l.LoadTextureAsync(path, func(src string, tex common.TextureStagingData, err error) {
		done <- result{src, tex, err}
	})

	select {
	case r := <-done:
		require.NoError(t, r.err)
		assert.Equal(t, path, r.src)
		assert.Equal(t, uint32(2), r.tex.Width)
	case <-time.After(5 * time.Second):
		t.Fatal("async load did not complete")
	}
}

func TestLoad_AfterClose(t *testing.T) {
	l := NewLoader()
	l.Close()
	l.Close()

	_, err := l.LoadTexture(context.Background(), "earth.png")
	assert.ErrorIs(t, err, ErrClosed)

	var got error
	l.LoadTextureAsync("earth.png", func(_ string, _ common.TextureStagingData, err error) { got = err })
	assert.ErrorIs(t, got, ErrClosed)
}

func TestWithTexture_SeedsCache(t *testing.T) {
	seed := common.TextureStagingData{Pixels: []byte{1, 2, 3, 4}, Width: 1, Height: 1}
	l := newTestLoader(t, WithTexture("builtin:white", seed))

	tex, err := l.LoadTexture(context.Background(), "builtin:white")
	require.NoError(t, err)
	assert.Equal(t, seed, tex)
}

func TestWatch_RemoteRejected(t *testing.T) {
	l := newTestLoader(t)
	_, err := l.Watch("https://example.com/earth.png", func() {})
	assert.ErrorIs(t, err, ErrNotWatchable)
}

func TestWatch_InvalidatesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "earth.png", encodePNG(t, 2, 2, color.RGBA{0, 0, 0, 255}))
	l := newTestLoader(t)

	_, err := l.LoadTexture(context.Background(), path)
	require.NoError(t, err)

	changed := make(chan struct{}, 8)
	stop, err := l.Watch(path, func() { changed <- struct{}{} })
	require.NoError(t, err)
	defer stop()

	writeFile(t, dir, "earth.png", encodePNG(t, 4, 4, color.RGBA{255, 0, 0, 255}))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
	_, ok := l.Get(path)
	assert.False(t, ok)

	// The first event can arrive before the write completes.
	assert.Eventually(t, func() bool {
		l.Invalidate(path)
		tex, err := l.LoadTexture(context.Background(), path)
		return err == nil && tex.Width == 4
	}, 5*time.Second, 20*time.Millisecond)

	stop()
	stop()
}
