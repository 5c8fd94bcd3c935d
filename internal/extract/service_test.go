package extract

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riandy/ocrhost/internal/cache"
	"github.com/riandy/ocrhost/internal/config"
	"github.com/riandy/ocrhost/internal/ocr"
)

type fakeEngine struct {
	calls int32
	spans []ocr.Span
	err   error
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Recognize(ctx context.Context, image []byte) ([]ocr.Span, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.spans, f.err
}

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	im := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			im.Set(x, y, color.White)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, im))
}

func newTestService(t *testing.T, eng ocr.Engine) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "scan.png")
	writeTestPNG(t, imagePath)

	cfg := &config.Config{
		OCRMaxDim:      1024,
		OCRImgQuality:  85,
		RecomputeRPS:   1000,
		RecomputeBurst: 100,
	}
	lazy := ocr.NewLazy(func() (ocr.Engine, error) { return eng, nil })
	svc := New(cfg, imagePath, cache.NewFile(filepath.Join(dir, "ocr_cache.json")), lazy)
	return svc, imagePath
}

func TestExtractRunsOnceThenHitsCache(t *testing.T) {
	eng := &fakeEngine{spans: []ocr.Span{{Text: "hello"}}}
	svc, _ := newTestService(t, eng)

	for i := 0; i < 3; i++ {
		spans, err := svc.Extract(context.Background(), false)
		require.NoError(t, err)
		require.Len(t, spans, 1)
		require.Equal(t, "hello", spans[0].Text)
	}
	require.Equal(t, int32(1), atomic.LoadInt32(&eng.calls))
}

func TestExtractRecomputesOnMtimeChange(t *testing.T) {
	eng := &fakeEngine{spans: []ocr.Span{{Text: "hello"}}}
	svc, imagePath := newTestService(t, eng)

	_, err := svc.Extract(context.Background(), false)
	require.NoError(t, err)

	later := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(imagePath, later, later))

	_, err = svc.Extract(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, int32(2), atomic.LoadInt32(&eng.calls))
}

func TestExtractForceBypassesCache(t *testing.T) {
	eng := &fakeEngine{spans: []ocr.Span{{Text: "hello"}}}
	svc, _ := newTestService(t, eng)

	_, err := svc.Extract(context.Background(), false)
	require.NoError(t, err)
	_, err = svc.Extract(context.Background(), true)
	require.NoError(t, err)
	require.Equal(t, int32(2), atomic.LoadInt32(&eng.calls))

	// forced result landed in the cache
	_, err = svc.Extract(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, int32(2), atomic.LoadInt32(&eng.calls))
}

type slowEngine struct {
	fakeEngine
	delay time.Duration
}

func (s *slowEngine) Recognize(ctx context.Context, image []byte) ([]ocr.Span, error) {
	time.Sleep(s.delay)
	return s.fakeEngine.Recognize(ctx, image)
}

func TestExtractConcurrentMissesCollapse(t *testing.T) {
	eng := &slowEngine{
		fakeEngine: fakeEngine{spans: []ocr.Span{{Text: "hello"}}},
		delay:      200 * time.Millisecond,
	}
	svc, _ := newTestService(t, eng)

	const n = 8
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			_, err := svc.Extract(context.Background(), false)
			errs <- err
		}()
	}
	for i := 0; i < n; i++ {
		require.NoError(t, <-errs)
	}
	require.Equal(t, int32(1), atomic.LoadInt32(&eng.calls))
}

func TestExtractRateCapSparesCacheHits(t *testing.T) {
	eng := &fakeEngine{spans: []ocr.Span{{Text: "hello"}}}
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "scan.png")
	writeTestPNG(t, imagePath)

	// one recompute token, then a ~100s refill: the first run drains it
	cfg := &config.Config{OCRMaxDim: 1024, OCRImgQuality: 85, RecomputeRPS: 0.01, RecomputeBurst: 1}
	lazy := ocr.NewLazy(func() (ocr.Engine, error) { return eng, nil })
	svc := New(cfg, imagePath, cache.NewFile(filepath.Join(dir, "ocr_cache.json")), lazy)

	_, err := svc.Extract(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, int32(1), atomic.LoadInt32(&eng.calls))

	// cache hits never touch the limiter
	for i := 0; i < 3; i++ {
		_, err = svc.Extract(context.Background(), false)
		require.NoError(t, err)
	}
	require.Equal(t, int32(1), atomic.LoadInt32(&eng.calls))

	// a forced recompute has to wait for the next token; this deadline wins
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = svc.Extract(ctx, true)
	require.Error(t, err)
	require.Equal(t, int32(1), atomic.LoadInt32(&eng.calls))
}

func TestExtractEngineError(t *testing.T) {
	eng := &fakeEngine{err: errors.New("inference blew up")}
	svc, _ := newTestService(t, eng)

	_, err := svc.Extract(context.Background(), false)
	require.ErrorContains(t, err, "inference blew up")
}

func TestExtractEngineInitError(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "scan.png")
	writeTestPNG(t, imagePath)

	boom := errors.New("libtesseract missing")
	cfg := &config.Config{OCRMaxDim: 1024, OCRImgQuality: 85, RecomputeRPS: 1000, RecomputeBurst: 100}
	lazy := ocr.NewLazy(func() (ocr.Engine, error) { return nil, boom })
	svc := New(cfg, imagePath, cache.NewFile(filepath.Join(dir, "ocr_cache.json")), lazy)

	_, err := svc.Extract(context.Background(), false)
	require.ErrorIs(t, err, boom)
}

func TestExtractMissingImage(t *testing.T) {
	eng := &fakeEngine{}
	svc, imagePath := newTestService(t, eng)
	require.NoError(t, os.Remove(imagePath))

	_, err := svc.Extract(context.Background(), false)
	require.Error(t, err)
	require.Equal(t, int32(0), atomic.LoadInt32(&eng.calls))
}
