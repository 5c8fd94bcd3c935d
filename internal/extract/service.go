// Package extract runs the request pipeline: stat image → cache lookup →
// (on miss) lazy engine init → prepare → recognize → normalize → store.
package extract

import (
	"context"
	"os"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/riandy/ocrhost/internal/cache"
	"github.com/riandy/ocrhost/internal/config"
	"github.com/riandy/ocrhost/internal/img"
	"github.com/riandy/ocrhost/internal/ocr"
	"github.com/riandy/ocrhost/internal/telemetry"
)

type Service struct {
	cfg       *config.Config
	imagePath string
	cache     *cache.File
	engine    *ocr.Lazy
	group     singleflight.Group
	limiter   *rate.Limiter
}

func New(cfg *config.Config, imagePath string, c *cache.File, engine *ocr.Lazy) *Service {
	rps := cfg.RecomputeRPS
	if rps <= 0 {
		rps = 1
	}
	burst := cfg.RecomputeBurst
	if burst <= 0 {
		burst = 1
	}
	return &Service{
		cfg:       cfg,
		imagePath: imagePath,
		cache:     c,
		engine:    engine,
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (s *Service) ImagePath() string { return s.imagePath }

// Extract returns the normalized OCR spans for the served image. Cache hits
// are served directly; concurrent misses for the same path collapse into one
// recognition run. force skips the cache lookup but still stores the result.
func (s *Service) Extract(ctx context.Context, force bool) ([]ocr.Span, error) {
	st, err := os.Stat(s.imagePath)
	if err != nil {
		return nil, err
	}
	mtime := st.ModTime().UnixNano()
	log := telemetry.L().With().Str("img", s.imagePath).Logger()

	if !force {
		if spans, ok := s.cache.Get(s.imagePath, mtime); ok {
			log.Debug().Int("spans", len(spans)).Msg("ocr_cache_hit")
			return spans, nil
		}
	}

	v, err, _ := s.group.Do(s.imagePath, func() (any, error) {
		// another request may have filled the cache while we queued
		if !force {
			if spans, ok := s.cache.Get(s.imagePath, mtime); ok {
				return spans, nil
			}
		}
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		eng, err := s.engine.Get()
		if err != nil {
			log.Error().Err(err).Msg("ocr_engine_init_fail")
			return nil, err
		}

		log.Info().Msg("ocr_cache_miss_preprocess")
		prep, err := img.PrepareForOCR(s.imagePath, s.cfg.OCRMaxDim, s.cfg.OCRImgQuality)
		if err != nil {
			log.Error().Err(err).Msg("ocr_prep_fail")
			return nil, err
		}

		start := time.Now()
		spans, err := eng.Recognize(ctx, prep.Bytes)
		if err != nil {
			log.Error().Err(err).Str("engine", eng.Name()).Msg("ocr_fail")
			return nil, err
		}
		log.Info().Str("engine", eng.Name()).Int("spans", len(spans)).
			Int("latency_ms", int(time.Since(start)/time.Millisecond)).Msg("ocr_done")

		if err := s.cache.Put(s.imagePath, mtime, spans); err != nil {
			log.Warn().Err(err).Msg("ocr_cache_set_err")
		}
		return spans, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]ocr.Span), nil
}
