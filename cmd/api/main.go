package main

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/riandy/ocrhost/internal/cache"
	"github.com/riandy/ocrhost/internal/config"
	"github.com/riandy/ocrhost/internal/extract"
	"github.com/riandy/ocrhost/internal/img"
	"github.com/riandy/ocrhost/internal/middleware"
	"github.com/riandy/ocrhost/internal/ocr"
	"github.com/riandy/ocrhost/internal/ocr/tesseract"
	"github.com/riandy/ocrhost/internal/telemetry"
)

func main() {
	cfg := config.Load()
	tlog := telemetry.Init(telemetry.FromEnv(config.GetEnv))

	imagePath, err := img.FirstImage(cfg.ImageDir, cfg.ImageExts)
	if err != nil {
		tlog.Fatal().Err(err).Str("dir", cfg.ImageDir).
			Msg("no image found; put a jpg/png in the image dir and restart")
	}

	// the tesseract engine is expensive; built once, on first use
	engine := ocr.NewLazy(func() (ocr.Engine, error) {
		return tesseract.New(cfg.OCRLang), nil
	})
	svc := extract.New(cfg, imagePath, cache.NewFile(cfg.CacheFile), engine)

	tlog.Info().Str("image", imagePath).Str("port", cfg.AppPort).Msg("booting ocrhost")

	app := fiber.New()

	app.Use(middleware.RequestID())
	app.Use(middleware.Recover())
	app.Use(middleware.SecureHeaders())
	app.Use(middleware.RequestLog())
	app.Use(middleware.RateLimiter())

	extract.NewHandler(svc).Register(app)

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
