package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv, AppPort string

	ImageDir  string
	ImageExts []string

	OCRLang       string
	OCRMaxDim     int
	OCRImgQuality int
	CacheFile     string

	// recomputations per second when the image keeps changing
	RecomputeRPS   float64
	RecomputeBurst int
}

func Load() *Config {
	_ = godotenv.Load()

	c := &Config{
		AppEnv:         get("APP_ENV", "dev"),
		AppPort:        get("APP_PORT", get("PORT", "8000")),
		ImageDir:       get("IMAGE_DIR", "."),
		ImageExts:      split(get("OCR_IMAGE_EXTS", ".png,.jpg,.jpeg,.bmp,.tiff,.webp")),
		OCRLang:        get("OCR_LANG", "eng"),
		OCRMaxDim:      getInt("OCR_MAX_DIM", 1024),
		OCRImgQuality:  getInt("OCR_IMG_QUALITY", 85),
		CacheFile:      get("OCR_CACHE_FILE", "ocr_cache.json"),
		RecomputeRPS:   getFloat("OCR_RECOMPUTE_RPS", 1),
		RecomputeBurst: getInt("OCR_RECOMPUTE_BURST", 1),
	}
	return c
}

func get(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// numeric envs fall back to their default on garbage, never to zero
func getInt(k string, d int) int {
	if i, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return i
	}
	return d
}

func getFloat(k string, d float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(k), 64); err == nil {
		return f
	}
	return d
}
func split(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func GetEnv(k, d string) string {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	return v
}
