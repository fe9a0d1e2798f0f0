package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/onflows/telemetry-backend-go/internal/pipeline"
)

// Config holds the service configuration. Values come from the environment
// with sensible defaults; a .env file is honored when present.
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	RateLimit       int
	RateLimitWindow time.Duration

	Thresholds pipeline.Thresholds
}

// Load reads configuration from the environment.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("[config] loaded .env")
	}

	cfg := &Config{
		Port:            envString("PORT", ":8080"),
		DBPath:          envString("DB_PATH", "./data/telemetry.db"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		RateLimit:       envInt("RATE_LIMIT", 120),
		RateLimitWindow: time.Minute,
		Thresholds:      loadThresholds(),
	}
	return cfg
}

// loadThresholds starts from the stock profile and applies any per-knob
// environment overrides.
func loadThresholds() pipeline.Thresholds {
	th := pipeline.DefaultThresholds()
	th.HRMinBPM = envFloat("HR_MIN_BPM", th.HRMinBPM)
	th.HRMaxBPM = envFloat("HR_MAX_BPM", th.HRMaxBPM)
	th.MinSpeedMS = envFloat("MIN_SPEED_MS", th.MinSpeedMS)
	th.VLowMS = envFloat("V_LOW_MS", th.VLowMS)
	th.HRWorkBPM = envFloat("HR_WORK_BPM", th.HRWorkBPM)
	th.LowWindow = envInt("LOW_WINDOW", th.LowWindow)
	th.MissingRatioWarn = envFloat("MISSING_RATIO_WARN", th.MissingRatioWarn)
	th.ZeroSpeedPauseSec = envInt("ZERO_SPEED_PAUSE_SEC", th.ZeroSpeedPauseSec)
	th.GPSJumpM = envFloat("GPS_JUMP_M", th.GPSJumpM)
	th.WindowS = envInt("WINDOW_S", th.WindowS)
	return th
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("[config] invalid %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("[config] invalid %s=%q, using default %g", key, v, def)
	}
	return def
}
