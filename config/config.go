package config

import (
	"net/url"
	"os"
	"strconv"
	"time"

	"sjsage522/reviewworker/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// Source listing
	BaseURL       string
	UserAgent     string
	PageDelay     time.Duration
	MaxPages      int
	FetchTimeout  time.Duration
	FetchRetries  int
	BlockTime     time.Duration
	RateLimitKey  string
	Locale        Locale
	CrawlInterval time.Duration

	// Store configuration
	DBDriver string
	DBDSN    string

	// Redis configuration
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamCount     int
	RedisStreamMaxLength int

	// Memcache configuration
	MemcacheAddr string

	// Metrics
	MetricsAddr string

	// Environment
	Environment string
}

// Locale describes how the source spells dates and labels
type Locale struct {
	// MonthNames maps a lowercased source month token to its calendar month.
	// Abbreviations are listed without their trailing dot.
	MonthNames map[string]time.Month

	// DatePrefixes are stripped from experience dates before parsing
	DatePrefixes []string

	// InvitedPhrase marks a review written after an invitation
	InvitedPhrase string
}

// DefaultLocale returns the French locale of the listing
func DefaultLocale() Locale {
	return Locale{
		MonthNames: map[string]time.Month{
			"janvier":   time.January,
			"janv":      time.January,
			"février":   time.February,
			"fevrier":   time.February,
			"févr":      time.February,
			"fevr":      time.February,
			"mars":      time.March,
			"avril":     time.April,
			"avr":       time.April,
			"mai":       time.May,
			"juin":      time.June,
			"juillet":   time.July,
			"juil":      time.July,
			"août":      time.August,
			"aout":      time.August,
			"septembre": time.September,
			"sept":      time.September,
			"octobre":   time.October,
			"oct":       time.October,
			"novembre":  time.November,
			"nov":       time.November,
			"décembre":  time.December,
			"decembre":  time.December,
			"déc":       time.December,
			"dec":       time.December,
		},
		DatePrefixes: []string{
			"Date de l'expérience :",
			"Date de l’expérience :",
			"Date de l'expérience:",
		},
		InvitedPhrase: "sur invitation",
	}
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	redisStreamCount, _ := strconv.Atoi(getEnv("REDIS_STREAM_COUNT", "1"))
	redisStreamMaxLength, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "1000"))
	pageDelay, _ := strconv.Atoi(getEnv("PAGE_DELAY_MS", "1000"))
	maxPages, _ := strconv.Atoi(getEnv("MAX_PAGES", "0"))
	fetchTimeout, _ := strconv.Atoi(getEnv("FETCH_TIMEOUT_SECONDS", "10"))
	fetchRetries, _ := strconv.Atoi(getEnv("FETCH_RETRIES", "2"))
	blockTime, _ := strconv.Atoi(getEnv("RATE_LIMIT_BLOCK_SECONDS", "500"))
	crawlInterval, _ := strconv.Atoi(getEnv("CRAWL_INTERVAL_SECONDS", "0"))

	return &Config{
		BaseURL:              getEnv("REVIEW_BASE_URL", "https://fr.trustpilot.com/review/nickel.eu?languages=all"),
		UserAgent:            getEnv("REVIEW_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"),
		PageDelay:            time.Duration(pageDelay) * time.Millisecond,
		MaxPages:             maxPages,
		FetchTimeout:         time.Duration(fetchTimeout) * time.Second,
		FetchRetries:         fetchRetries,
		BlockTime:            time.Duration(blockTime) * time.Second,
		RateLimitKey:         getEnv("RATE_LIMIT_KEY", "reviews_rate_limited"),
		Locale:               DefaultLocale(),
		CrawlInterval:        time.Duration(crawlInterval) * time.Second,
		DBDriver:             getEnv("DB_DRIVER", "sqlite"),
		DBDSN:                getEnv("DB_DSN", "reviews.db"),
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "reviews"),
		RedisStreamCount:     redisStreamCount,
		RedisStreamMaxLength: redisStreamMaxLength,
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", ""),
		MetricsAddr:          getEnv("METRICS_ADDR", ""),
		Environment:          getEnv("REVIEW_ENVIRONMENT", "development"),
	}
}

// Validate checks that the configuration can drive a harvest
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.NewConfiguration("REVIEW_BASE_URL must be an absolute URL", err)
	}
	if c.UserAgent == "" {
		return errors.NewConfiguration("REVIEW_USER_AGENT must not be empty", nil)
	}
	if c.PageDelay < 0 {
		return errors.NewConfiguration("PAGE_DELAY_MS must not be negative", nil)
	}
	if c.MaxPages < 0 {
		return errors.NewConfiguration("MAX_PAGES must not be negative", nil)
	}
	if c.FetchRetries < 0 {
		return errors.NewConfiguration("FETCH_RETRIES must not be negative", nil)
	}
	switch c.DBDriver {
	case "sqlite", "mysql":
	default:
		return errors.NewConfiguration("DB_DRIVER must be sqlite or mysql, got "+strconv.Quote(c.DBDriver), nil)
	}
	if c.DBDSN == "" {
		return errors.NewConfiguration("DB_DSN must not be empty", nil)
	}
	if c.RedisAddr != "" && c.RedisStreamCount < 1 {
		return errors.NewConfiguration("REDIS_STREAM_COUNT must be at least 1", nil)
	}
	if len(c.Locale.MonthNames) == 0 {
		return errors.NewConfiguration("locale month table is empty", nil)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
