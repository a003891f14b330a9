package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Default configuration values
const (
	DefaultSearchResultsLimit       = 10
	DefaultMaxPagesToScrape         = 10
	DefaultMaxConcurrentExtractions = 5
	DefaultMinContentLength         = 500
	DefaultMaxContentLength         = 100000
	DefaultRequestTimeout           = 30 * time.Second
	DefaultBrowserTimeout           = 30 * time.Second
	DefaultSearchRetries            = 2
	DefaultRetryDelay               = 2 * time.Second
	DefaultCacheTTL                 = time.Hour

	// UserAgent is sent on plain HTTP fetches and browser page loads.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36"
)

// Settings holds all runtime configuration. It is read once at startup and
// treated as read-only afterwards.
type Settings struct {
	SearchResultsLimit       int
	MaxPagesToScrape         int
	MaxConcurrentExtractions int
	MinContentLength         int
	MaxContentLength         int
	RequestTimeout           time.Duration
	BrowserTimeout           time.Duration
	BrowserHeadless          bool
	SearchRetries            int
	RetryDelay               time.Duration

	SerpAPIKey string
	NewsAPIKey string
	GNewsAPIKey string
	CohereAPIKey string

	CacheEnabled bool
	CacheTTL     time.Duration
	RedisAddr    string
	RedisPass    string

	// Optional S3 archive of extracted documents and debug SERP HTML.
	ArchiveBucket string
	ArchivePrefix string

	// Optional Kafka publishing of fetched news items.
	KafkaBrokers []string
	KafkaTopic   string
}

// Load builds Settings from environment variables, falling back to defaults.
// godotenv is loaded by main before this runs.
func Load() Settings {
	return Settings{
		SearchResultsLimit:       envInt("SEARCH_RESULTS_LIMIT", DefaultSearchResultsLimit),
		MaxPagesToScrape:         envInt("MAX_PAGES_TO_SCRAPE", DefaultMaxPagesToScrape),
		MaxConcurrentExtractions: envInt("MAX_CONCURRENT_EXTRACTIONS", DefaultMaxConcurrentExtractions),
		MinContentLength:         envInt("MIN_CONTENT_LENGTH", DefaultMinContentLength),
		MaxContentLength:         envInt("MAX_CONTENT_LENGTH", DefaultMaxContentLength),
		RequestTimeout:           envDuration("REQUEST_TIMEOUT_SECONDS", DefaultRequestTimeout),
		BrowserTimeout:           envDuration("BROWSER_TIMEOUT_SECONDS", DefaultBrowserTimeout),
		BrowserHeadless:          envBool("BROWSER_HEADLESS", true),
		SearchRetries:            envInt("SEARCH_RETRIES", DefaultSearchRetries),
		RetryDelay:               envDuration("RETRY_DELAY_SECONDS", DefaultRetryDelay),

		SerpAPIKey:   os.Getenv("SERPAPI_KEY"),
		NewsAPIKey:   os.Getenv("NEWS_API_KEY"),
		GNewsAPIKey:  os.Getenv("GNEWS_API_KEY"),
		CohereAPIKey: os.Getenv("COHERE_API_KEY"),

		CacheEnabled: envBool("CACHE_ENABLED", false),
		CacheTTL:     envDuration("CACHE_TTL_SECONDS", DefaultCacheTTL),
		RedisAddr:    envDefault("REDIS_ADDR", "localhost:6379"),
		RedisPass:    os.Getenv("REDIS_PASS"),

		ArchiveBucket: os.Getenv("S3_BUCKET"),
		ArchivePrefix: os.Getenv("S3_PREFIX"),

		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   envDefault("KAFKA_NEWS_TOPIC", "news-items"),
	}
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// envDuration reads whole seconds from the environment.
func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return def
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
