package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	Mongo       MongoConfig
	Redis       RedisConfig
	GoogleOAuth GoogleOAuthConfig
	Auth        AuthConfig
	Fetcher     FetcherConfig
	Logger      LoggerConfig
	ClientURL   string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AllowOrigins string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// AuthConfig covers both halves of the identity bridge: the cookie session
// and the fallback bearer token.
type AuthConfig struct {
	SessionCookieName string
	SessionTTL        time.Duration
	CookieSecure      bool
	CookieSameSite    string
	TokenTTL          time.Duration
	StateSecret       string
	StateTTL          time.Duration
}

type FetcherConfig struct {
	Timeout     time.Duration
	LeetCodeURL string
	GFGURL      string
	UserAgent   string
	// RequestsPerSecond caps outgoing calls per platform; 0 disables the limit.
	RequestsPerSecond float64
	Burst             int
}

type LoggerConfig struct {
	Env   string
	Level string
}

func setDefaults() {
	viper.SetDefault("server.port", 5000)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("server.allow_origins", "http://localhost:5173")
	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "trackme")
	viper.SetDefault("redis.address", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("auth.session_cookie_name", "trackme.sid")
	viper.SetDefault("auth.session_ttl_hours", 24*7)
	viper.SetDefault("auth.cookie_secure", true)
	viper.SetDefault("auth.cookie_same_site", "None")
	viper.SetDefault("auth.token_ttl_hours", 24)
	viper.SetDefault("auth.state_ttl_minutes", 10)
	viper.SetDefault("fetcher.timeout_seconds", 8)
	viper.SetDefault("fetcher.leetcode_url", "https://leetcode.com/graphql")
	viper.SetDefault("fetcher.gfg_url", "https://practiceapi.geeksforgeeks.org/api/latest/problems")
	viper.SetDefault("fetcher.user_agent", "Mozilla/5.0 (compatible; trackme/1.0)")
	viper.SetDefault("fetcher.requests_per_second", 2)
	viper.SetDefault("fetcher.burst", 4)
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("client_url", "http://localhost:5173")
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments inject the environment directly
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  time.Duration(viper.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(viper.GetInt("server.write_timeout")) * time.Second,
			AllowOrigins: viper.GetString("server.allow_origins"),
		},
		Mongo: MongoConfig{
			URI:      viper.GetString("mongo.uri"),
			Database: viper.GetString("mongo.database"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		GoogleOAuth: GoogleOAuthConfig{
			ClientID:     viper.GetString("google_oauth.client_id"),
			ClientSecret: viper.GetString("google_oauth.client_secret"),
			RedirectURL:  viper.GetString("google_oauth.redirect_url"),
		},
		Auth: AuthConfig{
			SessionCookieName: viper.GetString("auth.session_cookie_name"),
			SessionTTL:        time.Duration(viper.GetInt("auth.session_ttl_hours")) * time.Hour,
			CookieSecure:      viper.GetBool("auth.cookie_secure"),
			CookieSameSite:    viper.GetString("auth.cookie_same_site"),
			TokenTTL:          time.Duration(viper.GetInt("auth.token_ttl_hours")) * time.Hour,
			StateSecret:       viper.GetString("auth.state_secret"),
			StateTTL:          time.Duration(viper.GetInt("auth.state_ttl_minutes")) * time.Minute,
		},
		Fetcher: FetcherConfig{
			Timeout:     time.Duration(viper.GetInt("fetcher.timeout_seconds")) * time.Second,
			LeetCodeURL: viper.GetString("fetcher.leetcode_url"),
			GFGURL:      viper.GetString("fetcher.gfg_url"),
			UserAgent:   viper.GetString("fetcher.user_agent"),

			RequestsPerSecond: viper.GetFloat64("fetcher.requests_per_second"),
			Burst:             viper.GetInt("fetcher.burst"),
		},
		Logger: LoggerConfig{
			Env:   viper.GetString("logger.env"),
			Level: viper.GetString("logger.level"),
		},
		ClientURL: viper.GetString("client_url"),
	}

	// Override with environment variables if set
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		config.Mongo.URI = uri
	}
	if dbName := os.Getenv("MONGO_DATABASE"); dbName != "" {
		config.Mongo.Database = dbName
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		config.Server.Port = viper.GetInt("server.port")
	}
	if port := os.Getenv("PORT"); port != "" {
		var p int
		if _, err := fmt.Sscanf(port, "%d", &p); err == nil {
			config.Server.Port = p
		}
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if clientID := os.Getenv("GOOGLE_CLIENT_ID"); clientID != "" {
		config.GoogleOAuth.ClientID = clientID
	}
	if clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET"); clientSecret != "" {
		config.GoogleOAuth.ClientSecret = clientSecret
	}
	if redirectURL := os.Getenv("GOOGLE_CALLBACK_URL"); redirectURL != "" {
		config.GoogleOAuth.RedirectURL = redirectURL
	}
	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		config.Auth.StateSecret = secret
	}
	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		config.ClientURL = clientURL
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.Mongo.URI == "" || c.Mongo.Database == "" {
		return fmt.Errorf("mongo uri and database are required")
	}
	if len(c.Auth.StateSecret) < 16 {
		return fmt.Errorf("auth state secret must be at least 16 bytes (set SESSION_SECRET)")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth token ttl must be positive")
	}
	if c.Fetcher.Timeout <= 0 {
		return fmt.Errorf("fetcher timeout must be positive")
	}
	if c.Fetcher.RequestsPerSecond < 0 {
		return fmt.Errorf("fetcher requests_per_second must not be negative")
	}
	return nil
}
