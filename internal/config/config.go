package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Cache       CacheConfig
	Log         LogConfig
	Worker      WorkerConfig
	Map         MapConfig
	MapAPI      MapAPIConfig
	Geolocation GeolocationConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	RateLimitMax int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

type CacheConfig struct {
	MapCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
}

// MapConfig - параметры карты и выборок для неё
type MapConfig struct {
	RegionPlaceLimit int
	DetailZoom       float64
	OverviewZoom     float64
	FitPadding       int
	DefaultCenterLat float64
	DefaultCenterLng float64
}

// MapAPIConfig - клиент эндпоинта /places/map, которым пользуется движок карты
type MapAPIConfig struct {
	BaseURL          string
	RequestTimeout   time.Duration
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

type GeolocationConfig struct {
	Timeout time.Duration
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// .env необязателен: в контейнере всё приходит из окружения
	if _, err := os.Stat(".env"); err == nil {
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("API_HOST"),
			Port:         viper.GetInt("API_PORT"),
			Env:          viper.GetString("API_ENV"),
			RateLimitMax: viper.GetInt("RATE_LIMIT_MAX"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			PoolSize: viper.GetInt("REDIS_POOL_SIZE"),
		},
		Cache: CacheConfig{
			MapCacheTTL: time.Duration(viper.GetInt("MAP_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
		},
		Map: MapConfig{
			RegionPlaceLimit: viper.GetInt("MAP_REGION_PLACE_LIMIT"),
			DetailZoom:       viper.GetFloat64("MAP_DETAIL_ZOOM"),
			OverviewZoom:     viper.GetFloat64("MAP_OVERVIEW_ZOOM"),
			FitPadding:       viper.GetInt("MAP_FIT_PADDING"),
			DefaultCenterLat: viper.GetFloat64("MAP_DEFAULT_CENTER_LAT"),
			DefaultCenterLng: viper.GetFloat64("MAP_DEFAULT_CENTER_LNG"),
		},
		MapAPI: MapAPIConfig{
			BaseURL:          viper.GetString("MAP_API_BASE_URL"),
			RequestTimeout:   time.Duration(viper.GetInt("MAP_API_TIMEOUT")) * time.Second,
			FailureThreshold: viper.GetUint32("MAP_API_FAILURE_THRESHOLD"),
			OpenTimeout:      time.Duration(viper.GetInt("MAP_API_OPEN_TIMEOUT")) * time.Second,
		},
		Geolocation: GeolocationConfig{
			Timeout: time.Duration(viper.GetInt("GEOLOCATION_TIMEOUT")) * time.Second,
		},
	}

	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults - значения по умолчанию для незаданных параметров
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.RateLimitMax == 0 {
		c.Server.RateLimitMax = 120
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 20
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Cache.MapCacheTTL == 0 {
		c.Cache.MapCacheTTL = 5 * time.Minute
	}
	if c.Worker.ConsumerGroup == "" {
		c.Worker.ConsumerGroup = "map-cache-invalidation"
	}
	if c.Worker.StreamReadTimeout == 0 {
		c.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if c.Worker.MaxRetries == 0 {
		c.Worker.MaxRetries = 3
	}
	if c.Map.RegionPlaceLimit == 0 {
		c.Map.RegionPlaceLimit = 50
	}
	if c.Map.DetailZoom == 0 {
		c.Map.DetailZoom = 14
	}
	if c.Map.OverviewZoom == 0 {
		c.Map.OverviewZoom = 5
	}
	if c.Map.FitPadding == 0 {
		c.Map.FitPadding = 60
	}
	// Центр Перу
	if c.Map.DefaultCenterLat == 0 && c.Map.DefaultCenterLng == 0 {
		c.Map.DefaultCenterLat = -9.19
		c.Map.DefaultCenterLng = -75.0152
	}
	if c.MapAPI.BaseURL == "" {
		c.MapAPI.BaseURL = fmt.Sprintf("http://localhost:%d", c.Server.Port)
	}
	if c.MapAPI.RequestTimeout == 0 {
		c.MapAPI.RequestTimeout = 10 * time.Second
	}
	if c.MapAPI.FailureThreshold == 0 {
		c.MapAPI.FailureThreshold = 5
	}
	if c.MapAPI.OpenTimeout == 0 {
		c.MapAPI.OpenTimeout = 30 * time.Second
	}
	if c.Geolocation.Timeout == 0 {
		c.Geolocation.Timeout = 12 * time.Second
	}
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
