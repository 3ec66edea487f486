package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string           `mapstructure:"environment"`
	Server      ServerConfig     `mapstructure:"server"`
	Database    DatabaseConfig   `mapstructure:"database"`
	Logger      LoggerConfig     `mapstructure:"logger"`
	Redis       RedisConfig      `mapstructure:"redis"`
	Auth        AuthConfig       `mapstructure:"auth"`
	Commission  CommissionConfig `mapstructure:"commission"`
	Bootstrap   BootstrapConfig  `mapstructure:"bootstrap"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// RedisConfig contains the cache and notification broker settings.
// An empty host disables Redis; the directory is then read straight from the database.
type RedisConfig struct {
	Host                string        `mapstructure:"host"`
	Port                string        `mapstructure:"port"`
	Password            string        `mapstructure:"password"`
	DB                  int           `mapstructure:"db"`
	UserCacheTTL        time.Duration `mapstructure:"userCacheTTL"` // seconds
	NotificationChannel string        `mapstructure:"notificationChannel"`
}

// Enabled reports whether a Redis host is configured
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

// AuthConfig contains bearer token settings
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwtSecret"`
	Issuer    string        `mapstructure:"issuer"`
	TokenTTL  time.Duration `mapstructure:"tokenTTL"` // minutes
}

// CommissionConfig contains the validation rule inputs
type CommissionConfig struct {
	// Threshold is the minimum commission, in settlement minor units, for a transaction to validate
	Threshold int64 `mapstructure:"threshold"`
	// Rates maps an ISO currency code to the value of one EUR minor unit in that currency's minor units
	Rates           map[string]string `mapstructure:"rates"`
	DefaultPageSize int               `mapstructure:"defaultPageSize"`
	MaxPageSize     int               `mapstructure:"maxPageSize"`
}

// BootstrapConfig describes the super_admin seeded at startup
type BootstrapConfig struct {
	AdminName  string `mapstructure:"adminName"`
	AdminEmail string `mapstructure:"adminEmail"`
}
