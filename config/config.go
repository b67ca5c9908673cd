// config/config.go
package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Configuration stores all the configurations
type Configuration struct {
	Server        ServerConfiguration
	Database      DatabaseConfiguration
	Auth          AuthConfiguration
	OAuth2        OAuth2Configuration
	Cache         CacheConfiguration
	Redis         RedisConfiguration
	Elasticsearch ElasticsearchConfiguration
}

// ServerConfiguration stores the port and other web server settings
type ServerConfiguration struct {
	Port string
}

// DatabaseConfiguration stores data for the SQLite database
type DatabaseConfiguration struct {
	Path string
}

// AuthConfiguration stores token verification settings
type AuthConfiguration struct {
	Mode        string
	Secret      string
	CookieName  string
	TokenTTL    time.Duration
	PublicPaths []string
}

// OAuth2Configuration stores RFC 7662 introspection settings
type OAuth2Configuration struct {
	IntrospectionURL string
	ClientID         string
	ClientSecret     string
	SubjectField     string
	Timeout          time.Duration
}

// CacheConfiguration stores in-process cache settings
type CacheConfiguration struct {
	DefaultTTL time.Duration
}

// RedisConfiguration stores data for Redis connection
type RedisConfiguration struct {
	Addr string
}

// ElasticsearchConfiguration stores data for Elasticsearch connection
type ElasticsearchConfiguration struct {
	URL string
}

var config *Configuration

func InitConfig() error {
	viper.AddConfigPath("config") // path to look for the config file in
	viper.SetConfigName("config") // name of the config file (without extension)
	viper.SetConfigType("yaml")   // REQUIRED if the config file does not have the extension in the name

	viper.AutomaticEnv() // read in environment variables that match

	// Set default configurations
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.rateLimit", 100)
	viper.SetDefault("server.rateLimitWindow", "1m")
	viper.SetDefault("database.path", "library.db")
	viper.SetDefault("auth.mode", "jwt")
	viper.SetDefault("auth.secret", "nmhung_secret")
	viper.SetDefault("auth.cookieName", "auth_token")
	viper.SetDefault("auth.tokenTTL", "2h")
	viper.SetDefault("auth.publicPaths", []string{
		"/swagger",
		"/apidocs",
		"/openapi.yaml",
		"/health",
		"/api/auth/register",
		"/api/auth/login",
		"/api/auth/logout",
		"/api/auth/google",
	})
	viper.SetDefault("oauth2.subjectField", "sub")
	viper.SetDefault("oauth2.timeout", "5s")
	viper.SetDefault("google.scopes", "openid email profile")
	viper.SetDefault("cache.defaultTTL", "1m")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("elasticsearch.url", "http://localhost:9200")
	viper.SetDefault("library.finePerDay", 5000.0)
	viper.SetDefault("log.dir", "logging")

	// Attempt to read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found. Using default settings and environment variables.")
		} else {
			return err
		}
	}

	// Unmarshal the configuration into the Configuration struct
	err := viper.Unmarshal(&config)
	if err != nil {
		return err
	}

	return nil
}

// GetConfig returns the loaded configuration
func GetConfig() *Configuration {
	return config
}

// GetString retrieves a string value from the configuration
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt retrieves an integer value from the configuration
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool retrieves a boolean value from the configuration
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFloat64 retrieves a float64 value from the configuration
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

// GetDuration retrieves a duration value from the configuration
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// GetStringSlice retrieves a string slice value from the configuration
func GetStringSlice(key string) []string {
	return viper.GetStringSlice(key)
}
