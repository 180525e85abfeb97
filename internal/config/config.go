package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	Pg                    Pg            `yaml:"pg"`
	JwtTTL                time.Duration `yaml:"jwt_ttl"`
	PostsPerPage          int           `yaml:"posts_per_page"` // feed page size
	BcryptCost            int           `yaml:"bcrypt_cost"`
	MediaRoot             string        `yaml:"media_root"` // folder for uploaded images
	AllowedImageMimeTypes []string      `yaml:"allowed_image_mime_types"`
	CorsOrigin            string        `yaml:"cors_origin"`
	LogLevel              string        `yaml:"log_level"`
	LogJSON               bool          `yaml:"log_json"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Private struct {
	JwtKey string `yaml:"jwt_key"`
}

// JwtKey is the process-wide token signing secret, loaded once at startup.
func (s *Config) JwtKey() string {
	return s.private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)

	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	if private.JwtKey == "" {
		panic("jwt_key must be set in private.yaml")
	}

	applyDefaults(&public)

	return &Config{public, private}
}

func applyDefaults(p *Public) {
	if p.JwtTTL == 0 {
		p.JwtTTL = time.Hour
	}
	if p.PostsPerPage == 0 {
		p.PostsPerPage = 2
	}
	if p.BcryptCost == 0 {
		p.BcryptCost = 12
	}
	if p.MediaRoot == "" {
		p.MediaRoot = "media"
	}
	if len(p.AllowedImageMimeTypes) == 0 {
		p.AllowedImageMimeTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	}
	if p.LogLevel == "" {
		p.LogLevel = "info"
	}
}
