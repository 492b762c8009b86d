package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all service configuration, loaded once at startup and
// treated as immutable afterwards.
type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" required:"true"`

	MongoURI string `envconfig:"MONGO_URI" required:"true"`
	MongoDB  string `envconfig:"MONGO_DB" default:"job_portal"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"redis:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	MinioEndpoint  string `envconfig:"MINIO_ENDPOINT" default:"minio:9000"`
	MinioAccessKey string `envconfig:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `envconfig:"MINIO_SECRET_KEY"`
	MinioBucket    string `envconfig:"MINIO_BUCKET" default:"resumes"`
	MinioUseSSL    bool   `envconfig:"MINIO_USE_SSL" default:"false"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"168h"`

	CORSOrigin string `envconfig:"CORS_ORIGIN" default:"http://localhost:5173"`

	MaxUploadBytes int64 `envconfig:"MAX_UPLOAD_BYTES" default:"5242880"`

	// The observed design lets any authenticated user download any
	// resume by id. Flip this to restrict downloads to the owner.
	ResumeOwnerOnlyDownload bool `envconfig:"RESUME_OWNER_ONLY_DOWNLOAD" default:"false"`

	LoginRateLimit  int           `envconfig:"LOGIN_RATE_LIMIT" default:"10"`
	LoginRateWindow time.Duration `envconfig:"LOGIN_RATE_WINDOW" default:"1m"`
}

func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	return &c, nil
}
