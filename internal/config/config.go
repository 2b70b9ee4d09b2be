package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	HTTPHost             string   `envconfig:"HTTP_HOST" default:""`
	Port                 int      `envconfig:"PORT" default:"5000"`
	GRPCHost             string   `envconfig:"GRPC_HOST" default:""`
	GRPCPort             int      `envconfig:"GRPC_PORT" default:"50055"`
	ShutdownGraceSeconds int      `envconfig:"SHUTDOWN_GRACE_SECONDS" default:"5"`
	CORSAllowedOrigins   []string `envconfig:"CORS_ALLOWED_ORIGINS"`
	StoreDriver          string   `envconfig:"STORE_DRIVER" default:"mongo"`
	MongoURI             string   `envconfig:"MONGODB_URI"`
	MongoDatabase        string   `envconfig:"MONGODB_DATABASE" default:"artisans"`
	CloudinaryCloudName  string   `envconfig:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey     string   `envconfig:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret  string   `envconfig:"CLOUDINARY_API_SECRET"`
	UploadFolder         string   `envconfig:"UPLOAD_FOLDER" default:"artisans"`
	AMQPURL              string   `envconfig:"AMQP_URL"`
	AMQPExchange         string   `envconfig:"AMQP_EXCHANGE" default:"artisans.events"`
	OTLPEndpoint         string   `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	LogLevel             string   `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat            string   `envconfig:"LOG_FORMAT" default:"json"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over .env entries.
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.StoreDriver {
	case StoreMongo:
		if c.MongoURI == "" {
			return errors.New("MONGODB_URI is required when STORE_DRIVER=mongo")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

func (c Config) HTTPAddr() string {
	return joinHostPort(c.HTTPHost, c.Port)
}

func (c Config) GRPCAddr() string {
	return joinHostPort(c.GRPCHost, c.GRPCPort)
}

func (c Config) ShutdownGrace() time.Duration {
	return time.Duration(c.ShutdownGraceSeconds) * time.Second
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
