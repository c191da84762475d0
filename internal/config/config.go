package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type App struct {
	ServerAddress string `envconfig:"SERVER_ADDRESS" default:":8080"`

	PostgresConn     string `envconfig:"POSTGRES_CONN" required:"true"`
	PostgresDatabase string `envconfig:"POSTGRES_DATABASE" default:"marketplace"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// How often the reconciler sweeps assigned gigs for pending bids
	// left behind by an interrupted hire.
	ReconcileInterval time.Duration `envconfig:"RECONCILE_INTERVAL" default:"1m"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
