package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	Port        string
	DataDir     string
	CurrentGame string
	Aggregate   AggregateConfig
	Namer       NamerConfig
	Turso       TursoConfig
}

// AggregateConfig controls the recurring rename/reconcile cycle.
type AggregateConfig struct {
	Interval time.Duration
}

// NamerConfig holds credentials for the Workers AI naming calls.
type NamerConfig struct {
	AccountID  string
	APIToken   string
	Moderation bool
}

// TursoConfig is optional; when PrimaryURL is set the game registry
// database lives on Turso instead of a local file.
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
