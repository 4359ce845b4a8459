package client

import "time"

// Config holds settings for the REST binding.
type Config struct {
	// BaseURL is the API root including its base path, e.g. http://localhost:8080/api
	BaseURL string `yaml:"base_url" json:"base_url"`
	// Timeout is the per-attempt request timeout
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
	// Retries is the number of extra attempts for reads and keyed mutations
	Retries int `yaml:"retries" json:"retries"`
	// Backoff is the base backoff between retries
	Backoff time.Duration `yaml:"backoff" json:"backoff"`
	// CircuitFailureThreshold opens circuit after this many consecutive failures
	CircuitFailureThreshold int `yaml:"circuit_failure_threshold" json:"circuit_failure_threshold"`
	// CircuitReset is the duration after which the circuit attempts to half-open
	CircuitReset time.Duration `yaml:"circuit_reset" json:"circuit_reset"`
}

// DefaultConfig returns a single-shot configuration with a sane timeout.
func DefaultConfig() Config {
	return Config{
		BaseURL:                 "http://localhost:8080/api",
		Timeout:                 15 * time.Second,
		Retries:                 0,
		Backoff:                 300 * time.Millisecond,
		CircuitFailureThreshold: 5,
		CircuitReset:            30 * time.Second,
	}
}
