package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SchemaPath  string // hcl schema document
	PayloadPath string // optional json payload to decode
	TypeName    string // synthesized type to decode the payload as

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.SchemaPath == "" {
		return nil, errors.New("SchemaPath is a required configuration field and cannot be empty")
	}
	if cfg.PayloadPath != "" && cfg.TypeName == "" {
		return nil, errors.New("TypeName is required when a payload is given")
	}

	return &cfg, nil
}
