// Package config provides a centralized entrypoint for the application parameters.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

const (
	// ModeService runs the standalone HTTP service.
	ModeService = "service"
	// ModeLambda runs the AWS Lambda handler.
	ModeLambda = "lambda"
)

var (
	// Global is a struct that contains the global configuration.
	Global global
	// GitHub is a struct that contains the configuration for the upstream GitHub API.
	GitHub github
	// Service is a struct that contains the configuration for the service mode.
	Service service
	// Lambda is a struct that contains the configuration for the lambda mode.
	Lambda lambda
)

type global struct {
	// Mode is the runtime mode of the application.
	Mode string `yaml:"mode,omitempty" default:"service"`
	// Logging is a struct that contains the logging configuration.
	Logging struct {
		// Verbosity is the verbosity level of the application. It represents slog levels.
		Verbosity int `yaml:"verbosity,omitempty"`
		// CallerTrace is a flag that enables the caller trace in the logger.
		CallerTrace bool `yaml:"callerTrace,omitempty"`
	} `yaml:"logging,omitempty"`
	// FetchRateLimits is a flag that enables periodic reporting of upstream API rate limits.
	FetchRateLimits bool `yaml:"fetchRateLimits,omitempty"`
	// CORS is a struct that contains the CORS response configuration.
	CORS struct {
		AllowOrigin string `yaml:"allowOrigin,omitempty" default:"*"`
	} `yaml:"cors,omitempty"`
	// S3 is a struct that contains the configuration for S3.
	S3 struct {
		Receipt struct {
			BucketName string `yaml:"bucketName,omitempty"`
			Enabled    bool   `yaml:"enabled,omitempty"`
		} `yaml:"receipt,omitempty"`
	} `yaml:"s3,omitempty"`
}

type github struct {
	// Owner is the account owning the repository whose workflow is dispatched.
	Owner string `yaml:"owner,omitempty"`
	// Repository is the repository whose workflow is dispatched.
	Repository string `yaml:"repository,omitempty"`
	// WorkflowFile is the workflow file identifier passed to the dispatches endpoint.
	WorkflowFile string `yaml:"workflowFile,omitempty"`
	// WorkflowRef is the branch or tag name the workflow run is created on.
	WorkflowRef string `yaml:"workflowRef,omitempty"`
	// AuthMode selects the credentials provider. Supported values are 'token' and 'ssm'.
	AuthMode string `yaml:"authMode,omitempty" default:"token"`
	// SSMKey is the SSM parameter holding the credentials when AuthMode is 'ssm'.
	SSMKey string `yaml:"ssmKey,omitempty"`
	// APIBaseURL is the upstream API base URL. Must carry a trailing slash.
	APIBaseURL string `yaml:"apiBaseUrl,omitempty" default:"https://api.github.com/"`
	// UserAgent identifies this application on outbound requests.
	UserAgent string `yaml:"userAgent,omitempty" default:"aviation-iia-run-endpoint"`
}

type service struct {
	Path    string        `yaml:"path,omitempty" default:"/"`
	Addr    string        `yaml:"addr,omitempty"`
	Port    string        `yaml:"port,omitempty" default:"8080"`
	Timeout time.Duration `yaml:"timeout,omitempty" default:"5s"`
}

type lambda struct {
	PayloadType string `yaml:"payloadType,omitempty" default:"api-gateway-v2"`
}

// SetDefaults sets the default values for the configuration.
func SetDefaults() error {
	return errors.Join(
		defaults.Set(&Global),
		defaults.Set(&GitHub),
		defaults.Set(&Service),
		defaults.Set(&Lambda),
	)
}

// LoadFromFile loads the configuration from a file.
func LoadFromFile(path string) error {
	if len(path) == 0 {
		return nil
	}
	fstat, err := os.Stat(path)
	if err != nil {
		return nil //nolint:nilerr // If the file does not exist, we ignore it.
	}
	if fstat.IsDir() {
		return fmt.Errorf("configuration file %s is a directory", path)
	}
	if !fstat.Mode().IsRegular() {
		return fmt.Errorf("configuration file %s is not a regular file", path)
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}
	type all struct {
		Global  global  `yaml:"global,omitempty"`
		GitHub  github  `yaml:"github,omitempty"`
		Service service `yaml:"service,omitempty"`
		Lambda  lambda  `yaml:"lambda,omitempty"`
	}
	var a all
	if err = yaml.Unmarshal(content, &a); err != nil {
		return fmt.Errorf("failed to unmarshal configuration file %s: %w", path, err)
	}
	Global = a.Global
	GitHub = a.GitHub
	Service = a.Service
	Lambda = a.Lambda

	return nil
}
