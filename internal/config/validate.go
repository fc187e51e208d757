package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Order bounds accepted by the engines behind the workbench.
const (
	LowestOrder  = 3
	HighestOrder = 10
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig validates the configuration and returns a list of validation errors.
// An empty slice indicates the configuration is valid.
func ValidateConfig(config *Config) []error {
	var errs []error

	errs = append(errs, validateTreeConfig(&config.Tree)...)
	errs = append(errs, validateLogConfig(&config.Logging)...)
	errs = append(errs, validateServerConfig(&config.Server)...)
	errs = append(errs, validateTracingConfig(&config.Tracing)...)

	return errs
}

// validateTreeConfig validates engine selection and order bounds.
func validateTreeConfig(config *TreeConfig) []error {
	var errs []error

	switch config.Type {
	case TreeTypeBTree, TreeTypeBPlusTree:
	default:
		errs = append(errs, ValidationError{
			Field:   "tree.type",
			Message: "must be btree or bplustree",
		})
	}

	if config.MinOrder < LowestOrder || config.MaxOrder > HighestOrder || config.MinOrder > config.MaxOrder {
		errs = append(errs, ValidationError{
			Field:   "tree.minOrder",
			Message: fmt.Sprintf("order bounds must satisfy %d <= minOrder <= maxOrder <= %d", LowestOrder, HighestOrder),
		})
		return errs
	}

	if config.Order < config.MinOrder || config.Order > config.MaxOrder {
		errs = append(errs, ValidationError{
			Field:   "tree.order",
			Message: fmt.Sprintf("must be between %d and %d", config.MinOrder, config.MaxOrder),
		})
	}

	return errs
}

// validateLogConfig validates logging configuration.
func validateLogConfig(config *LogConfig) []error {
	var errs []error

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if config.Level != "" && !validLevels[strings.ToLower(config.Level)] {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: "must be debug, info, warn, or error",
		})
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if config.Format != "" && !validFormats[strings.ToLower(config.Format)] {
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: "must be text or json",
		})
	}

	if config.Output != "" && config.Output != "stdout" && config.Output != "stderr" {
		dir := filepath.Dir(config.Output)
		if !filepath.IsAbs(config.Output) {
			errs = append(errs, ValidationError{
				Field:   "logging.output",
				Message: "must be stdout, stderr, or an absolute file path",
			})
		} else if _, err := os.Stat(dir); os.IsNotExist(err) {
			errs = append(errs, ValidationError{
				Field:   "logging.output",
				Message: fmt.Sprintf("directory %s does not exist", dir),
			})
		}
	}

	return errs
}

// validateServerConfig validates server configuration.
func validateServerConfig(config *ServerConfig) []error {
	var errs []error

	if err := validateAddress(config.Address); err != nil {
		errs = append(errs, ValidationError{
			Field:   "server.address",
			Message: err.Error(),
		})
	}

	timeouts := []struct {
		field string
		value int64
	}{
		{"server.readTimeout", int64(config.ReadTimeout)},
		{"server.writeTimeout", int64(config.WriteTimeout)},
		{"server.idleTimeout", int64(config.IdleTimeout)},
	}
	for _, timeout := range timeouts {
		if timeout.value < 0 {
			errs = append(errs, ValidationError{
				Field:   timeout.field,
				Message: "must be non-negative",
			})
		}
	}

	if config.FeedBuffer < 1 {
		errs = append(errs, ValidationError{
			Field:   "server.feedBuffer",
			Message: "must be at least 1",
		})
	}

	return errs
}

// validateTracingConfig validates tracing configuration.
func validateTracingConfig(config *TracingConfig) []error {
	var errs []error

	if !config.Enabled {
		return errs
	}

	if err := validateAddress(config.Endpoint); err != nil {
		errs = append(errs, ValidationError{
			Field:   "tracing.endpoint",
			Message: err.Error(),
		})
	}
	if config.ServiceName == "" {
		errs = append(errs, ValidationError{
			Field:   "tracing.serviceName",
			Message: "is required when tracing is enabled",
		})
	}

	return errs
}

// validateAddress validates a network address in host:port format.
func validateAddress(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid address format: %v", err)
	}

	if port == "" {
		return fmt.Errorf("port is required")
	}
	if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		return fmt.Errorf("invalid port %q", port)
	}

	return nil
}
