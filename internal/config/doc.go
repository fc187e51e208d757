// Package config provides configuration parsing and management for treelab.
//
// # Overview
//
// The config package loads, parses and validates configuration from YAML
// files and environment variables. It supports:
//
//   - YAML configuration files (decoded with gopkg.in/yaml.v3)
//   - Environment variable substitution
//   - Default values for all settings
//   - Configuration validation
//   - Reload on file change
//
// # Configuration Structure
//
//	type Config struct {
//	    Tree    TreeConfig    // Engine type and order bounds
//	    Logging LogConfig     // Logging settings
//	    Server  ServerConfig  // HTTP listener and feed settings
//	    Shell   ShellConfig   // Interactive shell settings
//	    Tracing TracingConfig // OpenTelemetry export
//	}
//
// # Loading Configuration
//
//	cfg, err := config.LoadConfig("/etc/treelab/config.yaml")
//	if err != nil {
//	    return err
//	}
//
// Or use defaults:
//
//	cfg := config.DefaultConfig()
//
// # Environment Variables
//
// Values may reference the environment:
//
//	server:
//	  address: "${TREELAB_ADDR:-:8080}"
//	tracing:
//	  endpoint: "${OTEL_ENDPOINT}"
//
// # Validation
//
//	if errs := config.ValidateConfig(cfg); len(errs) > 0 {
//	    for _, err := range errs {
//	        fmt.Println(err)
//	    }
//	}
//
// # Example Configuration
//
//	tree:
//	  type: bplustree
//	  order: 4
//	  minOrder: 3
//	  maxOrder: 10
//
//	logging:
//	  level: debug
//	  format: json
//	  output: stderr
//
//	server:
//	  address: ":8080"
//	  readTimeout: 15s
//	  feedBuffer: 8
//
//	shell:
//	  prompt: "treelab> "
//	  historyFile: /tmp/treelab_history
//	  diff: true
//
//	tracing:
//	  enabled: false
package config
