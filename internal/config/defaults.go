package config

import "time"

// Tree types accepted in tree.type.
const (
	TreeTypeBTree     = "btree"
	TreeTypeBPlusTree = "bplustree"
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Tree: TreeConfig{
			Type:     TreeTypeBTree,
			Order:    3,
			MinOrder: 3,
			MaxOrder: 10,
		},
		Logging: LogConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Server: ServerConfig{
			Address:      ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
			FeedBuffer:   8,
		},
		Shell: ShellConfig{
			Prompt:      "treelab> ",
			HistoryFile: "",
			Diff:        false,
		},
		Tracing: TracingConfig{
			Enabled:     false,
			Endpoint:    "localhost:4318",
			Insecure:    true,
			ServiceName: "treelab",
		},
	}
}
