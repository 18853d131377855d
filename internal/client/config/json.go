package config

import (
	"encoding/json"
	"os"

	"github.com/mlapshin/storefront/internal/flagx"
	"github.com/mlapshin/storefront/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so JSON can specify intervals either as strings like
// "800ms" or as integer nanoseconds. After parsing, values are copied
// into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	DatabaseDSN     string         `json:"database_dsn"`
	AuthLatency     timex.Duration `json:"auth_latency"`
	OrderAPIAddr    string         `json:"order_api_addr"`
	OrderAPITimeout timex.Duration `json:"order_api_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flags (via
// flagx.JsonConfigFlags); when absent, no JSON is loaded. Read or
// unmarshal errors panic (caller should recover if desired). Only fields
// present in the file override the current values.
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later
// stages override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.AuthLatency.Duration != 0 {
		cfg.AuthLatency = jc.AuthLatency.Duration
	}
	if jc.OrderAPIAddr != "" {
		cfg.OrderAPIAddr = jc.OrderAPIAddr
	}
	if jc.OrderAPITimeout.Duration != 0 {
		cfg.OrderAPITimeout = jc.OrderAPITimeout.Duration
	}
}
