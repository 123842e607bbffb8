package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors StructuredConfig for file-based
// configuration; durations are accepted as strings like "8s" or "5m".
type StructuredJSONConfig struct {
	Server struct {
		BaseURL        string   `json:"base_url"`
		RequestTimeout Duration `json:"request_timeout"`
		ConnectTimeout Duration `json:"connect_timeout"`
	} `json:"server,omitempty"`

	Probe struct {
		Path     string   `json:"path"`
		Interval Duration `json:"interval"`
		Timeout  Duration `json:"timeout"`
	} `json:"probe,omitempty"`

	Cache struct {
		MaxEntries   int                 `json:"max_entries"`
		HotEntries   int                 `json:"hot_entries"`
		DefaultTTL   Duration            `json:"default_ttl"`
		ResourceTTLs map[string]Duration `json:"resource_ttls"`
	} `json:"cache,omitempty"`

	Outbox struct {
		MaxRetries int `json:"max_retries"`
		DrainBatch int `json:"drain_batch"`
	} `json:"outbox,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Server: Server{
			BaseURL:        jsonCfg.Server.BaseURL,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			ConnectTimeout: time.Duration(jsonCfg.Server.ConnectTimeout),
		},
		Probe: Probe{
			Path:     jsonCfg.Probe.Path,
			Interval: time.Duration(jsonCfg.Probe.Interval),
			Timeout:  time.Duration(jsonCfg.Probe.Timeout),
		},
		Cache: Cache{
			MaxEntries:   jsonCfg.Cache.MaxEntries,
			HotEntries:   jsonCfg.Cache.HotEntries,
			DefaultTTL:   time.Duration(jsonCfg.Cache.DefaultTTL),
			ResourceTTLs: resourceTTLs(jsonCfg.Cache.ResourceTTLs),
		},
		Outbox: Outbox{
			MaxRetries: jsonCfg.Outbox.MaxRetries,
			DrainBatch: jsonCfg.Outbox.DrainBatch,
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
		},
	}

	return cfg, nil
}

func resourceTTLs(in map[string]Duration) map[string]time.Duration {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]time.Duration, len(in))
	for name, ttl := range in {
		out[name] = time.Duration(ttl)
	}
	return out
}

// Duration is a wrapper around time.Duration that supports JSON
// unmarshaling from strings like "1h" and "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
