package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gregLibert/hce/pkg/hce"
	"github.com/gregLibert/hce/pkg/tlv"
)

// fileConfig is the YAML layout of a simulator configuration. Byte values are
// hex strings, so an AID reads the way it is written on a terminal trace:
//
//	aid: "A0 00 DA DA DA DA DA"
//	cla: "00"
//	ins: "A4"
//	permanent_responses: false
//	listen_only_configured_ports: true
//	responses:
//	  5: "CA FE"
type fileConfig struct {
	AID                       string         `yaml:"aid"`
	CLA                       string         `yaml:"cla"`
	INS                       string         `yaml:"ins"`
	PermanentResponses        bool           `yaml:"permanent_responses"`
	ListenOnlyConfiguredPorts bool           `yaml:"listen_only_configured_ports"`
	Responses                 map[int]string `yaml:"responses"`
}

// simConfig is a decoded simulator configuration.
type simConfig struct {
	Service   hce.Config
	Responses map[int][]byte
}

func defaultSimConfig() simConfig {
	return simConfig{Service: hce.DefaultConfig()}
}

// parseConfig decodes YAML data on top of the service defaults.
// Absent keys keep their default value.
func parseConfig(data []byte) (simConfig, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return simConfig{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg := defaultSimConfig()
	cfg.Service.PermanentResponses = fc.PermanentResponses
	cfg.Service.ListenOnlyConfiguredPorts = fc.ListenOnlyConfiguredPorts

	if fc.AID != "" {
		aid, err := tlv.ParseHex(fc.AID)
		if err != nil {
			return simConfig{}, fmt.Errorf("aid: %w", err)
		}
		cfg.Service.AID = aid
	}

	var err error
	if cfg.Service.CLA, err = parseByte("cla", fc.CLA, cfg.Service.CLA); err != nil {
		return simConfig{}, err
	}
	if cfg.Service.INS, err = parseByte("ins", fc.INS, cfg.Service.INS); err != nil {
		return simConfig{}, err
	}

	if err := cfg.Service.Validate(); err != nil {
		return simConfig{}, err
	}

	if len(fc.Responses) > 0 {
		cfg.Responses = make(map[int][]byte, len(fc.Responses))
		for port, h := range fc.Responses {
			data, err := tlv.ParseHex(h)
			if err != nil {
				return simConfig{}, fmt.Errorf("response for port %d: %w", port, err)
			}
			cfg.Responses[port] = data
		}
	}

	return cfg, nil
}

// loadConfig reads a configuration file. An empty path yields the defaults.
func loadConfig(path string) (simConfig, error) {
	if path == "" {
		return defaultSimConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return simConfig{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := parseConfig(data)
	if err != nil {
		return simConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func parseByte(name, value string, def byte) (byte, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return def, nil
	}
	b, err := tlv.ParseHex(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if len(b) != 1 {
		return 0, fmt.Errorf("%s: want one byte, got %d", name, len(b))
	}
	return b[0], nil
}
