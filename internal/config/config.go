package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/skillcoder/cni-repair-controller/internal/logic/repair"
)

var (
	ErrRequired     = errors.New("required env var is not set")
	ErrBelowMinimum = errors.New("value is below minimum")
	ErrInvalidPort  = errors.New("invalid port")
)

type Config struct {
	KubeConfig     string
	KubeMaster     string
	LogLevel       string
	LogFormat      string
	NodeName       string
	PodName        string
	Mode           repair.Mode
	AdminPort      string
	PingerInterval time.Duration
	ResyncSchedule string
	ResyncTZ       *time.Location
}

func Load() (*Config, error) {
	cfg := &Config{
		KubeConfig:     getEnvWithFallback(envKeyKubeConfig, envKeyKubeConfigFallback),
		KubeMaster:     getEnvWithFallback(envKeyKubeMaster, envKeyKubeMasterFallback),
		LogLevel:       getEnvOrDefault(envKeyLogLevel, defaultLogLevel),
		LogFormat:      getEnvOrDefault(envKeyLogFormat, defaultLogFormat),
		NodeName:       os.Getenv(envKeyNodeName),
		PodName:        os.Getenv(envKeyPodName),
		AdminPort:      getEnvOrDefault(envKeyAdminPort, defaultAdminPort),
		ResyncSchedule: os.Getenv(envKeyResyncSchedule),
	}

	if cfg.NodeName == "" {
		return nil, fmt.Errorf("%s: %w", envKeyNodeName, ErrRequired)
	}

	if cfg.PodName == "" {
		return nil, fmt.Errorf("%s: %w", envKeyPodName, ErrRequired)
	}

	mode, err := repair.ParseMode(getEnvOrDefault(envKeyMode, defaultMode))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", envKeyMode, err)
	}

	cfg.Mode = mode

	port, err := strconv.ParseUint(cfg.AdminPort, 10, 16)
	if err != nil || port == 0 {
		return nil, fmt.Errorf("parse %s %q: %w", envKeyAdminPort, cfg.AdminPort, ErrInvalidPort)
	}

	cfg.PingerInterval, err = parseDuration(envKeyPingerInterval, defaultPingerInterval, envMinPingerInterval)
	if err != nil {
		return nil, err
	}

	cfg.ResyncTZ, err = time.LoadLocation(getEnvOrDefault(envKeyResyncTZ, defaultResyncTZ))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", envKeyResyncTZ, err)
	}

	return cfg, nil
}

func parseDuration(key string, defaultValue, minValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}

	if d < minValue {
		return 0, fmt.Errorf("%s %s, minimum %s: %w", key, d, minValue, ErrBelowMinimum)
	}

	return d, nil
}

func getEnvWithFallback(key, fallbackKey string) string {
	value := os.Getenv(key)
	if value == "" {
		return os.Getenv(fallbackKey)
	}

	return value
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}
