// Package config provides centralized configuration management for tmanalyzer.
// It handles loading configuration from multiple sources, validation, and
// resolution of the input and output directories.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file (tmanalyzer.yaml or configs/tmanalyzer.yaml)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern TMA_<SECTION>_<FIELD>:
//
//	TMA_INPUT_DATA_DIR=./data
//	TMA_INPUT_COUNTRY_ALIASES=KR:한국,US:미국
//	TMA_OUTPUT_BASE_DIR=./outputs
//	TMA_LOGGING_LEVEL=debug
//	TMA_ANALYSIS_MIN_END_YEAR_VOLUME=50
//	TMA_TELEMETRY_ENABLED=true
//
// # Path Management
//
// ResolvePaths converts the configured directories into absolute paths:
//
//	paths, err := config.ResolvePaths(cfg)
//	reportPath := paths.BasicPath(cfg.Output.ReportFile)
//	chartPath := paths.AnalysisPath(config.ChartSeasonality)
package config
