package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces every environment variable, e.g. TMA_INPUT_DATA_DIR.
const EnvPrefix = "TMA"

// Config represents the complete application configuration
type Config struct {
	Input     InputConfig     `yaml:"input" envconfig:"INPUT"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Analysis  AnalysisConfig  `yaml:"analysis" envconfig:"ANALYSIS"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// InputConfig describes where filing spreadsheets are read from
type InputConfig struct {
	DataDir        string            `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	Pattern        string            `yaml:"pattern" envconfig:"PATTERN" validate:"required"`
	SheetName      string            `yaml:"sheet_name" envconfig:"SHEET_NAME"`
	CountryAliases map[string]string `yaml:"country_aliases" envconfig:"COUNTRY_ALIASES"`
}

// OutputConfig describes where reports, charts and exports are written
type OutputConfig struct {
	BaseDir          string `yaml:"base_dir" envconfig:"BASE_DIR" validate:"required"`
	BasicDir         string `yaml:"basic_dir" envconfig:"BASIC_DIR" validate:"required"`
	AnalysisDir      string `yaml:"analysis_dir" envconfig:"ANALYSIS_DIR" validate:"required"`
	ReportFile       string `yaml:"report_file" envconfig:"REPORT_FILE" validate:"required"`
	MarketReportFile string `yaml:"market_report_file" envconfig:"MARKET_REPORT_FILE" validate:"required"`
	FontPath         string `yaml:"font_path" envconfig:"FONT_PATH"`
	ExportCSV        bool   `yaml:"export_csv" envconfig:"EXPORT_CSV"`
	ExportWorkbook   bool   `yaml:"export_workbook" envconfig:"EXPORT_WORKBOOK"`
	ExportSQLite     bool   `yaml:"export_sqlite" envconfig:"EXPORT_SQLITE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// AnalysisConfig holds the constants that drive every aggregation
type AnalysisConfig struct {
	TopN               int      `yaml:"top_n" envconfig:"TOP_N" validate:"min=1"`
	GlobalTopN         int      `yaml:"global_top_n" envconfig:"GLOBAL_TOP_N" validate:"min=1"`
	KeywordTopN        int      `yaml:"keyword_top_n" envconfig:"KEYWORD_TOP_N" validate:"min=1"`
	CAGRWindowYears    int      `yaml:"cagr_window_years" envconfig:"CAGR_WINDOW_YEARS" validate:"min=2"`
	GrowthWindowYears  int      `yaml:"growth_window_years" envconfig:"GROWTH_WINDOW_YEARS" validate:"min=2"`
	MinEndYearVolume   int      `yaml:"min_end_year_volume" envconfig:"MIN_END_YEAR_VOLUME" validate:"min=0"`
	MinNameTokenLen    int      `yaml:"min_name_token_len" envconfig:"MIN_NAME_TOKEN_LEN" validate:"min=1"`
	MinGoodsKeywordLen int      `yaml:"min_goods_keyword_len" envconfig:"MIN_GOODS_KEYWORD_LEN" validate:"min=1"`
	TrendYears         int      `yaml:"trend_years" envconfig:"TREND_YEARS" validate:"min=1"`
	ChartCountries     int      `yaml:"chart_countries" envconfig:"CHART_COUNTRIES" validate:"min=1,max=9"`
	StopWords          []string `yaml:"stop_words" envconfig:"STOP_WORDS"`
	GroupCountry       string   `yaml:"group_country" envconfig:"GROUP_COUNTRY"`
}

// TelemetryConfig toggles run tracing and the metrics textfile
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled" envconfig:"ENABLED"`
	ServiceName string `yaml:"service_name" envconfig:"SERVICE_NAME"`
	TraceFile   string `yaml:"trace_file" envconfig:"TRACE_FILE"`
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in that order of increasing precedence. An empty path searches
// the usual locations.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = getConfigFilePath()
	}
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML values on top of cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks struct constraints and normalizes a few fields
func (c *Config) Validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Output = strings.ToLower(c.Logging.Output)

	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.Analysis.GrowthWindowYears > c.Analysis.TrendYears {
		return fmt.Errorf("growth window (%d years) exceeds trend window (%d years)",
			c.Analysis.GrowthWindowYears, c.Analysis.TrendYears)
	}

	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		return fmt.Errorf("logging output %q requires a file path", c.Logging.Output)
	}

	for alias, country := range c.Input.CountryAliases {
		if strings.TrimSpace(alias) == "" || strings.TrimSpace(country) == "" {
			return fmt.Errorf("invalid country alias %q -> %q", alias, country)
		}
	}

	if c.Telemetry.Enabled && (c.Telemetry.TraceFile == "" || c.Telemetry.MetricsFile == "") {
		return fmt.Errorf("telemetry requires trace and metrics file names")
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		ConfigFileName,
		"configs/" + ConfigFileName,
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Input: InputConfig{
			DataDir: DefaultDataDir,
			Pattern: DefaultInputPattern,
			CountryAliases: map[string]string{
				"KR": "한국",
				"US": "미국",
				"CN": "중국",
				"JP": "일본",
				"EU": "유럽",
			},
		},
		Output: OutputConfig{
			BaseDir:          DefaultOutputDir,
			BasicDir:         DefaultBasicDir,
			AnalysisDir:      DefaultAnalysisDir,
			ReportFile:       DefaultReportFile,
			MarketReportFile: DefaultMarketReportFile,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "console",
			FilePath: "logs/tmanalyzer.log",
		},
		Analysis: AnalysisConfig{
			TopN:               5,
			GlobalTopN:         10,
			KeywordTopN:        10,
			CAGRWindowYears:    5,
			GrowthWindowYears:  4,
			MinEndYearVolume:   100,
			MinNameTokenLen:    3,
			MinGoodsKeywordLen: 3,
			TrendYears:         10,
			ChartCountries:     4,
			StopWords:          append([]string(nil), DefaultStopWords...),
			GroupCountry:       "한국",
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			ServiceName: AppName,
			TraceFile:   "trace.json",
			MetricsFile: "metrics.prom",
		},
	}
}
