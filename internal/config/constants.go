package config

// Application constants
const (
	// Application Info
	AppName    = "tmanalyzer"
	AppVersion = "1.2.0"

	// Config file searched in the working directory and configs/
	ConfigFileName = "tmanalyzer.yaml"

	// Input defaults
	DefaultDataDir      = "data"
	DefaultInputPattern = "*.xlsx"

	// Output layout
	DefaultOutputDir        = "outputs"
	DefaultBasicDir         = "basic"
	DefaultAnalysisDir      = "analysis"
	DefaultReportFile       = "analysis_results.txt"
	DefaultMarketReportFile = "market_trends.txt"

	// Export file names
	CombinedCSVFile = "combined_filings.csv"
	ResultsWorkbook = "analysis_results.xlsx"
	FilingsSQLiteDB = "filings.sqlite"

	// Chart file names
	ChartGlobalTopClasses  = "1_Global_Top_Classes.png"
	ChartCountryTopClasses = "1_Country_Top_Classes.png"
	ChartKoreaTopGroups    = "1_Korea_Top_Groups.png"
	ChartTrendsByCountry   = "2_Trends_by_Country.png"
	ChartPromisingFields   = "3_Promising_Fields_CAGR.png"
	ChartSeasonality       = "4_Seasonality_Trend.png"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// DefaultStopWords are dropped from trademark-name and goods keyword rankings.
var DefaultStopWords = []string{
	"the", "and", "of", "for", "in", "a", "trade", "mark", "ltd", "inc", "co", "group",
}
