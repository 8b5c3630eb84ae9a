package config

import "salescli/pkg/contracts"

// Application constants - every hardcoded value of the sales report run
const (
	// Application Info
	AppName    = "salesreport"
	AppVersion = contracts.Version

	// Environment variable prefix (SALES_LOGGING_LEVEL, ...)
	EnvPrefix = "SALES"

	// File names, resolved against the working directory
	InputFileName          = "sales.csv"
	ClassificationFileName = "Sales Classification.csv"
	SummaryFileName        = "Summary.csv"
	ChartWorkbookFileName  = "Sales Report.xlsx"
	ConfigFileName         = "salesreport.yaml"

	// Log Settings
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "json"
	DefaultLogOutput   = "both"
	DefaultLogsDir     = "logs"
	DefaultLogFileName = "salesreport.log"

	// Telemetry Settings
	DefaultTraceExporter   = "none"
	DefaultTraceFileName   = "trace.json"
	DefaultMetricsFileName = "salesreport.prom"

	// MonthsPerYear is the divisor of the monthly average. It is applied
	// regardless of how many rows were loaded.
	MonthsPerYear = 12

	// Lower edges of the rating bins. The top edge of the last bin is
	// derived from the data (max sales + 1).
	BinBadFloor       = 0
	BinAverageFloor   = 2000
	BinGoodFloor      = 3500
	BinExcellentFloor = 5000

	// CurrencySymbol prefixes every monetary value in narration and headers
	CurrencySymbol = "£"
)
