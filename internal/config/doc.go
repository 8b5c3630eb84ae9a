// Package config provides configuration and path management for the sales
// report run.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. salesreport.yaml in the working directory or configs/
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern SALES_* for namespacing:
//
//	SALES_LOGGING_LEVEL=debug
//	SALES_LOGGING_OUTPUT=file
//	SALES_REPORT_SHOW_CHART=true
//	SALES_TELEMETRY_TRACE_EXPORTER=stdout
//	SALES_TELEMETRY_METRICS_FILE=logs/salesreport.prom
//
// # Fixed Values
//
// Input and output file names, the rating bin edges and the divisor of the
// monthly average are constants (see constants.go) and cannot be configured.
package config
