// Package dataprocessing turns the monthly sales table into statistics and
// ratings.
//
// # Architecture
//
// The package is organized into four components:
//
// 1. Loader: Reads the delimited input file and normalizes headers and months
// 2. Aggregator: Total, average and the highest and lowest month of Sales
// 3. Changes: Month-over-month percentage change of Sales
// 4. Classifier: Buckets each Sales value into Bad, Average, Good or Excellent
//
// # Usage
//
//	table, err := dataprocessing.NewLoader(logger).LoadFile("sales.csv")
//	if err != nil {
//	    return err
//	}
//
//	stats, err := dataprocessing.Aggregate(table.Rows)
//	err = dataprocessing.Classify(table)
//
// # Numbers
//
// Amounts are decimal.Decimal throughout. Sums are exact; averages and
// percentages are rounded to two places with banker's rounding.
//
// # Error Handling
//
// Failures are *errors.AppError values: DATA_FORMAT for input that does not fit
// the schema, EMPTY_TABLE for operations on a table without rows and ARITHMETIC
// for a zero divisor. Match them with errors.Is against the sentinels of the
// errors package.
package dataprocessing
