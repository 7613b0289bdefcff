// Package statement converts a brokerage trading statement into a
// currency-normalized profit/loss report in the two reporting currencies,
// BGN and EUR.
//
// The pipeline is a one-way data flow per document: raw rows extracted
// from the statement are normalized into typed transactions, each sell
// transaction's realized profit/loss is converted into both reporting
// currencies at its execution day's historical rate, and the conversions
// are aggregated into a single immutable Result.
//
// BGN and EUR convert through the fixed currency-board peg [EURBGNRate];
// every other currency takes two independent historical-rate lookups
// through a [RateSource]. Any failure aborts the whole report: partial
// financial totals are worse than an explicit error.
package statement
