// Package dataprocessing implements the labor-market data pipeline: quarter
// label parsing, dataset loading from CSV and Excel sources, data-quality
// validation, and time-series feature derivation.
//
// Data flows one direction. The Loader produces the canonical Dataset; the
// Validator runs read-only checks over a snapshot of it; the Preprocessor
// derives feature tables from a defensive copy. No component mutates
// another's output in place.
package dataprocessing
