// Package logger is a standardized event logging framework for the
// interpreter.
//
// Entries are google.protobuf.Struct messages written as newline delimited
// protojson so they can be read back with any JSON tooling.
package logger
