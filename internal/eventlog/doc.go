// Package eventlog receives firmware event lines broadcast over UDP,
// parses them into structured records, and fans them out to attached
// sinks while appending them to a rolling log file.
package eventlog
