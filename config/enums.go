package config

// Verbosity of a log destination.
// ENUM(none, normal, debug)
type LogLevel int

// How existing log file is treated.
// ENUM(append, overwrite)
type LogMode int
