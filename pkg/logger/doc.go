// Package logger provides structured, leveled logging for the term store.
//
// It wraps Uber's Zap logger behind a small interface-friendly surface:
// every method takes a message, an optional error, and optional field maps.
//
// Basic usage:
//
//	log := logger.NewLoggerClient(logger.Config{
//	    Level:       logger.Info,
//	    ServiceName: "termstore",
//	})
//	log.Info("vocabulary created", nil, map[string]interface{}{
//	    "string_key": "subjects",
//	})
//
// The package ships an fx module (FXModule) that provides the logger and
// registers an OnStop hook flushing buffered entries on shutdown.
package logger
