// Package logger provides structured logging for the LogicMonitor MCP
// server using zerolog.
//
// It supports JSON and console output formats, level configuration,
// and component-scoped loggers with structured fields.
//
// # Usage
//
//	log := logger.WithComponent("lmapi")
//	log.Info("request completed", logger.Fields("status", 200))
package logger
