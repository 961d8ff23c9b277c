// Package logger provides structured logging using zerolog.
//
// Libraries in this module default to Nop() and stay silent until the caller
// hands them a configured logger.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.New(&cfg, "zoomctl").WithComponent("zoom")
//	log.Info("token exchanged", logger.Fields("expires_in", 3599))
package logger
