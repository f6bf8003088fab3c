// Package logger wraps a process-wide zap logger and lets request handlers
// carry a scoped child logger through context.Context.
//
// Init once at startup:
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "studyhub"})
//	defer logger.Sync()
//
// Inside handlers and services:
//
//	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("Register"))
//	log.Info("user registered", logger.UserID(u.ID))
//
// Passwords and bearer tokens must never be passed to any field helper.
package logger
