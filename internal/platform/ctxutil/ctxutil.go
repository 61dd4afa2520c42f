// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
//
// It replaces server-side session state: everything a handler knows about the
// caller travels in the request context.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/losreyesdelusado/backend/internal/platform/ctxkey"
	"github.com/losreyesdelusado/backend/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// Trace is filled in by inner handlers and read back by outer middleware
// after the request finishes.
type Trace struct {
	UserID int64
}

// WithTrace attaches an empty [Trace] and returns it.
func WithTrace(ctx context.Context) (context.Context, *Trace) {
	trace := &Trace{}
	return context.WithValue(ctx, ctxkey.KeyTrace, trace), trace
}

// GetTrace returns the request [Trace], or nil.
func GetTrace(ctx context.Context) *Trace {
	trace, _ := ctx.Value(ctxkey.KeyTrace).(*Trace)
	return trace
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok || logger == nil {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithAuthUser returns a new context with the provided auth claims attached.
func WithAuthUser(ctx context.Context, user *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, user)
}

// GetAuthUser retrieves the [*sec.AuthClaims] from the [context.Context].
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, ok := ctx.Value(ctxkey.KeyUser).(*sec.AuthClaims)
	if !ok {
		return nil
	}
	return claims
}

// WithRole attaches the caller's role as loaded from storage.
func WithRole(ctx context.Context, role sec.Role) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRole, role)
}

// GetRole returns the caller's role and whether one was attached.
func GetRole(ctx context.Context) (sec.Role, bool) {
	role, ok := ctx.Value(ctxkey.KeyRole).(sec.Role)
	return role, ok
}

// WithBearerToken attaches the raw bearer token of the current request.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyBearerToken, token)
}

// GetBearerToken returns the raw bearer token, or "" when none was extracted.
func GetBearerToken(ctx context.Context) string {
	token, _ := ctx.Value(ctxkey.KeyBearerToken).(string)
	return token
}
