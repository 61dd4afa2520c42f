// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Every response follows one of two envelopes:
//
//	{"status":"Ok","<key>":<payload>,"code":200}
//	{"status":"Error","message":<string|object>,"code":404}
//
// The success payload key varies per resource ("user", "productos"), so the
// envelope is built as a map rather than a fixed struct.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/losreyesdelusado/backend/internal/platform/apperr"
	"github.com/losreyesdelusado/backend/internal/platform/constants"
	"github.com/losreyesdelusado/backend/internal/platform/ctxutil"
)

// ErrorEnvelope is the JSON envelope for error responses.
//
// Message is a string, or a {field: message} object for validation failures.
type ErrorEnvelope struct {
	Status  string `json:"status"`
	Message any    `json:"message"`
	Code    int    `json:"code"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set(constants.HeaderContentType, "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// Success writes the Ok envelope with payload stored under key.
func Success(writer http.ResponseWriter, statusCode int, key string, payload any) {
	JSON(writer, statusCode, map[string]any{
		constants.FieldStatus: constants.StatusOk,
		key:                   payload,
		constants.FieldCode:   statusCode,
	})
}

// OK writes a 200 Ok envelope.
func OK(writer http.ResponseWriter, key string, payload any) {
	Success(writer, http.StatusOK, key, payload)
}

// Created writes a 201 Ok envelope.
func Created(writer http.ResponseWriter, key string, payload any) {
	Success(writer, http.StatusCreated, key, payload)
}

// Message writes a 200 Ok envelope whose only payload is a message string.
func Message(writer http.ResponseWriter, message string) {
	Success(writer, http.StatusOK, constants.FieldMessage, message)
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Error converts any Go error into the standardized error envelope.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx)

	appError := apperr.As(err)
	if appError == nil {
		// Unexpected internal error: log full details but hide them from the client.
		logger.ErrorContext(ctx, "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
		)
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
			slog.Any("cause", appError.Cause),
		)
	}

	WriteError(writer, appError)
}

// WriteError writes appError without logging. Used where no request is at hand.
func WriteError(writer http.ResponseWriter, appError *apperr.AppError) {
	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Status:  constants.StatusError,
		Message: errorMessage(appError),
		Code:    appError.HTTPStatus,
	})
}

func errorMessage(appError *apperr.AppError) any {
	if len(appError.Details) == 0 {
		return appError.Message
	}

	fields := make(map[string]string, len(appError.Details))
	for _, detail := range appError.Details {
		if _, seen := fields[detail.Field]; !seen {
			fields[detail.Field] = detail.Message
		}
	}
	return fields
}
