// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package mail

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSender struct {
	sent []Message
}

func (c *captureSender) Send(_ context.Context, msg Message) error {
	c.sent = append(c.sent, msg)
	return nil
}

/*
TestMailer_Templates renders every template and checks escaping of user data.
*/
func TestMailer_Templates(t *testing.T) {
	ctx := context.Background()
	capture := &captureSender{}
	mailer := NewMailer(capture)

	link := "http://localhost:8080/auth/activate?token=abc&x=1"
	require.NoError(t, mailer.SendActivationLink(ctx, "a@b.com", link))
	require.NoError(t, mailer.SendActivationSuccess(ctx, "a@b.com", "<b>Juan</b>"))
	require.NoError(t, mailer.SendRecoveryLink(ctx, "a@b.com", "http://localhost/reset-password.php?token=t"))
	require.NoError(t, mailer.SendPasswordChanged(ctx, "a@b.com", "Juan"))

	require.Len(t, capture.sent, 4)

	activation := capture.sent[0]
	assert.Equal(t, "a@b.com", activation.To)
	assert.Contains(t, activation.HTML, "Activar mi cuenta")
	assert.Contains(t, activation.HTML, "token=abc&amp;x=1")
	assert.Contains(t, activation.Text, link)

	assert.NotContains(t, capture.sent[1].HTML, "<b>Juan</b>")
	assert.Contains(t, capture.sent[1].HTML, "&lt;b&gt;Juan&lt;/b&gt;")

	assert.Contains(t, capture.sent[2].HTML, "Restablecer contraseña")
	assert.Contains(t, capture.sent[3].Subject, "contraseña")
}

/*
TestBuildMIME checks headers and both alternative parts.
*/
func TestBuildMIME(t *testing.T) {
	msg := Message{To: "c@d.com", Subject: "Recuperación", HTML: "<p>hola</p>", Text: "hola"}
	payload, err := buildMIME("no-reply@losreyes.com", "Los Reyes del Usado", msg, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)

	raw := string(payload)
	assert.True(t, strings.HasPrefix(raw, "From: "))
	assert.Contains(t, raw, "<no-reply@losreyes.com>")
	assert.Contains(t, raw, "To: c@d.com\r\n")
	assert.Contains(t, raw, "Subject: =?utf-8?q?Recuperaci=C3=B3n?=")
	assert.Contains(t, raw, "@losreyes.com>")
	assert.Contains(t, raw, "text/plain; charset=UTF-8")
	assert.Contains(t, raw, "text/html; charset=UTF-8")
	assert.Contains(t, raw, "<p>hola</p>")
}

/*
TestNoopSender never fails.
*/
func TestNoopSender(t *testing.T) {
	assert.NoError(t, NoopSender{}.Send(context.Background(), Message{To: "x@y.com"}))
}
