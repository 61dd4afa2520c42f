// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

/*
Package mail renders and sends the transactional emails of the shop.

A [Mailer] renders one of the fixed templates and hands the result to a
[Sender]: [SMTPSender] in production, [NoopSender] when SMTP is not configured.
Failures are returned to the caller, which decides whether they matter.
*/
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
)

// Message is a rendered email ready to be sent.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers a rendered [Message].
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Mailer renders templates and delivers them through a [Sender].
type Mailer struct {
	sender    Sender
	templates *template.Template
}

// NewMailer parses the built-in templates. It panics only on a template bug.
func NewMailer(sender Sender) *Mailer {
	return &Mailer{
		sender:    sender,
		templates: template.Must(template.New("mail").Parse(templateSource)),
	}
}

// SendActivationLink sends the welcome email with the activation button.
func (m *Mailer) SendActivationLink(ctx context.Context, to, link string) error {
	return m.send(ctx, to, "Activación de tu cuenta", "activation_link", map[string]string{
		"Link": link,
	}, fmt.Sprintf("Bienvenido a Los Reyes del Usado.\n\nPara activar tu cuenta, visitá: %s", link))
}

// SendActivationSuccess confirms an activated account.
func (m *Mailer) SendActivationSuccess(ctx context.Context, to, name string) error {
	return m.send(ctx, to, "Cuenta activada exitosamente", "activation_success", map[string]string{
		"Name": name,
	}, "Tu cuenta fue activada exitosamente.")
}

// SendRecoveryLink sends the password-reset button.
func (m *Mailer) SendRecoveryLink(ctx context.Context, to, link string) error {
	return m.send(ctx, to, "Recuperación de contraseña", "recovery_link", map[string]string{
		"Link": link,
	}, fmt.Sprintf("Recuperación de contraseña\n\nRestablecé tu contraseña aquí: %s", link))
}

// SendPasswordChanged notifies a completed password reset.
func (m *Mailer) SendPasswordChanged(ctx context.Context, to, name string) error {
	return m.send(ctx, to, "Tu contraseña fue actualizada", "password_changed", map[string]string{
		"Name": name,
	}, "Tu contraseña fue actualizada. Si no fuiste vos, contactanos de inmediato.")
}

func (m *Mailer) send(ctx context.Context, to, subject, name string, data any, text string) error {
	var body bytes.Buffer
	if err := m.templates.ExecuteTemplate(&body, name, data); err != nil {
		return fmt.Errorf("mail: render %s: %w", name, err)
	}

	return m.sender.Send(ctx, Message{
		To:      to,
		Subject: subject,
		HTML:    body.String(),
		Text:    text,
	})
}
