// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SMTPConfig describes the outgoing mail server.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// Secure is "ssl" for implicit TLS; anything else means STARTTLS.
	Secure   string
	From     string
	FromName string
}

// SMTPSender delivers messages over SMTP with PLAIN auth.
type SMTPSender struct {
	cfg     SMTPConfig
	timeout time.Duration
}

// NewSMTPSender returns a sender. From falls back to Username.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	if cfg.Port == 0 {
		cfg.Port = 587
		if strings.EqualFold(cfg.Secure, "ssl") {
			cfg.Port = 465
		}
	}
	return &SMTPSender{cfg: cfg, timeout: 15 * time.Second}
}

// Send implements [Sender].
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	payload, err := buildMIME(s.cfg.From, s.cfg.FromName, msg, time.Now())
	if err != nil {
		return err
	}

	address := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	dialer := &net.Dialer{Timeout: s.timeout}
	tlsConfig := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}

	var conn net.Conn
	if strings.EqualFold(s.cfg.Secure, "ssl") {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: tlsConfig}).DialContext(ctx, "tcp", address)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", address)
	}
	if err != nil {
		return fmt.Errorf("mail: dial %s: %w", address, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(s.timeout))
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("mail: handshake: %w", err)
	}
	defer client.Close()

	if !strings.EqualFold(s.cfg.Secure, "ssl") {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(tlsConfig); err != nil {
				return fmt.Errorf("mail: starttls: %w", err)
			}
		}
	}

	if s.cfg.Username != "" {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("mail: auth: %w", err)
		}
	}

	if err := client.Mail(s.cfg.From); err != nil {
		return fmt.Errorf("mail: MAIL FROM: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("mail: RCPT TO: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("mail: DATA: %w", err)
	}
	if _, err := writer.Write(payload); err != nil {
		_ = writer.Close()
		return fmt.Errorf("mail: write body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("mail: close body: %w", err)
	}

	return client.Quit()
}

// buildMIME renders a multipart/alternative message with text and HTML parts.
func buildMIME(from, fromName string, msg Message, now time.Time) ([]byte, error) {
	var buffer bytes.Buffer
	parts := multipart.NewWriter(&buffer)

	sender := from
	if fromName != "" {
		sender = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", fromName), from)
	}

	domain := "localhost"
	if at := strings.LastIndex(from, "@"); at >= 0 {
		domain = from[at+1:]
	}

	headers := []string{
		"From: " + sender,
		"To: " + msg.To,
		"Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject),
		"Date: " + now.Format(time.RFC1123Z),
		fmt.Sprintf("Message-ID: <%s@%s>", uuid.NewString(), domain),
		"MIME-Version: 1.0",
		fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q", parts.Boundary()),
	}
	var out bytes.Buffer
	out.WriteString(strings.Join(headers, "\r\n"))
	out.WriteString("\r\n\r\n")

	for _, part := range []struct {
		contentType string
		body        string
	}{
		{"text/plain; charset=UTF-8", msg.Text},
		{"text/html; charset=UTF-8", msg.HTML},
	} {
		writer, err := parts.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {part.contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return nil, fmt.Errorf("mail: mime part: %w", err)
		}
		encoder := quotedprintable.NewWriter(writer)
		if _, err := encoder.Write([]byte(part.body)); err != nil {
			return nil, fmt.Errorf("mail: encode part: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return nil, fmt.Errorf("mail: encode part: %w", err)
		}
	}
	if err := parts.Close(); err != nil {
		return nil, fmt.Errorf("mail: mime close: %w", err)
	}

	out.Write(buffer.Bytes())
	return out.Bytes(), nil
}

// NoopSender logs instead of sending. Used when SMTP is not configured.
type NoopSender struct {
	Logger *slog.Logger
}

// Send implements [Sender].
func (s NoopSender) Send(ctx context.Context, msg Message) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "email_skipped",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)
	return nil
}
