package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"time"

	"github.com/fileflow-dev/fileflow/internal/config"
	"github.com/fileflow-dev/fileflow/internal/logger"
)

// SMTPMailer delivers messages over SMTP with implicit TLS on port 465 and
// STARTTLS on everything else.
type SMTPMailer struct {
	cfg  *config.Mailer
	auth smtp.Auth
}

func NewSMTP(cfg *config.Mailer) *SMTPMailer {
	auth := smtp.PlainAuth("", cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Server)
	return &SMTPMailer{
		cfg:  cfg,
		auth: auth,
	}
}

func (m *SMTPMailer) Name() string {
	return "smtp"
}

func (m *SMTPMailer) Send(ctx context.Context, msg *Message) error {
	raw, err := buildRawMessage(m.from(), msg)
	if err != nil {
		return err
	}
	address := fmt.Sprintf("%s:%d", m.cfg.SMTP.Server, m.cfg.SMTP.Port)

	// Port 465 = implicit TLS, otherwise STARTTLS
	if m.cfg.SMTP.Port == 465 {
		return m.sendImplicitTLS(ctx, address, msg.To, raw)
	}
	return m.sendSTARTTLS(ctx, address, msg.To, raw)
}

// from returns the header sender, falling back to the auth username.
func (m *SMTPMailer) from() string {
	if m.cfg.From != "" {
		return m.cfg.From
	}
	return m.cfg.SMTP.Username
}

func (m *SMTPMailer) timeout() time.Duration {
	timeout := time.Duration(m.cfg.SMTP.Timeout) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return timeout
}

// sendImplicitTLS sends the message over a connection that is TLS from the start (port 465).
func (m *SMTPMailer) sendImplicitTLS(ctx context.Context, address string, recipients []string, msg []byte) error {
	tlsConfig := &tls.Config{ServerName: m.cfg.SMTP.Server}

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: m.timeout()},
		Config:    tlsConfig,
	}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		logger.Log.Error("failed to connect to SMTP server (implicit TLS)", "address", address, "error", err)
		return err
	}
	defer conn.Close()

	return m.sendOverConn(conn, recipients, msg)
}

// sendSTARTTLS sends the message by upgrading a plain connection to TLS (port 587).
func (m *SMTPMailer) sendSTARTTLS(ctx context.Context, address string, recipients []string, msg []byte) error {
	dialer := &net.Dialer{Timeout: m.timeout()}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		logger.Log.Error("failed to connect to SMTP server", "address", address, "error", err)
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.cfg.SMTP.Server)
	if err != nil {
		logger.Log.Error("failed to create SMTP client", "error", err)
		return err
	}
	defer client.Close()

	tlsConfig := &tls.Config{ServerName: m.cfg.SMTP.Server}
	if err = client.StartTLS(tlsConfig); err != nil {
		logger.Log.Error("failed to start TLS", "error", err)
		return err
	}

	return m.sendViaClient(client, recipients, msg)
}

// sendOverConn creates an SMTP client from an existing connection and sends the message.
func (m *SMTPMailer) sendOverConn(conn net.Conn, recipients []string, msg []byte) error {
	client, err := smtp.NewClient(conn, m.cfg.SMTP.Server)
	if err != nil {
		logger.Log.Error("failed to create SMTP client", "error", err)
		return err
	}
	defer client.Close()

	return m.sendViaClient(client, recipients, msg)
}

// sendViaClient performs auth, sets sender and recipients, and sends the message body.
func (m *SMTPMailer) sendViaClient(client *smtp.Client, recipients []string, msg []byte) error {
	if err := client.Auth(m.auth); err != nil {
		logger.Log.Error("SMTP authentication failed", "error", err)
		return err
	}

	if err := client.Mail(m.cfg.SMTP.Username); err != nil {
		logger.Log.Error("failed to set sender", "error", err)
		return err
	}

	for _, recipient := range recipients {
		if err := client.Rcpt(recipient); err != nil {
			logger.Log.Error("failed to set recipient", "recipient", recipient, "error", err)
			return err
		}
	}

	writer, err := client.Data()
	if err != nil {
		logger.Log.Error("failed to open data writer", "error", err)
		return err
	}

	if _, err := writer.Write(msg); err != nil {
		logger.Log.Error("failed to write message", "error", err)
		return err
	}

	if err := writer.Close(); err != nil {
		logger.Log.Error("failed to close data writer", "error", err)
		return err
	}

	return client.Quit()
}
