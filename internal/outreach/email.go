// Package outreach delivers generated messages over the supported channels:
// SMTP email and professional-network direct messages.
package outreach

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/jonathan/outreach-agent/internal/retry"
	"github.com/jonathan/outreach-agent/internal/types"
)

// SendError reports a failed delivery attempt on one channel.
type SendError struct {
	Channel types.Channel
	Message string
	Cause   error
}

func (e *SendError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s send failed: %s: %v", e.Channel, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s send failed: %s", e.Channel, e.Message)
}

func (e *SendError) Unwrap() error {
	return e.Cause
}

// EmailSender delivers outreach email over SMTP with implicit TLS.
type EmailSender struct {
	host     string
	port     int
	address  string
	password string

	// dial is swappable for tests.
	dial func(network, addr string, config *tls.Config) (net.Conn, error)
}

// NewEmailSender creates an SMTP sender. The account address doubles as the
// envelope sender.
func NewEmailSender(host string, port int, address, password string) *EmailSender {
	return &EmailSender{
		host:     host,
		port:     port,
		address:  address,
		password: password,
		dial: func(network, addr string, config *tls.Config) (net.Conn, error) {
			return tls.Dial(network, addr, config)
		},
	}
}

// Send delivers msg to the recipient address. Connection and protocol
// failures are transient; authentication rejections are not.
func (s *EmailSender) Send(ctx context.Context, to string, msg *types.OutreachMessage) error {
	if to == "" {
		return &SendError{Channel: types.ChannelEmail, Message: "no recipient address"}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	conn, err := s.dial("tcp", addr, &tls.Config{ServerName: s.host, MinVersion: tls.VersionTLS12})
	if err != nil {
		return retry.Transient(&SendError{Channel: types.ChannelEmail, Message: "connection failed", Cause: err})
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		_ = conn.Close()
		return retry.Transient(&SendError{Channel: types.ChannelEmail, Message: "handshake failed", Cause: err})
	}
	defer func() { _ = client.Close() }()

	auth := smtp.PlainAuth("", s.address, s.password, s.host)
	if err := client.Auth(auth); err != nil {
		return &SendError{Channel: types.ChannelEmail, Message: "authentication rejected", Cause: err}
	}

	if err := client.Mail(s.address); err != nil {
		return retry.Transient(&SendError{Channel: types.ChannelEmail, Message: "sender rejected", Cause: err})
	}
	if err := client.Rcpt(to); err != nil {
		return &SendError{Channel: types.ChannelEmail, Message: "recipient rejected", Cause: err}
	}

	w, err := client.Data()
	if err != nil {
		return retry.Transient(&SendError{Channel: types.ChannelEmail, Message: "data command failed", Cause: err})
	}
	if _, err := w.Write([]byte(buildMIME(s.address, to, msg))); err != nil {
		return retry.Transient(&SendError{Channel: types.ChannelEmail, Message: "write failed", Cause: err})
	}
	if err := w.Close(); err != nil {
		return retry.Transient(&SendError{Channel: types.ChannelEmail, Message: "delivery rejected", Cause: err})
	}

	return client.Quit()
}

// buildMIME assembles the full RFC 5322 payload from the six message parts.
func buildMIME(from, to string, msg *types.OutreachMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(FormatBody(msg))
	return b.String()
}

// FormatBody renders the six message parts as the plain-text layout used on
// both channels: each part on its own paragraph, in reading order.
func FormatBody(msg *types.OutreachMessage) string {
	parts := []string{msg.Greeting, msg.Opening, msg.Body, msg.Closing, msg.Signature}
	nonEmpty := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, strings.TrimSpace(p))
		}
	}
	return strings.Join(nonEmpty, "\n\n") + "\n"
}
