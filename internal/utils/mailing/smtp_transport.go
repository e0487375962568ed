package mailing

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/smtp"
	"strconv"

	"gopkg.in/gomail.v2"
)

const implicitTLSPort = 465

// smtpTransport speaks SMTP over a connection bound to the caller's context.
// gomail.Dialer cannot take a deadline, so the conversation is driven here and
// gomail only renders the messages.
type smtpTransport struct {
	host     string
	port     int
	username string
	password string
}

func (t *smtpTransport) Send(ctx context.Context, messages ...*gomail.Message) error {
	var d net.Dialer
	raw, err := d.DialContext(ctx, "tcp", net.JoinHostPort(t.host, strconv.Itoa(t.port)))
	if err != nil {
		return err
	}
	defer raw.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := raw.SetDeadline(deadline); err != nil {
			return err
		}
	}
	stop := context.AfterFunc(ctx, func() { raw.Close() })
	defer stop()

	tlsConfig := &tls.Config{ServerName: t.host}
	conn := raw
	if t.port == implicitTLSPort {
		conn = tls.Client(raw, tlsConfig)
	}

	c, err := smtp.NewClient(conn, t.host)
	if err != nil {
		return err
	}
	defer c.Close()

	if t.port != implicitTLSPort {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(tlsConfig); err != nil {
				return err
			}
		}
	}
	if t.username != "" {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(smtp.PlainAuth("", t.username, t.password, t.host)); err != nil {
				return err
			}
		}
	}

	send := gomail.SendFunc(func(from string, to []string, msg io.WriterTo) error {
		if err := c.Mail(from); err != nil {
			return err
		}
		for _, addr := range to {
			if err := c.Rcpt(addr); err != nil {
				return err
			}
		}
		w, err := c.Data()
		if err != nil {
			return err
		}
		if _, err := msg.WriteTo(w); err != nil {
			w.Close()
			return err
		}
		return w.Close()
	})
	if err := gomail.Send(send, messages...); err != nil {
		return err
	}
	return c.Quit()
}
