package notify

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/wneessen/go-mail"
)

const defaultSendTimeout = 30 * time.Second

// Mailer delivers a rendered notification.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// Timeout bounds one delivery when ctx carries no earlier deadline.
	Timeout time.Duration
	// RequireTLS refuses servers that do not offer STARTTLS.
	RequireTLS bool
}

type SMTPMailer struct {
	host    string
	port    int
	timeout time.Duration
	opts    []mail.Option
}

// NewSMTPMailer uses PLAIN auth when a username is configured. STARTTLS is
// used whenever the server offers it.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	policy := mail.TLSOpportunistic
	if cfg.RequireTLS {
		policy = mail.TLSMandatory
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(policy),
		mail.WithTimeout(timeout),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	return &SMTPMailer{
		host:    cfg.Host,
		port:    cfg.Port,
		timeout: timeout,
		opts:    opts,
	}
}

func (m *SMTPMailer) addr() string {
	return net.JoinHostPort(m.host, strconv.Itoa(m.port))
}

// Send delivers email in one SMTP session. The session is abandoned as soon
// as ctx is done, including while waiting for the server greeting.
func (m *SMTPMailer) Send(ctx context.Context, email Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	msg, err := email.Msg()
	if err != nil {
		return fmt.Errorf("failed to build email: %w", err)
	}

	opts := append([]mail.Option{mail.WithDialContextFunc(contextDialer(ctx))}, m.opts...)
	client, err := mail.NewClient(m.host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		if ctxErr := sessionErr(ctx); ctxErr != nil {
			return fmt.Errorf("failed to send email via %s: %w", m.addr(), ctxErr)
		}
		return fmt.Errorf("failed to send email via %s: %w", m.addr(), err)
	}
	return nil
}

// sessionErr reports why ctx ended the session. The connection deadline can
// fire a moment before the context timer does.
func sessionErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok && !time.Now().Before(deadline) {
		return context.DeadlineExceeded
	}
	return nil
}

// contextDialer ties every read and write on the SMTP connection to ctx. The
// client only bounds the dial itself, so a server that accepts the connection
// and then stays silent would otherwise block forever.
func contextDialer(ctx context.Context) mail.DialContextFunc {
	return func(dialCtx context.Context, network, address string) (net.Conn, error) {
		var dialer net.Dialer
		conn, err := dialer.DialContext(dialCtx, network, address)
		if err != nil {
			return nil, err
		}
		if deadline, ok := ctx.Deadline(); ok {
			_ = conn.SetDeadline(deadline)
		}
		stop := context.AfterFunc(ctx, func() {
			_ = conn.SetDeadline(time.Now())
		})
		return &sessionConn{Conn: conn, stop: stop}, nil
	}
}

type sessionConn struct {
	net.Conn
	stop func() bool
}

func (c *sessionConn) Close() error {
	c.stop()
	return c.Conn.Close()
}
