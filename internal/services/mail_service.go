package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"time"
)

type IMailService interface {
	SendReviewInvitation(to, customerName, productName, reviewURL string) error
}

// SMTPConfig holds SMTP + branding config.
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	FromName   string
	UseSSL     bool // true for SMTPS 465, false for STARTTLS 587
	RequireTLS bool

	AppName     string
	DialTimeout time.Duration
}

type smtpMailService struct {
	cfg     SMTPConfig
	htmlTpl *template.Template
	textTpl *template.Template
}

func NewSMTPMailService(cfg SMTPConfig) (IMailService, error) {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 10 * time.Second
	}
	return &smtpMailService{
		cfg:     cfg,
		htmlTpl: template.Must(template.New("invitationHTML").Parse(invitationHTMLTemplate)),
		textTpl: template.Must(template.New("invitationText").Parse(invitationTextTemplate)),
	}, nil
}

type invitationData struct {
	CustomerName string
	ProductName  string
	ReviewURL    string
	AppName      string
	Year         int
}

const invitationHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>Share your experience</title>
  <style>
    body { margin: 0; padding: 0; background: #f8fafc; color: #0f172a; font-family: -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; }
    .container { max-width: 600px; margin: 40px auto; background: #ffffff; border-radius: 12px; overflow: hidden; border: 1px solid #e2e8f0; }
    .header { padding: 24px 32px; border-bottom: 1px solid #e2e8f0; font-weight: 700; font-size: 20px; color: #2563eb; }
    .hero { padding: 32px; }
    p { margin: 0 0 16px; line-height: 1.7; color: #475569; font-size: 16px; }
    .btn { display: inline-block; padding: 14px 28px; background: #2563eb; color: #ffffff !important; text-decoration: none; border-radius: 8px; font-weight: 600; }
    .muted { color: #94a3b8; font-size: 13px; }
    .footer { padding: 20px 32px; color: #64748b; font-size: 13px; text-align: center; border-top: 1px solid #e2e8f0; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">{{.AppName}}</div>
    <div class="hero">
      <p>Hi {{if .CustomerName}}{{.CustomerName}}{{else}}Valued Customer{{end}},</p>
      <p>Thank you for your recent purchase of {{if .ProductName}}{{.ProductName}}{{else}}our product{{end}}! We'd love to hear about your experience.</p>
      <p><a class="btn" href="{{.ReviewURL}}">Leave a review</a></p>
      <p class="muted">If the button doesn't work, copy and paste this link into your browser:<br>{{.ReviewURL}}</p>
      <p class="muted">This link will expire in 72 hours.</p>
    </div>
    <div class="footer">© {{.Year}} {{.AppName}}. All rights reserved.</div>
  </div>
</body>
</html>`

const invitationTextTemplate = `Hi {{if .CustomerName}}{{.CustomerName}}{{else}}Valued Customer{{end}},

Thank you for your recent purchase of {{if .ProductName}}{{.ProductName}}{{else}}our product{{end}}!
We'd love to hear about your experience.

Please open the link below to leave a quick review:
{{.ReviewURL}}

This link will expire in 72 hours.

Thank you,
The {{.AppName}} Team
`

func (s *smtpMailService) SendReviewInvitation(to, customerName, productName, reviewURL string) error {
	data := invitationData{
		CustomerName: customerName,
		ProductName:  productName,
		ReviewURL:    reviewURL,
		AppName:      s.cfg.AppName,
		Year:         time.Now().Year(),
	}

	var hb, tb bytes.Buffer
	if err := s.htmlTpl.Execute(&hb, data); err != nil {
		return err
	}
	if err := s.textTpl.Execute(&tb, data); err != nil {
		return err
	}

	subject := "Share your experience"
	if productName != "" {
		subject = fmt.Sprintf("Share your experience with %s", productName)
	}

	return s.send(to, subject, hb.String(), tb.String())
}

func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	fromHeader := s.cfg.From
	if s.cfg.FromName != "" {
		fromHeader = fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.From)
	}
	boundary := fmt.Sprintf("alt_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }

	write("From: %s\r\n", fromHeader)
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", subject)
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	write("\r\n")

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 7bit\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 7bit\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}

	var (
		conn net.Conn
		err  error
	)
	if s.cfg.UseSSL {
		conn, err = tls.DialWithDialer(&net.Dialer{Timeout: s.cfg.DialTimeout}, "tcp", addr, tlsCfg)
	} else {
		conn, err = (&net.Dialer{Timeout: s.cfg.DialTimeout}).Dial("tcp", addr)
	}
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if !s.cfg.UseSSL {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err = c.StartTLS(tlsCfg); err != nil {
				return err
			}
		} else if s.cfg.RequireTLS {
			return fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
		}
	}

	if err = c.Auth(auth); err != nil {
		return err
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg.Bytes()); err != nil {
		return err
	}
	return w.Close()
}
