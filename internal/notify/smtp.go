package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/bookwise/internal/models"
)

type SMTPConfig struct {
	Server   string
	Port     int
	Username string
	Password string

	// OrdersTo receives order notifications; ApproverTo receives admin
	// registrations awaiting verification.
	OrdersTo   string
	ApproverTo string
	Currency   string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type SMTPNotifier struct {
	cfg  SMTPConfig
	log  *logrus.Logger
	send sendFunc
}

func NewSMTPNotifier(cfg SMTPConfig, log *logrus.Logger) *SMTPNotifier {
	if log == nil {
		log = logrus.New()
	}
	return &SMTPNotifier{cfg: cfg, log: log, send: smtp.SendMail}
}

func (n *SMTPNotifier) Enabled() bool {
	return n.cfg.Username != "" && n.cfg.Password != "" && n.cfg.Server != ""
}

func (n *SMTPNotifier) OrderPlaced(ctx context.Context, roomID string, o models.Order) error {
	title := o.BookTitle
	if title == "" {
		title = "Unknown Book"
	}
	return n.deliver(ctx, n.cfg.OrdersTo, "New Book Order - "+title, orderBody(roomID, o, n.cfg.Currency))
}

func (n *SMTPNotifier) AdminVerification(ctx context.Context, a models.Admin, verifyURL string) error {
	if !n.Enabled() {
		n.log.WithFields(logrus.Fields{
			"admin_id":   a.ID,
			"verify_url": verifyURL,
		}).Warn("smtp not configured; verification email not sent")
		return nil
	}

	body := fmt.Sprintf(`A new admin account is waiting for approval.

Name:       %s
Email:      %s
Department: %s
Registered: %s

Approve the account here:
%s

The link expires in 24 hours.
`, a.Name, a.Email, orNA(a.Department), a.CreatedAt.UTC().Format(time.RFC1123), verifyURL)

	return n.deliver(ctx, n.cfg.ApproverTo, "Admin Account Verification Required - "+a.Name, body)
}

func (n *SMTPNotifier) AdminApproved(ctx context.Context, a models.Admin) error {
	body := fmt.Sprintf(`Hello %s,

Your BookWise admin account has been approved.

Employee ID: %s

Sign in to the admin dashboard with your employee ID and password.
`, a.Name, a.Employee())

	return n.deliver(ctx, a.Email, "Your BookWise Admin Account is Active", body)
}

func (n *SMTPNotifier) deliver(ctx context.Context, to, subject, body string) error {
	log := n.log.WithFields(logrus.Fields{"to": to, "subject": subject})
	if !n.Enabled() {
		log.Warn("smtp not configured; skipping email")
		return nil
	}
	if to == "" {
		log.Warn("no recipient configured; skipping email")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := net.JoinHostPort(n.cfg.Server, strconv.Itoa(n.cfg.Port))
	auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Server)
	msg := compose(n.cfg.Username, to, subject, body)

	if err := n.send(addr, auth, n.cfg.Username, []string{to}, msg); err != nil {
		log.WithError(err).Error("email delivery failed")
		return err
	}
	log.Info("email sent")
	return nil
}

func compose(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}

func orderBody(roomID string, o models.Order, currency string) string {
	qty, total := "N/A", "N/A"
	if o.Quantity != nil {
		qty = strconv.Itoa(*o.Quantity)
	}
	if o.TotalAmount != nil {
		total = fmt.Sprintf("%.2f %s", *o.TotalAmount, currency)
	}
	date := o.OrderDate
	if date.IsZero() {
		date = time.Now()
	}

	return fmt.Sprintf(`New Book Order Received!

Order Details:
- Order ID: %s
- Customer ID: %s
- Customer Name: %s
- Book Title: %s
- Author: %s
- Genre: %s
- Quantity: %s
- Unit Price: %.2f %s
- Total Amount: %s
- Payment Method: %s
- Delivery Option: %s
- Delivery Address: %s
- Special Requests: %s
- Order Status: %s
- Order Date: %s
- Room ID: %s

Please process this order promptly.

BookWise Voice Desk
`,
		orNA(o.OrderID), orNA(o.CustomerID), orNA(o.CustomerName),
		orNA(o.BookTitle), orNA(o.Author), orNA(o.Genre),
		qty, o.UnitPrice, currency, total,
		orNA(o.PaymentMethod), orNA(string(o.DeliveryOption)), orNA(o.DeliveryAddress),
		orNA(o.SpecialRequests), o.OrderStatus, date.UTC().Format(time.RFC3339), roomID,
	)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
