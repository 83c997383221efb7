// Package mailer is the SMTP sink of the notification side-channel. It is
// deliberately best-effort: a misconfigured or unreachable relay must never
// surface to the request that triggered the mail.
package mailer

import (
	"fmt"
	"strings"

	"bakery-service/config"
	"bakery-service/internal/models"
	"bakery-service/internal/util"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Mailer struct {
	cfg     config.SMTPConfig
	enabled bool
	logger  *zap.Logger

	// send is swappable for tests.
	send func(m *gomail.Message) error
}

// New creates a mailer. When enabled is false every Send call is a logged
// no-op and returns nil.
func New(cfg config.SMTPConfig, enabled bool) *Mailer {
	m := &Mailer{
		cfg:     cfg,
		enabled: enabled,
		logger:  util.GetLogger(),
	}
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	m.send = func(msg *gomail.Message) error {
		return dialer.DialAndSend(msg)
	}
	if !enabled {
		m.logger.Warn("Email credentials not configured, notifications disabled")
	}
	return m
}

// Enabled reports whether SMTP credentials were configured.
func (m *Mailer) Enabled() bool {
	return m.enabled
}

// SendOrderConfirmation mails the admin recipient a summary of a freshly
// created order.
func (m *Mailer) SendOrderConfirmation(order *models.Order) error {
	if !m.enabled {
		m.logger.Info("Email service not configured, skipping order confirmation",
			zap.String("order_number", order.OrderNumber))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.cfg.AdminEmail)
	msg.SetHeader("Subject", fmt.Sprintf("[새재당] 주문 확인 - %s", order.OrderNumber))
	msg.SetBody("text/plain", OrderConfirmationBody(order))

	if err := m.send(msg); err != nil {
		return fmt.Errorf("failed to send order confirmation: %w", err)
	}

	m.logger.Info("Order confirmation email sent",
		zap.String("order_number", order.OrderNumber))
	return nil
}

// SendContactNotification mails the admin recipient a contact-form message,
// with Reply-To pointing back at the submitter.
func (m *Mailer) SendContactNotification(contact *models.ContactMessage) error {
	if !m.enabled {
		m.logger.Info("Email service not configured, skipping contact notification",
			zap.String("email", contact.Email))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.cfg.AdminEmail)
	msg.SetHeader("Reply-To", contact.Email)
	msg.SetHeader("Subject", fmt.Sprintf("[새재당] 새로운 문의 - %s", contact.Name))
	msg.SetBody("text/plain", ContactNotificationBody(contact))

	if err := m.send(msg); err != nil {
		return fmt.Errorf("failed to send contact notification: %w", err)
	}

	m.logger.Info("Contact notification email sent",
		zap.String("email", contact.Email))
	return nil
}

// OrderConfirmationBody renders the plain-text confirmation mail.
func OrderConfirmationBody(order *models.Order) string {
	var b strings.Builder

	b.WriteString("새재당 주문이 접수되었습니다.\n\n")
	fmt.Fprintf(&b, "주문번호: %s\n", order.OrderNumber)
	fmt.Fprintf(&b, "주문일시: %s\n\n", order.CreatedAt.Format("2006-01-02 15:04:05"))

	b.WriteString("=== 주문 상품 ===\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s (%s) x %d - ₩%s\n",
			item.Name, item.NameEn, item.Quantity, won(item.Price*int64(item.Quantity)))
	}

	fmt.Fprintf(&b, "\n소계: ₩%s\n", won(order.Subtotal))
	fmt.Fprintf(&b, "배송비: ₩%s\n", won(order.ShippingFee))
	fmt.Fprintf(&b, "총액: ₩%s\n\n", won(order.Total))

	b.WriteString("=== 배송 정보 ===\n")
	fmt.Fprintf(&b, "받는 분: %s\n", order.Customer.Name)
	fmt.Fprintf(&b, "연락처: %s\n", order.Customer.Phone)
	fmt.Fprintf(&b, "주소: [%s] %s %s\n",
		order.Customer.ZipCode, order.Customer.Address, order.Customer.DetailAddress)
	if order.Customer.DeliveryMessage != "" {
		fmt.Fprintf(&b, "배송 메시지: %s\n", order.Customer.DeliveryMessage)
	}

	b.WriteString("\n감사합니다.\n새재당\n")
	return b.String()
}

// ContactNotificationBody renders the plain-text contact mail.
func ContactNotificationBody(contact *models.ContactMessage) string {
	var b strings.Builder

	b.WriteString("새로운 문의가 접수되었습니다.\n\n")
	fmt.Fprintf(&b, "이름: %s\n", contact.Name)
	fmt.Fprintf(&b, "이메일: %s\n", contact.Email)
	if contact.Phone != "" {
		fmt.Fprintf(&b, "전화번호: %s\n", contact.Phone)
	}
	fmt.Fprintf(&b, "\n메시지:\n%s\n", contact.Message)
	return b.String()
}

// won formats an amount with thousands separators, matching the currency
// style of the storefront.
func won(amount int64) string {
	s := fmt.Sprintf("%d", amount)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}
