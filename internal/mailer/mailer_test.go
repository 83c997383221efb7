package mailer

import (
	"errors"
	"testing"
	"time"

	"bakery-service/config"
	"bakery-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func sampleOrder() *models.Order {
	return &models.Order{
		OrderNumber: "ORD-20250301-8K3QZ1",
		Items: models.OrderItems{
			{ProductID: 1, Name: "단팥빵", NameEn: "Red Bean Bread", Quantity: 2, Price: 3500},
			{ProductID: 2, Name: "크림빵", NameEn: "Cream Bread", Quantity: 1, Price: 4000},
		},
		Customer: models.CustomerDoc{
			Name:            "김민수",
			Phone:           "010-1234-5678",
			ZipCode:         "06236",
			Address:         "서울특별시 강남구 테헤란로 123",
			DetailAddress:   "101동 202호",
			DeliveryMessage: "문 앞에 놓아주세요",
		},
		Subtotal:    11000,
		ShippingFee: 3000,
		Total:       14000,
		Status:      models.OrderStatusPending,
		CreatedAt:   time.Date(2025, 3, 1, 14, 30, 0, 0, time.UTC),
	}
}

func TestDisabledMailerIsNoOp(t *testing.T) {
	m := New(config.SMTPConfig{}, false)

	assert.False(t, m.Enabled())
	assert.NoError(t, m.SendOrderConfirmation(sampleOrder()))
	assert.NoError(t, m.SendContactNotification(&models.ContactMessage{
		Name:    "김민수",
		Email:   "minsu@example.com",
		Message: "문의드립니다",
	}))
}

func TestSendOrderConfirmationHeaders(t *testing.T) {
	m := New(config.SMTPConfig{
		From:       "SaeJaeDang <noreply@saejaedang.com>",
		AdminEmail: "admin@saejaedang.com",
	}, true)

	var sent *gomail.Message
	m.send = func(msg *gomail.Message) error {
		sent = msg
		return nil
	}

	require.NoError(t, m.SendOrderConfirmation(sampleOrder()))
	require.NotNil(t, sent)
	assert.Equal(t, []string{"admin@saejaedang.com"}, sent.GetHeader("To"))
	assert.Contains(t, sent.GetHeader("Subject")[0], "ORD-20250301-8K3QZ1")
}

func TestSendContactNotificationReplyTo(t *testing.T) {
	m := New(config.SMTPConfig{
		From:       "SaeJaeDang <noreply@saejaedang.com>",
		AdminEmail: "admin@saejaedang.com",
	}, true)

	var sent *gomail.Message
	m.send = func(msg *gomail.Message) error {
		sent = msg
		return nil
	}

	require.NoError(t, m.SendContactNotification(&models.ContactMessage{
		Name:    "김민수",
		Email:   "minsu@example.com",
		Message: "한과 세트 대량 주문이 가능한가요?",
	}))
	require.NotNil(t, sent)
	assert.Equal(t, []string{"minsu@example.com"}, sent.GetHeader("Reply-To"))
}

func TestSendErrorsAreWrapped(t *testing.T) {
	m := New(config.SMTPConfig{AdminEmail: "admin@saejaedang.com"}, true)
	m.send = func(msg *gomail.Message) error {
		return errors.New("relay refused")
	}

	err := m.SendOrderConfirmation(sampleOrder())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "relay refused")
}

func TestOrderConfirmationBody(t *testing.T) {
	body := OrderConfirmationBody(sampleOrder())

	assert.Contains(t, body, "주문번호: ORD-20250301-8K3QZ1")
	assert.Contains(t, body, "단팥빵 (Red Bean Bread) x 2 - ₩7,000")
	assert.Contains(t, body, "크림빵 (Cream Bread) x 1 - ₩4,000")
	assert.Contains(t, body, "소계: ₩11,000")
	assert.Contains(t, body, "배송비: ₩3,000")
	assert.Contains(t, body, "총액: ₩14,000")
	assert.Contains(t, body, "받는 분: 김민수")
	assert.Contains(t, body, "[06236] 서울특별시 강남구 테헤란로 123 101동 202호")
	assert.Contains(t, body, "배송 메시지: 문 앞에 놓아주세요")
}

func TestOrderConfirmationBodyOmitsEmptyDeliveryMessage(t *testing.T) {
	order := sampleOrder()
	order.Customer.DeliveryMessage = ""

	assert.NotContains(t, OrderConfirmationBody(order), "배송 메시지")
}

func TestContactNotificationBody(t *testing.T) {
	body := ContactNotificationBody(&models.ContactMessage{
		Name:    "김민수",
		Email:   "minsu@example.com",
		Phone:   "010-1234-5678",
		Message: "한과 세트 대량 주문이 가능한가요?",
	})

	assert.Contains(t, body, "이름: 김민수")
	assert.Contains(t, body, "이메일: minsu@example.com")
	assert.Contains(t, body, "전화번호: 010-1234-5678")
	assert.Contains(t, body, "한과 세트 대량 주문이 가능한가요?")
}

func TestWonFormatting(t *testing.T) {
	assert.Equal(t, "0", won(0))
	assert.Equal(t, "950", won(950))
	assert.Equal(t, "3,000", won(3000))
	assert.Equal(t, "14,000", won(14000))
	assert.Equal(t, "1,234,567", won(1234567))
}
