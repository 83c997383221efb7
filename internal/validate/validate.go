// Package validate holds the pure field-level checks applied to untrusted
// submissions before they reach the order or contact services. Every rule is
// evaluated; callers get the full list of failures, never the first one.
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"bakery-service/internal/transport"
)

// phonePattern is deliberately permissive: digits plus the separators people
// actually type into phone fields.
var phonePattern = regexp.MustCompile(`^[0-9\-+() ]+$`)

// FieldError is a single field-scoped validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the collected result of validating one submission.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation passed"
	}
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *Errors) add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Order normalizes sub in place (trimming string fields) and returns every
// rule violation. A nil return means the submission is acceptable.
func Order(sub *transport.OrderSubmission) Errors {
	var errs Errors

	if len(sub.Items) == 0 {
		errs.add("items", "Order must contain at least one item")
	}
	for i := range sub.Items {
		item := &sub.Items[i]
		item.Name = strings.TrimSpace(item.Name)
		item.NameEn = strings.TrimSpace(item.NameEn)

		field := fmt.Sprintf("items[%d]", i)
		if item.ProductID < 1 {
			errs.add(field+".productId", "Valid product ID is required")
		}
		if item.Name == "" {
			errs.add(field+".name", "Product name is required")
		}
		if item.Quantity < 1 {
			errs.add(field+".quantity", "Quantity must be at least 1")
		}
		if item.Price < 0 {
			errs.add(field+".price", "Valid price is required")
		}
	}

	c := &sub.CustomerInfo
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)
	c.ZipCode = strings.TrimSpace(c.ZipCode)
	c.Address = strings.TrimSpace(c.Address)
	c.DetailAddress = strings.TrimSpace(c.DetailAddress)
	c.DeliveryMessage = strings.TrimSpace(c.DeliveryMessage)

	if n := len([]rune(c.Name)); n < 2 || n > 50 {
		errs.add("customerInfo.name", "Name must be between 2 and 50 characters")
	}
	if c.Phone == "" || !phonePattern.MatchString(c.Phone) {
		errs.add("customerInfo.phone", "Valid phone number is required")
	}
	if c.ZipCode == "" {
		errs.add("customerInfo.zipCode", "Zip code is required")
	}
	if len([]rune(c.Address)) < 5 {
		errs.add("customerInfo.address", "Address must be at least 5 characters")
	}
	if c.DetailAddress == "" {
		errs.add("customerInfo.detailAddress", "Detailed address is required")
	}
	if len([]rune(c.DeliveryMessage)) > 200 {
		errs.add("customerInfo.deliveryMessage", "Delivery message must be less than 200 characters")
	}
	if c.Email != "" && !validEmail(c.Email) {
		errs.add("customerInfo.email", "Valid email is required")
	} else {
		c.Email = strings.ToLower(c.Email)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Contact normalizes sub in place and validates a contact-form submission.
func Contact(sub *transport.ContactSubmission) Errors {
	var errs Errors

	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.TrimSpace(sub.Email)
	sub.Phone = strings.TrimSpace(sub.Phone)
	sub.Message = strings.TrimSpace(sub.Message)

	if n := len([]rune(sub.Name)); n < 2 || n > 50 {
		errs.add("name", "Name must be between 2 and 50 characters")
	}
	if !validEmail(sub.Email) {
		errs.add("email", "Valid email is required")
	} else {
		sub.Email = strings.ToLower(sub.Email)
	}
	if sub.Phone != "" && !phonePattern.MatchString(sub.Phone) {
		errs.add("phone", "Valid phone number format")
	}
	if n := len([]rune(sub.Message)); n < 10 || n > 1000 {
		errs.add("message", "Message must be between 10 and 1000 characters")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validEmail accepts a bare address with a dotted domain. Display names and
// address lists are rejected.
func validEmail(addr string) bool {
	if addr == "" {
		return false
	}
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != addr {
		return false
	}
	at := strings.LastIndex(addr, "@")
	return at > 0 && strings.Contains(addr[at:], ".")
}
