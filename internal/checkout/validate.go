package checkout

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidationError carries field-level messages back to the offending step.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

// ValidateShipping checks that the shipping record is complete and the email
// well-formed. Company and apartment are optional.
func ValidateShipping(info domain.ShippingInfo) map[string]string {
	errs := make(map[string]string)

	required := map[string]string{
		"first_name": info.FirstName,
		"last_name":  info.LastName,
		"email":      info.Email,
		"phone":      info.Phone,
		"street":     info.Street,
		"city":       info.City,
		"state":      info.State,
		"zip_code":   info.ZipCode,
		"country":    info.Country,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			errs[field] = "this field is required"
		}
	}

	if _, ok := errs["email"]; !ok && !emailPattern.MatchString(strings.TrimSpace(info.Email)) {
		errs["email"] = "please enter a valid email address"
	}

	return errs
}

// ValidatePayment checks terms acceptance and, for card payments, that every
// card field is present. Card data is held in the session only for the
// duration of checkout and never persisted.
func ValidatePayment(info domain.PaymentInfo) map[string]string {
	errs := make(map[string]string)

	if !info.AgreeTerms {
		errs["agree_terms"] = "you must agree to the terms and conditions"
	}

	switch info.Method {
	case domain.PaymentMethodCard:
		if strings.TrimSpace(info.CardNumber) == "" {
			errs["card_number"] = "card number is required"
		}
		if strings.TrimSpace(info.ExpiryDate) == "" {
			errs["expiry_date"] = "expiry date is required"
		}
		if strings.TrimSpace(info.CVV) == "" {
			errs["cvv"] = "cvv is required"
		}
		if strings.TrimSpace(info.CardholderName) == "" {
			errs["cardholder_name"] = "cardholder name is required"
		}
	case domain.PaymentMethodPayPal, domain.PaymentMethodCashOnDelivery:
		// no extra fields
	default:
		errs["method"] = "unknown payment method"
	}

	return errs
}
