package domain

import "time"

type CheckoutStep string

const (
	StepShipping CheckoutStep = "shipping"
	StepPayment  CheckoutStep = "payment"
	StepReview   CheckoutStep = "review"
)

func (s CheckoutStep) String() string {
	return string(s)
}

type PaymentMethod string

const (
	PaymentMethodCard           PaymentMethod = "card"
	PaymentMethodPayPal         PaymentMethod = "paypal"
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// ShippingInfo is persisted inside the order document, so it carries bson
// tags alongside the json ones.
type ShippingInfo struct {
	FirstName string `bson:"first_name" json:"first_name"`
	LastName  string `bson:"last_name" json:"last_name"`
	Email     string `bson:"email" json:"email"`
	Phone     string `bson:"phone" json:"phone"`
	Company   string `bson:"company,omitempty" json:"company,omitempty"`
	Street    string `bson:"street" json:"street"`
	Apartment string `bson:"apartment,omitempty" json:"apartment,omitempty"`
	City      string `bson:"city" json:"city"`
	State     string `bson:"state" json:"state"`
	ZipCode   string `bson:"zip_code" json:"zip_code"`
	Country   string `bson:"country" json:"country"`
}

// PaymentInfo never leaves the process; only the method name is recorded on
// the order document.
type PaymentInfo struct {
	Method         PaymentMethod `json:"method"`
	CardNumber     string        `json:"card_number,omitempty"`
	ExpiryDate     string        `json:"expiry_date,omitempty"`
	CVV            string        `json:"cvv,omitempty"`
	CardholderName string        `json:"cardholder_name,omitempty"`
	AgreeTerms     bool          `json:"agree_terms"`
}

// CheckoutSession is transient, process-local state. The current step is
// always derivable from which validated records are present, never trusted
// from a stored pointer alone.
type CheckoutSession struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Step      CheckoutStep  `json:"step"`
	Shipping  *ShippingInfo `json:"shipping_info,omitempty"`
	Payment   *PaymentInfo  `json:"payment_info,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
