// Package checkout validates checkout forms and turns a submitted quote into
// a confirmed order.
package checkout

import (
	"errors"
	"strings"
	"time"

	"github.com/Simplici0/partquote/internal/quote"
)

var (
	ErrMissingShipping   = errors.New("missing required shipping information")
	ErrMissingCreditCard = errors.New("missing credit card information")
	ErrMissingPONumber   = errors.New("missing purchase order number")
)

// PaymentMethod selects how an order is paid.
type PaymentMethod string

const (
	PaymentCreditCard    PaymentMethod = "credit_card"
	PaymentPurchaseOrder PaymentMethod = "purchase_order"
)

type ShippingInfo struct {
	FullName string `json:"fullName"`
	Company  string `json:"company,omitempty"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZIPCode  string `json:"zipCode"`
	Country  string `json:"country"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// BillingInfo is ignored in favour of the shipping block when SameAsShipping
// is set.
type BillingInfo struct {
	SameAsShipping bool   `json:"sameAsShipping"`
	FullName       string `json:"fullName,omitempty"`
	Company        string `json:"company,omitempty"`
	Address        string `json:"address,omitempty"`
	City           string `json:"city,omitempty"`
	State          string `json:"state,omitempty"`
	ZIPCode        string `json:"zipCode,omitempty"`
	Country        string `json:"country,omitempty"`
}

type CreditCardInfo struct {
	CardNumber     string `json:"cardNumber"`
	ExpiryDate     string `json:"expiryDate"`
	CVV            string `json:"cvv"`
	CardholderName string `json:"cardholderName"`
}

type PurchaseOrderInfo struct {
	PONumber string `json:"poNumber"`
	Notes    string `json:"notes,omitempty"`
}

// Form is the checkout request body.
type Form struct {
	Shipping      *ShippingInfo      `json:"shippingInfo"`
	Billing       BillingInfo        `json:"billingInfo"`
	CreditCard    *CreditCardInfo    `json:"creditCardInfo,omitempty"`
	PurchaseOrder *PurchaseOrderInfo `json:"purchaseOrderInfo,omitempty"`
	PaymentMethod PaymentMethod      `json:"paymentMethod"`
}

// Validate checks the fields required to confirm an order. Payment details
// are only required for the two known methods; any other method is recorded
// as given.
func Validate(f Form) error {
	if f.Shipping == nil || strings.TrimSpace(f.Shipping.FullName) == "" || strings.TrimSpace(f.Shipping.Address) == "" {
		return ErrMissingShipping
	}
	switch f.PaymentMethod {
	case PaymentCreditCard:
		if f.CreditCard == nil {
			return ErrMissingCreditCard
		}
	case PaymentPurchaseOrder:
		if f.PurchaseOrder == nil || strings.TrimSpace(f.PurchaseOrder.PONumber) == "" {
			return ErrMissingPONumber
		}
	}
	return nil
}

// BillingAddress resolves the billing block, copying shipping when the form
// says they are the same.
func (f Form) BillingAddress() BillingInfo {
	if !f.Billing.SameAsShipping || f.Shipping == nil {
		return f.Billing
	}
	s := f.Shipping
	return BillingInfo{
		SameAsShipping: true,
		FullName:       s.FullName,
		Company:        s.Company,
		Address:        s.Address,
		City:           s.City,
		State:          s.State,
		ZIPCode:        s.ZIPCode,
		Country:        s.Country,
	}
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const OrderConfirmed OrderStatus = "confirmed"

// Order is a confirmed checkout.
type Order struct {
	ID                string        `json:"orderId"`
	QuoteID           string        `json:"quoteId"`
	Status            OrderStatus   `json:"status"`
	PaymentMethod     PaymentMethod `json:"paymentMethod"`
	Total             float64       `json:"total"`
	EstimatedShipDate string        `json:"estimatedShipDate"`
	Shipping          ShippingInfo  `json:"shippingInfo"`
	Billing           BillingInfo   `json:"billingInfo"`
	PONumber          string        `json:"poNumber,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
}

// NewOrder confirms snap under id. The form must already be valid. Card
// details are not retained on the order.
func NewOrder(id string, snap quote.Snapshot, f Form, now time.Time) Order {
	o := Order{
		ID:                id,
		QuoteID:           snap.ID,
		Status:            OrderConfirmed,
		PaymentMethod:     f.PaymentMethod,
		Total:             snap.Total,
		EstimatedShipDate: snap.LatestShipDate(),
		Billing:           f.BillingAddress(),
		CreatedAt:         now,
	}
	if f.Shipping != nil {
		o.Shipping = *f.Shipping
	}
	if f.PurchaseOrder != nil {
		o.PONumber = f.PurchaseOrder.PONumber
	}
	return o
}
