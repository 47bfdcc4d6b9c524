package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/domain"
	"github.com/google/uuid"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrCartAbandoned   = errors.New("cart emptied during checkout")
	ErrShippingMissing = errors.New("shipping information required")
	ErrPaymentMissing  = errors.New("payment information required")
)

// CommitError rejects a commit for a specific, user-facing reason such as a
// product going out of stock between add-to-cart and confirmation.
type CommitError struct {
	Reason string
}

func (e *CommitError) Error() string {
	return e.Reason
}

// CartReader is the live-cart view the machine consumes. Reads always hit
// the store; a cached snapshot could be stale across steps.
type CartReader interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
}

// ProductFetcher re-validates stock and availability at the commit boundary.
type ProductFetcher interface {
	FetchProduct(ctx context.Context, id string) (*domain.Product, error)
}

// Machine drives the shipping → payment → review → completed checkout flow.
// The current step is reconstructed from which validated records the session
// holds, so a half-finished session can never resume past its data.
type Machine struct {
	sessions    *SessionStore
	cart        CartReader
	products    ProductFetcher
	committer   *Committer
	taxRate     float64
	shippingFee float64
}

func NewMachine(sessions *SessionStore, cart CartReader, products ProductFetcher, committer *Committer, taxRate, shippingFee float64) *Machine {
	return &Machine{
		sessions:    sessions,
		cart:        cart,
		products:    products,
		committer:   committer,
		taxRate:     taxRate,
		shippingFee: shippingFee,
	}
}

// Begin enters (or re-enters) checkout. An empty cart aborts checkout and
// drops any leftover session, since there is nothing to check out.
func (m *Machine) Begin(ctx context.Context, userID string) (*domain.CheckoutSession, error) {
	cart, err := m.cart.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}
	if cart.IsEmpty() {
		m.sessions.Delete(userID)
		return nil, ErrEmptyCart
	}

	now := time.Now()
	session, ok := m.sessions.Get(userID)
	if !ok {
		session = domain.CheckoutSession{
			ID:        uuid.NewString(),
			UserID:    userID,
			CreatedAt: now,
		}
	}
	session.Step = stepFor(session)
	session.UpdatedAt = now
	m.sessions.Put(session)

	return &session, nil
}

// stepFor derives the step from the validated data present on the session.
func stepFor(s domain.CheckoutSession) domain.CheckoutStep {
	switch {
	case s.Shipping != nil && s.Payment != nil:
		return domain.StepReview
	case s.Shipping != nil:
		return domain.StepPayment
	default:
		return domain.StepShipping
	}
}

// SubmitShipping validates and records the shipping step. On validation
// failure the machine stays in shipping and returns the field errors.
func (m *Machine) SubmitShipping(ctx context.Context, userID string, info domain.ShippingInfo) (*domain.CheckoutSession, error) {
	session, err := m.Begin(ctx, userID)
	if err != nil {
		return nil, err
	}

	if fieldErrs := ValidateShipping(info); len(fieldErrs) > 0 {
		return session, &ValidationError{Fields: fieldErrs}
	}

	session.Shipping = &info
	session.Step = stepFor(*session)
	session.UpdatedAt = time.Now()
	m.sessions.Put(*session)

	return session, nil
}

// SubmitPayment validates and records the payment step. It requires a
// validated shipping record first.
func (m *Machine) SubmitPayment(ctx context.Context, userID string, info domain.PaymentInfo) (*domain.CheckoutSession, error) {
	session, err := m.Begin(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.Shipping == nil {
		return session, ErrShippingMissing
	}

	if fieldErrs := ValidatePayment(info); len(fieldErrs) > 0 {
		return session, &ValidationError{Fields: fieldErrs}
	}

	session.Payment = &info
	session.Step = stepFor(*session)
	session.UpdatedAt = time.Now()
	m.sessions.Put(*session)

	return session, nil
}

// Confirm performs the review → completed transition. The live cart is
// re-read at commit time because another tab may have changed it since the
// review step was rendered; totals are recomputed from that read, and stock
// is re-validated per item. Only a successful order persist clears the cart
// and destroys the session — a failed persist leaves both intact for retry.
func (m *Machine) Confirm(ctx context.Context, userID string) (string, error) {
	session, ok := m.sessions.Get(userID)
	if !ok || session.Shipping == nil {
		return "", ErrShippingMissing
	}
	if session.Payment == nil {
		return "", ErrPaymentMissing
	}

	cart, err := m.cart.Get(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("read cart: %w", err)
	}
	if cart.IsEmpty() {
		m.sessions.Delete(userID)
		return "", ErrCartAbandoned
	}

	if err := m.validateStock(ctx, cart.Items); err != nil {
		return "", err
	}

	totals := domain.CalculateTotals(cart.Items, m.taxRate, m.shippingFee)

	orderID, err := m.committer.PlaceOrder(ctx, userID, cart.Items, totals, *session.Shipping, *session.Payment)
	if err != nil {
		return "", err
	}

	m.sessions.Delete(userID)
	return orderID, nil
}

func (m *Machine) validateStock(ctx context.Context, items []domain.CartItem) error {
	for _, item := range items {
		product, err := m.products.FetchProduct(ctx, item.ProductID)
		if err != nil {
			return fmt.Errorf("verify stock for %s: %w", item.ProductID, err)
		}
		if product == nil || !product.Active {
			return &CommitError{Reason: fmt.Sprintf("%s is no longer available", item.Name)}
		}
		if product.Stock < item.Quantity {
			return &CommitError{Reason: fmt.Sprintf("insufficient stock for %s", item.Name)}
		}
	}
	return nil
}
