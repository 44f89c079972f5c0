// Package checkout drives the three-step order flow: shipping info, payment
// method, review, then submission to the remote order API. Drafts are
// ephemeral and never persisted; abandoning a draft costs nothing.
package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"

	"storefront/internal/domain"
	"storefront/internal/notify"
	"storefront/internal/shopapi"
)

type Step string

const (
	StepShipping Step = "shipping"
	StepPayment  Step = "payment"
	StepReview   Step = "review"
)

type PaymentMethod string

const (
	// CashOnDelivery is the only functional payment method.
	CashOnDelivery PaymentMethod = "cash_on_delivery"
	// CreditCard is listed in the payment step but deliberately not
	// selectable; the flow for it was never finished.
	CreditCard PaymentMethod = "credit_card"
)

// The one recognized discount code and its flat dollar amount. There is no
// server-side validation and no percentage tiers; anything else discounts
// zero.
const (
	discountCode   = "SAVE10"
	discountAmount = 10.0
)

// ErrWrongStep is returned when an operation does not match the draft's
// current step; the flow is linear with back-navigation only.
var ErrWrongStep = errors.New("operation not available at current step")

// ValidationError carries the user-facing message for a blocked advancement.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Address fields accept letters, digits, spaces, hyphens, apostrophes and
// commas, and must not be punctuation/whitespace only.
var (
	validPlaceRE      = regexp.MustCompile(`^[a-zA-Z0-9\s,'-]+$`)
	onlyPunctuationRE = regexp.MustCompile(`^[\s.,]+$`)
)

// Draft is one in-progress checkout. Step moves forward only through
// validated submissions and backward through Back.
type Draft struct {
	ID            string          `json:"id"`
	Step          Step            `json:"step"`
	UserInfo      domain.UserInfo `json:"userInfo"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	DiscountCode  string          `json:"discountCode,omitempty"`
}

// Summary is the review-step projection of the current cart.
type Summary struct {
	Lines    []domain.CartLine `json:"lines"`
	Subtotal float64           `json:"subtotal"`
	Discount float64           `json:"discount"`
	Total    float64           `json:"total"`
}

// Confirmation is rendered after a successful submission. Lines come from the
// server's response, not the pre-submission client cart.
type Confirmation struct {
	UserInfo domain.UserInfo   `json:"userInfo"`
	Lines    []domain.CartLine `json:"lines"`
}

type cartAggregate interface {
	Items() []domain.CartLine
	Clear() error
}

type orderAPI interface {
	PlaceOrder(ctx context.Context, token string, in shopapi.OrderInput) ([]domain.CartLine, error)
}

type Service struct {
	cart    cartAggregate
	api     orderAPI
	notices *notify.Center
	logger  *log.Logger
	newID   func() string

	mu     sync.Mutex
	drafts map[string]*Draft
}

func New(cart cartAggregate, api orderAPI, notices *notify.Center, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		cart:    cart,
		api:     api,
		notices: notices,
		logger:  logger,
		newID:   uuid.NewString,
		drafts:  make(map[string]*Draft),
	}
}

// Start opens a draft at the shipping step. Checkout is pointless for an
// empty cart, so entry is refused before any draft exists.
func (s *Service) Start() (Draft, error) {
	if len(s.cart.Items()) == 0 {
		return Draft{}, domain.ErrEmptyCart
	}

	d := &Draft{
		ID:            s.newID(),
		Step:          StepShipping,
		PaymentMethod: CashOnDelivery,
	}
	s.mu.Lock()
	s.drafts[d.ID] = d
	s.mu.Unlock()
	return *d, nil
}

// Get returns a copy of the draft.
func (s *Service) Get(id string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return Draft{}, domain.ErrNotFound
	}
	return *d, nil
}

// SubmitShipping validates the contact and address fields and advances the
// draft to the payment step. A validation failure blocks advancement, raises
// a notice and leaves the draft where it was.
func (s *Service) SubmitShipping(id string, info domain.UserInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return domain.ErrNotFound
	}
	if d.Step != StepShipping {
		return ErrWrongStep
	}
	if err := validateShipping(info); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			s.notices.Push(notify.SurfaceCheckout, verr.Message, notify.Error)
		}
		return err
	}

	info.UserID = d.UserInfo.UserID
	d.UserInfo = info
	d.Step = StepPayment
	return nil
}

// AttachUser records the authenticated user's id on the draft so the order
// payload can reference it.
func (s *Service) AttachUser(id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.UserInfo.UserID = userID
	return nil
}

// SelectPayment accepts the chosen method at the payment step. Only cash on
// delivery advances; the credit card option is present but inert.
func (s *Service) SelectPayment(id string, method PaymentMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return domain.ErrNotFound
	}
	if d.Step != StepPayment {
		return ErrWrongStep
	}
	if method != CashOnDelivery {
		return &ValidationError{Message: "Credit card payments are not available yet."}
	}

	d.PaymentMethod = method
	d.Step = StepReview
	return nil
}

// SetDiscountCode stores the code as typed; it is only interpreted when the
// review summary is computed.
func (s *Service) SetDiscountCode(id, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.DiscountCode = strings.TrimSpace(code)
	return nil
}

// Back moves one step toward shipping. Backing out of the first step is a
// no-op.
func (s *Service) Back(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return domain.ErrNotFound
	}
	switch d.Step {
	case StepReview:
		d.Step = StepPayment
	case StepPayment:
		d.Step = StepShipping
	}
	return nil
}

// Review computes the order summary from the cart aggregate's current
// snapshot: full-precision subtotal, flat discount for the recognized code,
// total = subtotal - discount.
func (s *Service) Review(id string) (Summary, error) {
	s.mu.Lock()
	d, ok := s.drafts[id]
	if !ok {
		s.mu.Unlock()
		return Summary{}, domain.ErrNotFound
	}
	code := d.DiscountCode
	s.mu.Unlock()

	return s.summarize(code), nil
}

// Submit posts the assembled order. On success the local cart is cleared (the
// aggregate publishes cartUpdated), the draft is discarded and the
// confirmation is built from the server's returned cart. On failure nothing
// is touched so the user may retry.
func (s *Service) Submit(ctx context.Context, token, id string) (Confirmation, error) {
	s.mu.Lock()
	d, ok := s.drafts[id]
	if !ok {
		s.mu.Unlock()
		return Confirmation{}, domain.ErrNotFound
	}
	if d.Step != StepReview {
		s.mu.Unlock()
		return Confirmation{}, ErrWrongStep
	}
	draft := *d
	s.mu.Unlock()

	lines := s.cart.Items()
	if len(lines) == 0 {
		return Confirmation{}, domain.ErrEmptyCart
	}
	// Re-validate before the network call; nothing is submitted on bad input.
	if err := validateShipping(draft.UserInfo); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			s.notices.Push(notify.SurfaceCheckout, verr.Message, notify.Error)
		}
		return Confirmation{}, err
	}

	summary := s.summarize(draft.DiscountCode)
	serverCart, err := s.api.PlaceOrder(ctx, token, shopapi.OrderInput{
		UserInfo:      draft.UserInfo,
		Cart:          lines,
		TotalPrice:    summary.Total,
		PaymentMethod: string(draft.PaymentMethod),
	})
	if err != nil {
		s.logger.Printf("checkout: place order draft=%s error=%v", id, err)
		s.notices.Push(notify.SurfaceCheckout, "Order failed. Please try again.", notify.Error)
		return Confirmation{}, err
	}

	if err := s.cart.Clear(); err != nil {
		// The order is already placed; log and carry on with confirmation.
		s.logger.Printf("checkout: clear cart after order draft=%s error=%v", id, err)
	}
	s.mu.Lock()
	delete(s.drafts, id)
	s.mu.Unlock()

	return Confirmation{UserInfo: draft.UserInfo, Lines: serverCart}, nil
}

func (s *Service) summarize(code string) Summary {
	lines := s.cart.Items()
	var subtotal float64
	for _, l := range lines {
		subtotal += l.Subtotal()
	}
	var discount float64
	if code == discountCode {
		discount = discountAmount
	}
	return Summary{
		Lines:    lines,
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal - discount,
	}
}

func validateShipping(info domain.UserInfo) error {
	if strings.TrimSpace(info.Name) == "" ||
		strings.TrimSpace(info.Email) == "" ||
		strings.TrimSpace(info.Phone) == "" {
		return &ValidationError{Message: "Please fill in your name, email and phone."}
	}

	fields := []string{info.Country, info.City, info.State, info.Street}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return &ValidationError{Message: "Please fill in all address fields."}
		}
	}
	for _, f := range fields {
		if !validPlaceRE.MatchString(f) {
			return &ValidationError{Message: "Address fields should contain valid place names with letters, numbers, spaces, hyphens, apostrophes, or commas only."}
		}
	}
	for _, f := range fields {
		if onlyPunctuationRE.MatchString(f) {
			return &ValidationError{Message: "Address fields cannot contain only special characters or spaces."}
		}
	}
	return nil
}
