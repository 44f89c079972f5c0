package checkout

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/notify"
	"storefront/internal/shopapi"
)

type stubCart struct {
	items      []domain.CartLine
	clearCalls int
}

func (s *stubCart) Items() []domain.CartLine {
	return s.items
}

func (s *stubCart) Clear() error {
	s.clearCalls++
	s.items = nil
	return nil
}

type stubOrderAPI struct {
	serverCart []domain.CartLine
	err        error
	calls      int
	lastToken  string
	lastInput  shopapi.OrderInput
}

func (s *stubOrderAPI) PlaceOrder(_ context.Context, token string, in shopapi.OrderInput) ([]domain.CartLine, error) {
	s.calls++
	s.lastToken = token
	s.lastInput = in
	if s.err != nil {
		return nil, s.err
	}
	return s.serverCart, nil
}

func validInfo() domain.UserInfo {
	return domain.UserInfo{
		Name:    "Jo Smith",
		Email:   "jo@example.com",
		Phone:   "555-0101",
		Country: "Jordan",
		City:    "Amman",
		State:   "Amman",
		Street:  "12 King's Road",
	}
}

func newFlow(items []domain.CartLine) (*Service, *stubCart, *stubOrderAPI, *notify.Center) {
	cart := &stubCart{items: items}
	api := &stubOrderAPI{serverCart: []domain.CartLine{{ID: "srv-p1", Name: "Mug (server)", Price: 10, Quantity: 2, Stock: 5}}}
	notices := notify.NewCenter()
	return New(cart, api, notices, nil), cart, api, notices
}

func startReviewDraft(t *testing.T, svc *Service) Draft {
	t.Helper()
	d, err := svc.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := svc.SubmitShipping(d.ID, validInfo()); err != nil {
		t.Fatalf("SubmitShipping: %v", err)
	}
	if err := svc.SelectPayment(d.ID, CashOnDelivery); err != nil {
		t.Fatalf("SelectPayment: %v", err)
	}
	d, err = svc.Get(d.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	return d
}

func TestStart_EmptyCartIsRejected(t *testing.T) {
	svc, _, _, _ := newFlow(nil)

	_, err := svc.Start()
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestStart_OpensAtShipping(t *testing.T) {
	svc, _, _, _ := newFlow([]domain.CartLine{{ID: "p1", Price: 10, Quantity: 2, Stock: 5}})

	d, err := svc.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if d.ID == "" || d.Step != StepShipping {
		t.Fatalf("unexpected draft %+v", d)
	}
}

func TestSubmitShipping_ValidInputAdvances(t *testing.T) {
	svc, _, _, _ := newFlow([]domain.CartLine{{ID: "p1", Price: 10, Quantity: 2, Stock: 5}})
	d, _ := svc.Start()

	if err := svc.SubmitShipping(d.ID, validInfo()); err != nil {
		t.Fatalf("SubmitShipping: %v", err)
	}
	got, _ := svc.Get(d.ID)
	if got.Step != StepPayment {
		t.Fatalf("expected payment step, got %s", got.Step)
	}
	if got.UserInfo.City != "Amman" {
		t.Fatalf("expected user info stored, got %+v", got.UserInfo)
	}
}

func TestSubmitShipping_BlocksBadInput(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.UserInfo)
	}{
		{"missing name", func(i *domain.UserInfo) { i.Name = "" }},
		{"missing email", func(i *domain.UserInfo) { i.Email = " " }},
		{"missing phone", func(i *domain.UserInfo) { i.Phone = "" }},
		{"empty city", func(i *domain.UserInfo) { i.City = "" }},
		{"invalid street chars", func(i *domain.UserInfo) { i.Street = "Main St. #5" }},
		{"punctuation only state", func(i *domain.UserInfo) { i.State = " ,, " }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, _, notices := newFlow([]domain.CartLine{{ID: "p1", Price: 10, Quantity: 2, Stock: 5}})
			d, _ := svc.Start()
			info := validInfo()
			tc.mutate(&info)

			err := svc.SubmitShipping(d.ID, info)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			got, _ := svc.Get(d.ID)
			if got.Step != StepShipping {
				t.Fatalf("validation failure must not advance, step=%s", got.Step)
			}
			if notice, ok := notices.Current(notify.SurfaceCheckout); !ok || notice.Type != notify.Error {
				t.Fatalf("expected error notice, got %+v ok=%v", notice, ok)
			}
		})
	}
}

func TestSelectPayment_OnlyCashOnDelivery(t *testing.T) {
	svc, _, _, _ := newFlow([]domain.CartLine{{ID: "p1", Price: 10, Quantity: 2, Stock: 5}})
	d, _ := svc.Start()
	if err := svc.SubmitShipping(d.ID, validInfo()); err != nil {
		t.Fatalf("SubmitShipping: %v", err)
	}

	var verr *ValidationError
	if err := svc.SelectPayment(d.ID, CreditCard); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for credit card, got %v", err)
	}
	got, _ := svc.Get(d.ID)
	if got.Step != StepPayment {
		t.Fatalf("rejected method must not advance, step=%s", got.Step)
	}

	if err := svc.SelectPayment(d.ID, CashOnDelivery); err != nil {
		t.Fatalf("SelectPayment: %v", err)
	}
	got, _ = svc.Get(d.ID)
	if got.Step != StepReview {
		t.Fatalf("expected review step, got %s", got.Step)
	}
}

func TestFlow_NoSkippingForward(t *testing.T) {
	svc, _, _, _ := newFlow([]domain.CartLine{{ID: "p1", Price: 10, Quantity: 2, Stock: 5}})
	d, _ := svc.Start()

	if err := svc.SelectPayment(d.ID, CashOnDelivery); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("expected ErrWrongStep selecting payment at shipping, got %v", err)
	}
	if _, err := svc.Submit(context.Background(), "tok", d.ID); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("expected ErrWrongStep submitting at shipping, got %v", err)
	}
}

func TestBack_WalksLinearly(t *testing.T) {
	svc, _, _, _ := newFlow([]domain.CartLine{{ID: "p1", Price: 10, Quantity: 2, Stock: 5}})
	d := startReviewDraft(t, svc)

	if err := svc.Back(d.ID); err != nil {
		t.Fatalf("Back: %v", err)
	}
	got, _ := svc.Get(d.ID)
	if got.Step != StepPayment {
		t.Fatalf("expected payment after back, got %s", got.Step)
	}

	if err := svc.Back(d.ID); err != nil {
		t.Fatalf("Back: %v", err)
	}
	got, _ = svc.Get(d.ID)
	if got.Step != StepShipping {
		t.Fatalf("expected shipping after second back, got %s", got.Step)
	}

	// Backing out of the first step stays put.
	if err := svc.Back(d.ID); err != nil {
		t.Fatalf("Back: %v", err)
	}
	got, _ = svc.Get(d.ID)
	if got.Step != StepShipping {
		t.Fatalf("expected shipping step retained, got %s", got.Step)
	}
}

func TestReview_AppliesFlatDiscount(t *testing.T) {
	svc, _, _, _ := newFlow([]domain.CartLine{{ID: "p1", Price: 10, Quantity: 2, Stock: 5}})
	d := startReviewDraft(t, svc)

	if err := svc.SetDiscountCode(d.ID, "SAVE10"); err != nil {
		t.Fatalf("SetDiscountCode: %v", err)
	}
	sum, err := svc.Review(d.ID)
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if sum.Subtotal != 20 || sum.Discount != 10 || sum.Total != 10 {
		t.Fatalf("expected 20 - 10 = 10, got %+v", sum)
	}

	if err := svc.SetDiscountCode(d.ID, "SAVE99"); err != nil {
		t.Fatalf("SetDiscountCode: %v", err)
	}
	sum, err = svc.Review(d.ID)
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if sum.Discount != 0 || sum.Total != 20 {
		t.Fatalf("unrecognized code must discount zero, got %+v", sum)
	}
}

func TestSubmit_SuccessClearsCartAndUsesServerCart(t *testing.T) {
	clientCart := []domain.CartLine{{ID: "p1", Name: "Mug", Price: 10, Quantity: 2, Stock: 5}}
	svc, cart, api, _ := newFlow(clientCart)
	d := startReviewDraft(t, svc)
	if err := svc.SetDiscountCode(d.ID, "SAVE10"); err != nil {
		t.Fatalf("SetDiscountCode: %v", err)
	}

	conf, err := svc.Submit(context.Background(), "tok-1", d.ID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if api.lastToken != "tok-1" {
		t.Fatalf("expected bearer token forwarded, got %q", api.lastToken)
	}
	if api.lastInput.TotalPrice != 10 {
		t.Fatalf("expected discounted total 10, got %v", api.lastInput.TotalPrice)
	}
	if api.lastInput.PaymentMethod != "cash_on_delivery" {
		t.Fatalf("unexpected payment method %q", api.lastInput.PaymentMethod)
	}
	if cart.clearCalls != 1 {
		t.Fatalf("expected cart cleared once, got %d", cart.clearCalls)
	}
	if len(conf.Lines) != 1 || conf.Lines[0].ID != "srv-p1" {
		t.Fatalf("confirmation must use the server's cart, got %+v", conf.Lines)
	}
	if _, err := svc.Get(d.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected draft discarded after submit, got %v", err)
	}
}

func TestSubmit_FailureLeavesEverythingUntouched(t *testing.T) {
	svc, cart, api, notices := newFlow([]domain.CartLine{{ID: "p1", Price: 10, Quantity: 2, Stock: 5}})
	d := startReviewDraft(t, svc)
	api.err = errors.New("order api down")

	_, err := svc.Submit(context.Background(), "tok-1", d.ID)
	if err == nil {
		t.Fatalf("expected submit error")
	}

	if cart.clearCalls != 0 {
		t.Fatalf("failed submit must not clear the cart")
	}
	got, gerr := svc.Get(d.ID)
	if gerr != nil || got.Step != StepReview {
		t.Fatalf("expected draft retained at review, got %+v err=%v", got, gerr)
	}
	if notice, ok := notices.Current(notify.SurfaceCheckout); !ok || notice.Type != notify.Error {
		t.Fatalf("expected error notice, got %+v ok=%v", notice, ok)
	}
	// A retry after the outage succeeds with the same draft.
	api.err = nil
	if _, err := svc.Submit(context.Background(), "tok-1", d.ID); err != nil {
		t.Fatalf("retry Submit: %v", err)
	}
	if api.calls != 2 {
		t.Fatalf("expected 2 submissions, got %d", api.calls)
	}
}

func TestSubmit_EmptyCartIsRejectedBeforeNetwork(t *testing.T) {
	svc, cart, api, _ := newFlow([]domain.CartLine{{ID: "p1", Price: 10, Quantity: 2, Stock: 5}})
	d := startReviewDraft(t, svc)
	cart.items = nil

	_, err := svc.Submit(context.Background(), "tok-1", d.ID)
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if api.calls != 0 {
		t.Fatalf("empty cart must never reach the order API")
	}
}
