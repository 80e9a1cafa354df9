package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/orris-inc/monitor/internal/application/analytics/dto"
	"github.com/orris-inc/monitor/internal/domain/analytics"
	"github.com/orris-inc/monitor/internal/shared/utils"
)

type offerRecorder interface {
	Execute(ctx context.Context, offer *analytics.Offer) error
}

type paymentRecorder interface {
	Execute(ctx context.Context, payment *analytics.Payment) error
}

// OfferHandler stores offer messages.
type OfferHandler struct {
	recorder offerRecorder
}

func NewOfferHandler(recorder offerRecorder) *OfferHandler {
	return &OfferHandler{recorder: recorder}
}

func (h *OfferHandler) Handle(ctx context.Context, payload []byte) error {
	var msg dto.OfferMessage
	if err := decode(payload, &msg); err != nil {
		return err
	}

	offer, err := msg.ToOffer()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	return classify(h.recorder.Execute(ctx, &offer))
}

// PaymentHandler stores payment messages.
type PaymentHandler struct {
	recorder paymentRecorder
}

func NewPaymentHandler(recorder paymentRecorder) *PaymentHandler {
	return &PaymentHandler{recorder: recorder}
}

func (h *PaymentHandler) Handle(ctx context.Context, payload []byte) error {
	var msg dto.PaymentMessage
	if err := decode(payload, &msg); err != nil {
		return err
	}

	payment, err := msg.ToPayment()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	return classify(h.recorder.Execute(ctx, &payment))
}

func decode(payload []byte, v interface{}) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if err := utils.ValidateStruct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	return nil
}

// classify turns record validation failures into malformed messages.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, analytics.ErrInvalidOffer) || errors.Is(err, analytics.ErrInvalidPayment) {
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	return err
}
