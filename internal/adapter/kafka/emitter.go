package kafka

import (
	"context"
	"log/slog"

	"github.com/lovoo/goka"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/schema"
)

var _ port.CartEventEmitter = (*CartEventEmitter)(nil)

type gokaEmitter interface {
	EmitSync(key string, msg any) error
	Finish() error
}

// A CartEventEmitter records cart adds on the cart events stream,
// keyed by product slug.
type CartEventEmitter struct {
	ge gokaEmitter
}

func NewCartEventEmitter(
	seedBrokers []string, stream string, cartEventSerde Serde, sec Security,
) (CartEventEmitter, error) {
	const op = "NewCartEventEmitter"

	sec.applyGoka()
	ge, err := goka.NewEmitter(
		seedBrokers, goka.Stream(stream), newCartEventCodec(cartEventSerde),
	)
	if err != nil {
		return CartEventEmitter{}, opErr(err, op)
	}
	return CartEventEmitter{ge}, nil
}

func (e CartEventEmitter) EmitCartEvent(
	ctx context.Context, v domain.CartEvent,
) error {
	const op = "CartEventEmitter.EmitCartEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, op)
	}

	s := schema.CartEventV1{Slug: v.Slug, Qty: v.Qty}
	if err := e.ge.EmitSync(s.Slug, s); err != nil {
		return opErr(err, op)
	}
	return nil
}

func (e CartEventEmitter) Close() {
	const op = "CartEventEmitter.Close"
	log := slog.With("op", op)

	log.Info("closing emitter...")
	if err := e.ge.Finish(); err != nil {
		log.Error("failed to finish gracefully", "err", err)
		return
	}
	log.Info("emitter is closed")
}
