package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lovoo/goka"

	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.PopularityReader = (*PopularityView)(nil)

type gokaView interface {
	Run(context.Context) error
	Recovered() bool
	Get(key string) (any, error)
}

// A PopularityView reads the popularity group table.
type PopularityView struct {
	gv gokaView
}

func NewPopularityView(
	seedBrokers []string, groupTable string, sec Security,
) (PopularityView, error) {
	const op = "NewPopularityView"

	sec.applyGoka()
	gv, err := goka.NewView(
		seedBrokers, goka.GroupTable(goka.Group(groupTable)), popularityCodec{},
	)
	if err != nil {
		return PopularityView{}, opErr(err, op)
	}
	return PopularityView{gv}, nil
}

// Run blocks until ctx is done.
func (v PopularityView) Run(ctx context.Context) {
	const op = "PopularityView.Run"
	log := slog.With("op", op)

	log.Info("running")
	if err := v.gv.Run(ctx); err != nil {
		log.Error("unexpected fail on run", "err", err)
		return
	}
	log.Info("stopped")
}

// Popularity fails with [ErrViewNotReady] until the table is recovered.
func (v PopularityView) Popularity(
	ctx context.Context, slugs []string,
) (map[string]int, error) {
	const op = "PopularityView.Popularity"

	if err := ctx.Err(); err != nil {
		return nil, opErr(err, op)
	}

	if !v.gv.Recovered() {
		return nil, opErr(ErrViewNotReady, op)
	}

	counts := make(map[string]int, len(slugs))
	for _, slug := range slugs {
		raw, err := v.gv.Get(slug)
		if err != nil {
			return nil, opErr(err, op)
		}
		if raw == nil {
			continue
		}
		n, ok := raw.(popularity)
		if !ok {
			return nil, opErr(fmt.Errorf("%w: %T", ErrInvalidValueType, raw), op)
		}
		counts[slug] = int(n)
	}
	return counts, nil
}
