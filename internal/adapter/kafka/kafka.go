package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/IBM/sarama"
	"github.com/lovoo/goka"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sasl/plain"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/schema"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
	ErrViewNotReady     = errors.New("view is not recovered yet")
)

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type ConsumerClient interface {
	PollFetches(context.Context) kgo.Fetches
	CommitUncommittedOffsets(context.Context) error
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

// Security holds optional TLS and SASL/PLAIN settings shared by the
// franz-go clients and goka. The zero value means plaintext.
type Security struct {
	TLS  *tls.Config
	User string
	Pass string
}

// ClientOpts returns the franz-go options for s.
func (s Security) ClientOpts() []kgo.Opt {
	var opts []kgo.Opt
	if s.TLS != nil {
		opts = append(opts, kgo.DialTLSConfig(s.TLS))
	}
	if s.User != "" {
		opts = append(opts, kgo.SASL(plain.Auth{
			User: s.User,
			Pass: s.Pass,
		}.AsMechanism()))
	}
	return opts
}

// applyGoka replaces goka's global sarama config with one carrying s.
func (s Security) applyGoka() {
	cfg := goka.DefaultConfig()
	if s.TLS != nil {
		cfg.Net.TLS.Enable = true
		cfg.Net.TLS.Config = s.TLS
	}
	if s.User != "" {
		cfg.Net.SASL.Enable = true
		cfg.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		cfg.Net.SASL.User = s.User
		cfg.Net.SASL.Password = s.Pass
	}
	goka.ReplaceGlobalConfig(cfg)
}

func withNonlogProcOpt() goka.ProcessorOption {
	return goka.WithLogger(log.New(io.Discard, "", 0))
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func catalogEventToSchemaV1(e domain.CatalogEvent) (s schema.CatalogEventV1) {
	v := e.Product
	s.Slug = v.Slug
	s.Deleted = e.Deleted
	s.Title = v.Title
	s.Brand = v.Brand
	s.Description = v.Description
	s.Price = v.Price
	s.CompareAtPrice = v.CompareAtPrice
	s.Category = v.Category
	s.Badge = v.Badge

	s.Tags = v.Tags
	if s.Tags == nil {
		s.Tags = []string{}
	}

	s.Images = make([]schema.ProductImageV1, len(v.Images))
	for i := range v.Images {
		s.Images[i].Src = v.Images[i].Src
		s.Images[i].Alt = v.Images[i].Alt
	}
	return
}

func schemaV1ToCatalogEvent(s schema.CatalogEventV1) (e domain.CatalogEvent) {
	e.Deleted = s.Deleted
	e.Product = domain.Product{
		Slug:           s.Slug,
		Title:          s.Title,
		Brand:          s.Brand,
		Description:    s.Description,
		Price:          s.Price,
		CompareAtPrice: s.CompareAtPrice,
		Category:       s.Category,
		Tags:           s.Tags,
		Badge:          s.Badge,
	}
	for _, img := range s.Images {
		e.Product.Images = append(e.Product.Images, domain.ProductImage{
			Src: img.Src, Alt: img.Alt,
		})
	}
	return
}
