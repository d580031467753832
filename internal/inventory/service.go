// Package inventory consumes order.paid events and deducts product stock.
// The API never deducts synchronously; deployments that do not want stock
// deduction simply do not run this worker.
package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/FahriNazarudin/E-commerce/internal/checkout"
	kafkax "github.com/FahriNazarudin/E-commerce/internal/kafka"
	"github.com/FahriNazarudin/E-commerce/internal/redisx"
)

type Store interface {
	AlreadyDeducted(ctx context.Context, orderID string) (bool, error)
	ItemsForOrder(ctx context.Context, orderID string) ([]ItemQty, error)
	DeductAll(ctx context.Context, orderID string, items []ItemQty) error
}

type Deduper interface {
	SeenOrMark(ctx context.Context, key string) (bool, error)
	Unmark(ctx context.Context, key string) error
}

type Service struct {
	Store       Store
	Dedup       Deduper
	ServiceName string
}

// HandleOrderPaid is the consumer handler for the order.paid topic.
func (s *Service) HandleOrderPaid(ctx context.Context, m kafkago.Message) error {
	var env checkout.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != checkout.EventOrderPaid {
		return nil
	}

	p, err := kafkax.UnwrapPayload[checkout.OrderPaidPayload](env.Payload)
	if err != nil {
		return err
	}

	key := fmt.Sprintf(redisx.KeyEventDedup, "inventory", env.EventID)
	if seen, err := s.Dedup.SeenOrMark(ctx, key); err != nil {
		return err
	} else if seen {
		return nil
	}

	// a failed deduction must release the mark, or the redelivery of this
	// event would be skipped and the stock never deducted
	if err := s.deduct(ctx, p.OrderID); err != nil {
		if uerr := s.Dedup.Unmark(ctx, key); uerr != nil {
			log.Printf("unmark dedup %s: %v", key, uerr)
		}
		return err
	}
	return nil
}

func (s *Service) deduct(ctx context.Context, orderID string) error {
	if done, err := s.Store.AlreadyDeducted(ctx, orderID); err != nil {
		return err
	} else if done {
		return nil
	}

	items, err := s.Store.ItemsForOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		log.Printf("order %s has no items recorded, skipping deduction", orderID)
		return nil
	}

	if err := s.Store.DeductAll(ctx, orderID, items); err != nil {
		return err
	}
	log.Printf("stock deducted for order %s (%d items)", orderID, len(items))
	return nil
}
