package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hakimelghazi/trading-core/internal/config"
	"github.com/hakimelghazi/trading-core/internal/engine"
	"github.com/hakimelghazi/trading-core/pricefeed"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1) config + universe
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	instruments, err := buildInstruments(cfg.Universe)
	if err != nil {
		log.Fatal(err)
	}

	// 2) oracle: a live quote endpoint when configured, else the static
	// prices from the universe file
	cache := pricefeed.NewCache(decimal.NewFromFloat(cfg.Oracle.FallbackPrice))
	feed := buildFeed(cfg)
	go pricefeed.StartPriceUpdater(ctx, feed, cache, instrumentIDs(cfg.Universe), cfg.Oracle.RefreshInterval)

	// 3) engine
	store := engine.NewOrderStore()
	eng := engine.NewEngine(cfg.Engine.Buffer, store, cache)
	eng.OnTrades(func(trades []engine.Trade) {
		for _, tr := range trades {
			log.Printf("trade %s: %s %s @ %s (%s -> %s)",
				tr.ID, tr.Quantity, tr.InstrumentID, tr.Price, tr.SellTraderID, tr.BuyTraderID)
		}
	})
	go eng.Run(ctx)

	// 4) seed orders, then run one pass per instrument
	for _, spec := range cfg.Universe.Orders {
		order, err := toOrder(spec, instruments)
		if err != nil {
			log.Printf("skipping order: %v", err)
			continue
		}
		if err := eng.Place(ctx, order); err != nil {
			log.Printf("place %s failed: %v", order.ID, err)
		}
	}

	for _, id := range instrumentIDs(cfg.Universe) {
		if _, err := eng.Match(ctx, id); err != nil {
			log.Printf("match %s failed: %v", id, err)
		}
	}

	fmt.Println("remaining orders:")
	seen := make(map[string]bool)
	for _, id := range instrumentIDs(cfg.Universe) {
		for _, o := range store.OrdersFor(id) {
			if seen[o.ID] {
				continue
			}
			seen[o.ID] = true
			fmt.Printf("  %s  %s  %s  %s x %s  [%s]\n",
				o.ID, o.TraderID, o.Side, o.Instrument.Symbol, o.Quantity(), o.Status())
		}
	}

	stop()
	<-eng.Done()
}

func buildInstruments(u config.Universe) (map[string]*engine.Instrument, error) {
	out := make(map[string]*engine.Instrument, len(u.Instruments)+len(u.Baskets))
	for _, spec := range u.Instruments {
		out[spec.ID] = engine.NewInstrument(spec.ID, spec.Symbol)
	}
	for _, spec := range u.Baskets {
		components := make([]engine.Component, 0, len(spec.Components))
		for _, c := range spec.Components {
			components = append(components, engine.Component{
				Instrument: out[c.ID],
				Weight:     decimal.NewFromFloat(c.Weight),
			})
		}
		basket, err := engine.NewComposite(spec.ID, spec.Symbol, components)
		if err != nil {
			return nil, err
		}
		out[spec.ID] = basket
	}
	return out, nil
}

func buildFeed(cfg *config.Config) pricefeed.Feed {
	if cfg.Oracle.FeedURL != "" {
		return pricefeed.NewHTTPFeed(cfg.Oracle.FeedURL)
	}
	prices := make(map[string]decimal.Decimal, len(cfg.Universe.Prices))
	for id, p := range cfg.Universe.Prices {
		prices[id] = decimal.NewFromFloat(p)
	}
	return pricefeed.NewStaticFeed(prices)
}

func instrumentIDs(u config.Universe) []string {
	ids := make([]string, 0, len(u.Instruments)+len(u.Baskets))
	for _, in := range u.Instruments {
		ids = append(ids, in.ID)
	}
	for _, b := range u.Baskets {
		ids = append(ids, b.ID)
	}
	return ids
}

func toOrder(spec config.OrderSpec, instruments map[string]*engine.Instrument) (*engine.Order, error) {
	side, err := engine.ParseSide(spec.Side)
	if err != nil {
		return nil, err
	}
	in := instruments[spec.Instrument]
	id := spec.ID
	if id == "" {
		id = uuid.NewString()
	}
	qty := decimal.NewFromFloat(spec.Quantity)
	if spec.Market {
		return engine.NewMarketOrder(id, spec.Trader, side, in, qty), nil
	}
	return engine.NewLimitOrder(id, spec.Trader, side, in, qty, decimal.NewFromFloat(spec.Price)), nil
}
