package engine

import (
	"context"
	"log"
)

// TradeSink receives the trades of each completed match pass.
type TradeSink func([]Trade)

// Engine runs the store and matcher behind a single command loop, so
// concurrent callers are serialized without holding locks themselves.
type Engine struct {
	store   *OrderStore
	matcher *Matcher
	cmds    chan Command
	done    chan struct{}

	sink TradeSink
}

func NewEngine(buffer int, store *OrderStore, prices PriceSource) *Engine {
	return &Engine{
		store:   store,
		matcher: NewMatcher(store, prices),
		cmds:    make(chan Command, buffer),
		done:    make(chan struct{}),
	}
}

// OnTrades registers a sink for executed trades. Must be called before Run.
func (e *Engine) OnTrades(sink TradeSink) {
	e.sink = sink
}

func (e *Engine) Run(ctx context.Context) {
	defer close(e.done)

	for {
		select {
		case cmd := <-e.cmds:
			switch cmd.Type {

			case CmdPlace:
				err := e.store.Add(cmd.Order)
				cmd.Resp <- struct {
					Err error
				}{err}

			case CmdCancel:
				err := e.store.Cancel(cmd.ID)
				cmd.Resp <- struct {
					Err error
				}{err}

			case CmdMatch:
				trades := e.matcher.MatchOrders(cmd.ID)
				if len(trades) > 0 {
					log.Printf("matched %s: %d trade(s)", cmd.ID, len(trades))
					if e.sink != nil {
						e.sink(trades)
					}
				}
				cmd.Resp <- struct {
					Trades []Trade
					Err    error
				}{trades, nil}
			}

		case <-ctx.Done():
			return
		}
	}
}

// Done is closed once the command loop has exited.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// Place submits an order to the store through the command loop.
func (e *Engine) Place(ctx context.Context, o *Order) error {
	resp := make(chan any, 1)
	select {
	case e.cmds <- Command{Type: CmdPlace, Order: o, Resp: resp}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case v := <-resp:
		return v.(struct {
			Err error
		}).Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Cancel removes an order through the command loop.
func (e *Engine) Cancel(ctx context.Context, orderID string) error {
	resp := make(chan any, 1)
	select {
	case e.cmds <- Command{Type: CmdCancel, ID: orderID, Resp: resp}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case v := <-resp:
		return v.(struct {
			Err error
		}).Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Match runs one matching pass for the instrument through the command loop
// and returns the executed trades.
func (e *Engine) Match(ctx context.Context, instrumentID string) ([]Trade, error) {
	resp := make(chan any, 1)
	select {
	case e.cmds <- Command{Type: CmdMatch, ID: instrumentID, Resp: resp}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case v := <-resp:
		r := v.(struct {
			Trades []Trade
			Err    error
		})
		return r.Trades, r.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Store exposes the underlying order store for read-side queries.
func (e *Engine) Store() *OrderStore {
	return e.store
}
