// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	v1 "github.com/minichain/minichain/business/web/v1"
	"github.com/minichain/minichain/foundation/events"
	"github.com/minichain/minichain/foundation/ledger/database"
	"github.com/minichain/minichain/foundation/ledger/state"
	"github.com/minichain/minichain/foundation/validate"
	"github.com/minichain/minichain/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// SubmitTransaction adds a new transaction to the mempool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var ntx newTx
	if err := web.Decode(r, &ntx); err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	if err := validate.Check(ntx); err != nil {
		return err
	}

	dbTx := database.NewTx(time.Now().UTC(), ntx.From, ntx.To, ntx.Data, ntx.Value)

	h.Log.Infow("add tran", "traceid", v.TraceID, "tx", dbTx)
	h.State.SubmitTransaction(dbTx)

	resp := struct {
		Status  string `json:"status"`
		Pending int    `json:"pending"`
	}{
		Status:  "transaction added to mempool",
		Pending: h.State.MempoolCount(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mine batches the pending transactions into a candidate block, performs
// the proof of work and reports the accepted block.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blockData, err := h.State.MineNewBlock(ctx)
	if err != nil {
		switch {
		case errors.Is(err, state.ErrNoTransactions):
			return v1.NewRequestError(err, http.StatusBadRequest)
		case errors.Is(err, database.ErrWrongParent), errors.Is(err, database.ErrInvalidProof):
			return v1.NewRequestError(err, http.StatusConflict)
		default:
			return err
		}
	}

	resp := struct {
		Status string `json:"status"`
		Number uint64 `json:"number"`
		Hash   string `json:"hash"`
	}{
		Status: "block mined",
		Number: blockData.Block.Number,
		Hash:   blockData.Hash,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Genesis returns the chain settings.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Mempool returns the set of uncommitted transactions in submission order.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	pool := h.State.RetrieveMempool()

	trans := make([]tx, len(pool))
	for i, dbTx := range pool {
		trans[i] = toTx(dbTx)
	}

	return web.Respond(ctx, w, trans, http.StatusOK)
}

// BlockByNumber returns the committed block with the specified number.
func (h Handlers) BlockByNumber(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	number, err := strconv.ParseUint(web.Param(r, "number"), 10, 64)
	if err != nil {
		return v1.NewRequestError(fmt.Errorf("invalid block number: %w", err), http.StatusBadRequest)
	}

	blockData, err := h.State.RetrieveBlock(number)
	if err != nil {
		return v1.NewRequestError(err, http.StatusNotFound)
	}

	return web.Respond(ctx, w, toBlock(blockData), http.StatusOK)
}

// Chain returns the full committed chain starting with the genesis block.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	chain := h.State.RetrieveChain()

	blocks := make([]block, len(chain))
	for i, blockData := range chain {
		blocks[i] = toBlock(blockData)
	}

	return web.Respond(ctx, w, blocks, http.StatusOK)
}
