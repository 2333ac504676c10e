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
	"github.com/shabareesh1383/sociora/business/web/errs"
	"github.com/shabareesh1383/sociora/foundation/blockchain/database"
	"github.com/shabareesh1383/sociora/foundation/blockchain/mining"
	"github.com/shabareesh1383/sociora/foundation/blockchain/state"
	"github.com/shabareesh1383/sociora/foundation/blockchain/storagenet"
	"github.com/shabareesh1383/sociora/foundation/events"
	"github.com/shabareesh1383/sociora/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of public node endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v := web.GetValues(ctx)

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

// =============================================================================

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.Genesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Status returns the node's current view of the chain.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	latest := h.State.LatestBlock()

	resp := statusResponse{
		MinerAddress: h.State.MinerAddress(),
		Height:       h.State.Height(),
		MempoolCount: h.State.MempoolCount(),
	}
	if resp.Height > 0 {
		resp.LatestBlockHash = latest.Hash()
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// BlocksByNumber returns the blocks in the specified range.
func (h Handlers) BlocksByNumber(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	fromStr := web.Param(r, "from")
	toStr := web.Param(r, "to")

	from, err := parseBlockNumber(fromStr)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}
	to, err := parseBlockNumber(toStr)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	dbBlocks := h.State.BlocksByNumber(from, to)
	if len(dbBlocks) == 0 {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	blocks := make([]database.BlockData, len(dbBlocks))
	for i, blk := range dbBlocks {
		blocks[i] = database.NewBlockData(blk)
	}

	return web.Respond(ctx, w, blocks, http.StatusOK)
}

// Mempool returns the set of uncommitted transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	txs := h.State.Mempool()

	trans := make([]database.TxData, len(txs))
	for i, tx := range txs {
		trans[i] = database.NewTxData(tx)
	}

	return web.Respond(ctx, w, trans, http.StatusOK)
}

// SubmitTransaction adds a new transaction to the mempool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v := web.GetValues(ctx)

	var txData database.TxData
	if err := web.Decode(r, &txData); err != nil {
		return err
	}

	h.Log.Infow("add tran", "traceid", v.TraceID, "type", txData.TxType, "amount", txData.Amount)

	count, err := h.State.SubmitTransaction(txData)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := struct {
		Status       string `json:"status"`
		MempoolCount int    `json:"mempool_count"`
	}{
		Status:       "transaction added to mempool",
		MempoolCount: count,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// =============================================================================

// UploadVideo registers a new video on the storage network.
func (h Handlers) UploadVideo(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req uploadVideoRequest
	if err := web.Decode(r, &req); err != nil {
		return err
	}

	video, err := h.State.UploadVideo(req.VideoCID, req.CreatorID, req.Title, req.DurationSeconds, req.SizeBytes)
	if err != nil {
		if errors.Is(err, storagenet.ErrVideoExists) {
			return errs.NewTrusted(err, http.StatusConflict)
		}
		return err
	}

	return web.Respond(ctx, w, video, http.StatusCreated)
}

// StoreReplica records that a node holds a copy of a video.
func (h Handlers) StoreReplica(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req replicateRequest
	if err := web.Decode(r, &req); err != nil {
		return err
	}

	if !h.State.StoreReplica(req.VideoCID, req.NodeID) {
		return errs.NewTrusted(errors.New("replica not stored: unknown video or node, or node out of capacity"), http.StatusBadRequest)
	}

	video, _ := h.State.Video(req.VideoCID)
	return web.Respond(ctx, w, video, http.StatusOK)
}

// TranscodeVideo records the transcoded renditions for a video.
func (h Handlers) TranscodeVideo(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req transcodeRequest
	if err := web.Decode(r, &req); err != nil {
		return err
	}

	if !h.State.TranscodeVideo(req.VideoCID, req.Profiles) {
		return errs.NewTrusted(errors.New("unknown video"), http.StatusNotFound)
	}

	video, _ := h.State.Video(req.VideoCID)
	return web.Respond(ctx, w, video, http.StatusOK)
}

// VerifyStorage attests a video's storage and transcoding state.
func (h Handlers) VerifyStorage(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cid := web.Param(r, "cid")

	verified := h.State.VerifyStorage(cid)

	resp := struct {
		VideoCID string `json:"video_cid"`
		Verified bool   `json:"verified"`
	}{
		VideoCID: cid,
		Verified: verified,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// VideoStatus returns the storage network state for a video.
func (h Handlers) VideoStatus(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cid := web.Param(r, "cid")

	video, exists := h.State.Video(cid)
	if !exists {
		return errs.NewTrusted(errors.New("unknown video"), http.StatusNotFound)
	}

	resp := struct {
		storagenet.VideoMetadata
		OnlineReplicas int `json:"online_replicas"`
	}{
		VideoMetadata:  video,
		OnlineReplicas: h.State.OnlineReplicas(cid),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// =============================================================================

// RegisterNode adds a storage node to the network.
func (h Handlers) RegisterNode(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req registerNodeRequest
	if err := web.Decode(r, &req); err != nil {
		return err
	}

	reputation := req.Reputation
	if reputation == 0 {
		reputation = storagenet.DefaultReputation
	}

	node := h.State.RegisterNode(req.NodeID, req.Address, req.Region, req.StorageCapacity, reputation)

	return web.Respond(ctx, w, node, http.StatusCreated)
}

// OfflineNode marks a storage node offline.
func (h Handlers) OfflineNode(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	nodeID := web.Param(r, "id")

	if !h.State.OfflineNode(nodeID) {
		return errs.NewTrusted(errors.New("unknown node"), http.StatusNotFound)
	}

	return web.Respond(ctx, w, nil, http.StatusNoContent)
}

// Nodes returns all registered storage nodes.
func (h Handlers) Nodes(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.Nodes(), http.StatusOK)
}

// =============================================================================

// Mine runs a synchronous mining attempt against the specified video and
// returns the committed block.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v := web.GetValues(ctx)

	var req mineRequest
	if err := web.Decode(r, &req); err != nil {
		return err
	}

	h.Log.Infow("mine block", "traceid", v.TraceID, "video", req.VideoCID)

	block, proof, result, err := h.State.MineVideoBlock(ctx, req.VideoCID, req.CreatorID)
	if err != nil {
		var vErr *mining.ValidationError
		if errors.As(err, &vErr) {
			resp := struct {
				Error  string                  `json:"error"`
				Result mining.ValidationResult `json:"validation_result"`
			}{
				Error:  vErr.Error(),
				Result: vErr.Result,
			}
			return web.Respond(ctx, w, resp, http.StatusUnprocessableEntity)
		}
		return err
	}

	resp := struct {
		Block  database.BlockData      `json:"block"`
		Proof  storagenet.StorageProof `json:"proof"`
		Result mining.ValidationResult `json:"validation_result"`
	}{
		Block:  database.NewBlockData(block),
		Proof:  proof,
		Result: result,
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// SignalMining asks the background worker to mine against the specified
// video.
func (h Handlers) SignalMining(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cid := web.Param(r, "cid")
	creator := web.Param(r, "creator")

	h.State.Worker.SignalStartMining(cid, creator)

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "mining signaled",
	}

	return web.Respond(ctx, w, resp, http.StatusAccepted)
}

// =============================================================================

// parseBlockNumber converts a path parameter into a block number. The
// literal "latest" means through the head of the chain.
func parseBlockNumber(s string) (uint64, error) {
	if s == "latest" {
		return 0, nil
	}

	num, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid block number %q", s)
	}

	return num, nil
}
