// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/shabareesh1383/sociora/app/services/node/handlers/v1/public"
	"github.com/shabareesh1383/sociora/foundation/blockchain/state"
	"github.com/shabareesh1383/sociora/foundation/events"
	"github.com/shabareesh1383/sociora/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	State *state.State
	Evts  *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		Evts:  cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", pbl.Events)

	app.Handle(http.MethodGet, version, "/genesis/list", pbl.Genesis)
	app.Handle(http.MethodGet, version, "/node/status", pbl.Status)
	app.Handle(http.MethodGet, version, "/blocks/list/:from/:to", pbl.BlocksByNumber)
	app.Handle(http.MethodGet, version, "/tx/uncommitted/list", pbl.Mempool)
	app.Handle(http.MethodPost, version, "/tx/submit", pbl.SubmitTransaction)

	app.Handle(http.MethodPost, version, "/video/upload", pbl.UploadVideo)
	app.Handle(http.MethodPost, version, "/video/replicate", pbl.StoreReplica)
	app.Handle(http.MethodPost, version, "/video/transcode", pbl.TranscodeVideo)
	app.Handle(http.MethodPost, version, "/video/verify/:cid", pbl.VerifyStorage)
	app.Handle(http.MethodGet, version, "/video/status/:cid", pbl.VideoStatus)

	app.Handle(http.MethodPost, version, "/storage/node/register", pbl.RegisterNode)
	app.Handle(http.MethodPost, version, "/storage/node/offline/:id", pbl.OfflineNode)
	app.Handle(http.MethodGet, version, "/storage/node/list", pbl.Nodes)

	app.Handle(http.MethodPost, version, "/mining/mine", pbl.Mine)
	app.Handle(http.MethodGet, version, "/mining/signal/:cid/:creator", pbl.SignalMining)
}
