package signal

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/avezina/signalhub/internal/app"
	"github.com/avezina/signalhub/internal/config"
	"github.com/avezina/signalhub/internal/domain"
)

const sendBuffer = 32

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Controller upgrades HTTP requests to websockets and runs one
// read/write pump pair per connection. Connection ids are minted here,
// one fresh uuid per upgrade, and handed to the gateway as opaque
// handles.
type Controller struct {
	Gateway *app.Gateway
	Hub     *Hub
	Cfg     *config.Config
}

func NewController(gw *app.Gateway, hub *Hub, cfg *config.Config) *Controller {
	return &Controller{Gateway: gw, Hub: hub, Cfg: cfg}
}

func (ctl *Controller) HandleSignal(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}

	id := domain.ConnectionID(uuid.NewString())
	conn := newWSConn(ws, sendBuffer)

	ctl.Hub.Register(id, conn)
	ctl.Gateway.OnConnect(id)

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, id, conn)
	go ctl.readPump(ctx, cancel, id, conn)
}
