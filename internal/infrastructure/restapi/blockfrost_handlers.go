package restapi

import (
	"errors"
	"net/http"
	"time"

	"blockfrost_proxy/internal/app/port"
	"blockfrost_proxy/internal/domain/entity"
	"blockfrost_proxy/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProjectIDHeader is the header Blockfrost reads the project key from.
const ProjectIDHeader = "project_id"

const (
	msgUnsupportedProjectID = "Unsupported Blockfrost project id"
	msgUnsupportedNetwork   = "Unsupported Cardano network type"
	msgUpstreamFailed       = "Blockfrost request failed"
	msgUpstreamNotJSON      = "Blockfrost returned a non-JSON response"
)

// BlockfrostHandler пересылает запросы клиента в Blockfrost, подставляя project_id.
type BlockfrostHandler struct {
	redirector port.Redirector
	endpoints  map[entity.Network]string
	projectIDs map[entity.Network]string
	metrics    *metrics.ProxyMetrics
	logger     *zap.Logger
}

// NewBlockfrostHandler создает новый экземпляр BlockfrostHandler.
// The maps are read-only after construction.
func NewBlockfrostHandler(
	redirector port.Redirector,
	endpoints map[entity.Network]string,
	projectIDs map[entity.Network]string,
	m *metrics.ProxyMetrics,
	logger *zap.Logger,
) *BlockfrostHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BlockfrostHandler{
		redirector: redirector,
		endpoints:  endpoints,
		projectIDs: projectIDs,
		metrics:    m,
		logger:     logger.Named("BlockfrostHandler"),
	}
}

// RedirectHandler serves {basePath}/:networkId/*endpoint.
func (h *BlockfrostHandler) RedirectHandler(c *gin.Context) {
	// Сеть проверяется до того, как трогаем ключи и адреса.
	network, err := entity.NetworkFromProjectID(c.Param("networkId"), entity.AllNetworks())
	if err != nil {
		h.logger.Debug("Rejected network id", zap.Error(err))
		h.abort(c, "unknown", entity.NewErrorEnvelope(http.StatusNotFound, msgUnsupportedProjectID))
		return
	}
	label := network.String()

	root := h.endpoints[network]
	key := h.projectIDs[network]
	if root == "" || key == "" {
		// Неполная конфигурация выглядит для клиента так же, как неподдерживаемая сеть.
		h.logger.Warn("Network is not configured", zap.String("network", label))
		h.abort(c, label, entity.NewErrorEnvelope(http.StatusNotFound, msgUnsupportedNetwork))
		return
	}

	header := http.Header{}
	header.Set(ProjectIDHeader, key)

	started := time.Now()
	resp, err := h.redirector.Redirect(c.Request.Context(), port.RedirectTarget{BaseURL: root, Header: header}, c.Request, c.Param("endpoint"))
	h.metrics.ObserveUpstream(label, time.Since(started))
	if err != nil {
		h.metrics.IncUpstreamError(label, "transport")
		h.logger.Error("Failed to forward request", zap.String("network", label), zap.String("endpoint", c.Param("endpoint")), zap.Error(err))
		status := http.StatusBadGateway
		if ctxErr := c.Request.Context().Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			status = http.StatusGatewayTimeout
		}
		h.abort(c, label, entity.NewErrorEnvelope(status, msgUpstreamFailed))
		return
	}

	var body any
	if err := resp.JSON(&body); err != nil {
		h.metrics.IncUpstreamError(label, "decode")
		h.logger.Error("Failed to decode Blockfrost response",
			zap.String("network", label),
			zap.Int("upstreamStatus", resp.StatusCode),
			zap.Error(err),
		)
		h.abort(c, label, entity.NewErrorEnvelope(http.StatusBadGateway, msgUpstreamNotJSON))
		return
	}

	// Ошибку определяем по форме тела, а не по HTTP статусу.
	if env, ok := entity.AsErrorEnvelope(body); ok {
		h.metrics.IncUpstreamError(label, "envelope")
		h.logger.Debug("Blockfrost returned an error envelope",
			zap.String("network", label),
			zap.Int("statusCode", env.StatusCode),
			zap.String("message", env.Message),
		)
		h.abort(c, label, &entity.ErrorEnvelope{
			StatusCode: env.StatusCode,
			ErrorName:  env.ErrorName,
			Message:    env.Message,
		})
		return
	}

	h.metrics.ObserveRequest(label, http.StatusOK)
	c.JSON(http.StatusOK, body)
}

func (h *BlockfrostHandler) abort(c *gin.Context, network string, env *entity.ErrorEnvelope) {
	h.metrics.ObserveRequest(network, env.StatusCode)
	c.AbortWithStatusJSON(env.StatusCode, env)
}

// HealthHandler reports which networks are fully configured.
func (h *BlockfrostHandler) HealthHandler(c *gin.Context) {
	configured := make([]string, 0, len(h.projectIDs))
	for _, n := range entity.AllNetworks() {
		if h.endpoints[n] != "" && h.projectIDs[n] != "" {
			configured = append(configured, n.String())
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"networks": configured,
	})
}
