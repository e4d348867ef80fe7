package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Mreoch1/tradesync/internal/analysis"
	"github.com/Mreoch1/tradesync/internal/models"
	"github.com/Mreoch1/tradesync/internal/valuation"
	"github.com/Mreoch1/tradesync/pkg/utils"
)

// TradeHandler exposes trade analysis over already-valued athletes.
type TradeHandler struct {
	engine *analysis.Engine
}

func NewTradeHandler(engine *analysis.Engine) *TradeHandler {
	return &TradeHandler{engine: engine}
}

// AnalyzeTrade evaluates a proposed trade.
// POST /trades/analyze
func (h *TradeHandler) AnalyzeTrade(c *gin.Context) {
	var trade models.Trade
	if err := c.ShouldBindJSON(&trade); err != nil {
		utils.SendValidationError(c, "invalid trade payload", err.Error())
		return
	}
	if len(trade.SideA.Athletes)+len(trade.SideA.Picks) == 0 ||
		len(trade.SideB.Athletes)+len(trade.SideB.Picks) == 0 {
		utils.SendError(c, 400, utils.NewAppError(utils.ErrCodeTradeInput, "both trade sides must include at least one asset"))
		return
	}

	// Pick values are a pure function of round; recompute rather than trust
	// client-supplied figures.
	for i := range trade.SideA.Picks {
		trade.SideA.Picks[i].Value = valuation.DraftPickValue(trade.SideA.Picks[i].Round)
	}
	for i := range trade.SideB.Picks {
		trade.SideB.Picks[i].Value = valuation.DraftPickValue(trade.SideB.Picks[i].Round)
	}

	utils.SendSuccess(c, h.engine.AnalyzeTrade(trade))
}
