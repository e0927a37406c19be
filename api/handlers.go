package api

import (
	"errors"
	"net/http"

	"cosmossdk.io/math"
	"github.com/gin-gonic/gin"

	"github.com/moonforge-labs/launchpad/launch/types"
)

// ErrorResponse is the error envelope for all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"tokens":        len(s.engine.AllTokens()),
		"active_tokens": len(s.engine.ActiveTokens()),
	})
}

func (s *Server) handleListTokens(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"tokens": s.engine.AllTokens(),
		"active": s.engine.ActiveTokens(),
	})
}

func (s *Server) handlePoolInfo(c *gin.Context) {
	info, err := s.engine.PoolInfo(s.ctxFor(), c.Param("token"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":                   info.Token,
		"launch_type":             info.LaunchType.String(),
		"creator":                 info.Creator,
		"market_cap_bnb":          info.MarketCapBnb.String(),
		"market_cap_usd":          info.MarketCapUsd.String(),
		"bnb_reserve":             info.BnbReserve.String(),
		"token_reserve":           info.TokenReserve.String(),
		"reserved_tokens":         info.ReservedTokens.String(),
		"virtual_bnb_reserve":     info.VirtualBnbReserve.String(),
		"current_price":           info.CurrentPrice.String(),
		"price_multiplier":        info.PriceMultiplier.String(),
		"graduation_progress_pct": info.GraduationProgressPct.String(),
		"graduated":               info.Graduated,
		"active":                  info.Active,
		"lp_token":                info.LpToken,
	})
}

func (s *Server) handleFeeInfo(c *gin.Context) {
	info, err := s.engine.FeeInfo(s.ctxFor(), c.Param("token"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":                  info.Token,
		"current_rate_bps":       info.CurrentRateBps,
		"final_rate_bps":         info.FinalRateBps,
		"blocks_since_launch":    info.BlocksSinceLaunch,
		"blocks_until_next_tier": info.BlocksUntilNextTier,
		"stage":                  info.Stage,
	})
}

func (s *Server) handleCreatorFeeInfo(c *gin.Context) {
	info, err := s.engine.CreatorFeeInfo(s.ctxFor(), c.Param("token"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":                 info.Token,
		"accumulated":           info.Accumulated.String(),
		"last_claim":            info.LastClaim,
		"graduation_market_cap": info.GraduationMarketCap.String(),
		"current_market_cap":    info.CurrentMarketCap.String(),
		"bnb_in_pool":           info.BnbInPool.String(),
		"can_claim":             info.CanClaim,
	})
}

func (s *Server) handlePostGraduationStats(c *gin.Context) {
	stats, err := s.engine.GetPostGraduationStats(c.Param("token"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":                  stats.Token,
		"sells":                  stats.Sells,
		"tokens_sold":            stats.TokensSold.String(),
		"bnb_paid_to_sellers":    stats.BnbPaidToSellers.String(),
		"liquidity_tokens_added": stats.LiquidityTokensAdded.String(),
		"liquidity_bnb_added":    stats.LiquidityBnbAdded.String(),
		"lp_units_generated":     stats.LpUnitsGenerated.String(),
	})
}

func (s *Server) handleQuoteBuy(c *gin.Context) {
	bnbIn, ok := amountParam(c, "bnb_in")
	if !ok {
		return
	}
	quote, err := s.engine.QuoteBuy(s.ctxFor(), c.Param("token"), bnbIn)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tokens_out":      quote.TokensOut.String(),
		"fee_bnb":         quote.FeeBnb.String(),
		"fee_bps":         quote.FeeBps,
		"price_per_token": quote.PricePerToken.String(),
	})
}

func (s *Server) handleQuoteSell(c *gin.Context) {
	tokensIn, ok := amountParam(c, "tokens_in")
	if !ok {
		return
	}
	quote, err := s.engine.QuoteSell(s.ctxFor(), c.Param("token"), tokensIn)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bnb_out":         quote.BnbOut.String(),
		"fee_bps":         quote.FeeBps,
		"price_per_token": quote.PricePerToken.String(),
	})
}

// amountParam parses a required base-unit integer query parameter, writing a
// 400 response on failure.
func amountParam(c *gin.Context, name string) (math.Int, bool) {
	raw := c.Query(name)
	if raw == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: name + " query parameter is required"})
		return math.Int{}, false
	}
	amount, ok := math.NewIntFromString(raw)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: name + " must be an integer amount in base units"})
		return math.Int{}, false
	}
	return amount, true
}

func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, types.ErrPoolNotFound):
		status = http.StatusNotFound
	case errors.Is(err, types.ErrInvalidInput), errors.Is(err, types.ErrInvalidAddress):
		status = http.StatusBadRequest
	case errors.Is(err, types.ErrPoolGraduated),
		errors.Is(err, types.ErrPoolNotActive),
		errors.Is(err, types.ErrPoolNotGraduated),
		errors.Is(err, types.ErrInsufficientLiquidity):
		status = http.StatusConflict
	case errors.Is(err, types.ErrAmmFailure):
		status = http.StatusBadGateway
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}
