package signals

import "SmartMoney/internal/domain/models"

type Volatility int

const (
	VolatilityNormal Volatility = iota
	VolatilityHigh
	VolatilityLow
)

var volatilityBySymbol = map[string]Volatility{
	"SUZLON":   VolatilityHigh,
	"YESBANK":  VolatilityHigh,
	"IDEA":     VolatilityHigh,
	"ADANIENT": VolatilityHigh,
	"TCS":      VolatilityLow,
	"INFY":     VolatilityLow,
	"HDFCBANK": VolatilityLow,
	"RELIANCE": VolatilityLow,
}

var sectorBySymbol = map[string]models.Sector{
	"HDFCBANK":  models.SectorBanking,
	"ICICIBANK": models.SectorBanking,
	"SBIN":      models.SectorBanking,
	"TCS":       models.SectorIT,
	"INFY":      models.SectorIT,
	"WIPRO":     models.SectorIT,
	"HCLTECH":   models.SectorIT,
	"RELIANCE":  models.SectorOilGas,
	"IOC":       models.SectorOilGas,
	"BPCL":      models.SectorOilGas,
}

var liquidityBySymbol = map[string]models.Liquidity{
	"RELIANCE":  models.LiquidityHigh,
	"TCS":       models.LiquidityHigh,
	"HDFCBANK":  models.LiquidityHigh,
	"ICICIBANK": models.LiquidityHigh,
	"INFY":      models.LiquidityHigh,
}

// VolatilityOf returns VolatilityNormal for unknown symbols.
func VolatilityOf(symbol string) Volatility {
	return volatilityBySymbol[symbol]
}

// MarketContext is the static classification of a symbol.
type MarketContext struct {
	Sector    models.Sector
	MarketCap models.MarketCap
	Liquidity models.Liquidity
}

// ResolveContext classifies a symbol by lookup tables and price band.
func ResolveContext(symbol string, price float64) MarketContext {
	ctx := MarketContext{
		Sector:    models.SectorOthers,
		MarketCap: models.MarketCapMid,
		Liquidity: models.LiquidityMedium,
	}
	if s, ok := sectorBySymbol[symbol]; ok {
		ctx.Sector = s
	}
	if l, ok := liquidityBySymbol[symbol]; ok {
		ctx.Liquidity = l
	}
	switch {
	case price > 1000:
		ctx.MarketCap = models.MarketCapLarge
	case price < 100:
		ctx.MarketCap = models.MarketCapSmall
	}
	return ctx
}
