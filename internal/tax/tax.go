package tax

import (
	"github.com/shopspring/decimal"

	"github.com/drstein77/shopcart/internal/models"
)

// Price thresholds are in minor currency units. Lower bounds are exclusive.
const (
	lowerBound        = 1000
	productUpperBound = 5000
	serviceUpperBound = 8000
)

var (
	productMidRate  = decimal.RequireFromString("0.12")
	productHighRate = decimal.RequireFromString("0.18")
	productFlat     = decimal.NewFromInt(200)

	serviceMidRate  = decimal.RequireFromString("0.10")
	serviceHighRate = decimal.RequireFromString("0.15")
	serviceFlat     = decimal.NewFromInt(100)
)

// Tax returns the tax owed on a single item of the given price and kind.
func Tax(price int64, kind models.Kind) (decimal.Decimal, error) {
	p := decimal.NewFromInt(price)

	switch kind {
	case models.Product:
		switch {
		case price > lowerBound && price <= productUpperBound:
			return p.Mul(productMidRate), nil
		case price > productUpperBound:
			return p.Mul(productHighRate), nil
		default:
			return productFlat, nil
		}
	case models.Service:
		switch {
		case price > lowerBound && price <= serviceUpperBound:
			return p.Mul(serviceMidRate), nil
		case price > serviceUpperBound:
			return p.Mul(serviceHighRate), nil
		default:
			return serviceFlat, nil
		}
	}
	return decimal.Zero, models.ErrInvalidKind
}
