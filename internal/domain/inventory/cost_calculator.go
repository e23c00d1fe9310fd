package inventory

import "github.com/shopspring/decimal"

// CostScale decimales con que se guarda el costo unitario.
const CostScale = 2

// CostCalculator implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Sin stock previo el costo es el de la entrada. Resultado redondeado a CostScale decimales.
func CostCalculator(stockActual int, costoActual decimal.Decimal, cantEntrada int, costoEntrada decimal.Decimal) decimal.Decimal {
	if stockActual <= 0 {
		return costoEntrada.Round(CostScale)
	}
	sum := stockActual + cantEntrada
	if sum <= 0 {
		return costoActual
	}
	num := decimal.NewFromInt(int64(stockActual)).Mul(costoActual).
		Add(decimal.NewFromInt(int64(cantEntrada)).Mul(costoEntrada))
	return num.Div(decimal.NewFromInt(int64(sum))).Round(CostScale)
}
