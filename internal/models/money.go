package models

import "math"

// RoundMoney rounds an amount to two decimal places, half up at the cent.
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
