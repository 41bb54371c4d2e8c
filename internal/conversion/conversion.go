// Package conversion is the single source of truth for kg ↔ java arithmetic.
// Every form in the system (ventas, ingresos, reportes) resolves quantities and
// prices through this package so that the per-product conversion factor is the
// only parameter — there are no hardcoded default factors here.
package conversion

import "fmt"

// Unit identifies one of the two quantity units the business operates in.
// A "java" is a crate of product; the product's conversion factor says how
// many kilograms one java holds.
type Unit int

const (
	Kg Unit = iota
	Java
)

func (u Unit) String() string {
	if u == Java {
		return "JAVA"
	}
	return "KG"
}

// InvalidFactorError signals a conversion factor <= 0. A non-positive factor
// is a product configuration error, never a runtime condition to tolerate.
type InvalidFactorError struct {
	Factor float64
}

func (e *InvalidFactorError) Error() string {
	return fmt.Sprintf("factor de conversión inválido: %g (debe ser mayor a 0)", e.Factor)
}

// ConvertQuantity converts a quantity between kg and javas using the product's
// factor (kg per java). Same-unit conversions return the value unchanged.
func ConvertQuantity(value, factor float64, from, to Unit) (float64, error) {
	if factor <= 0 {
		return 0, &InvalidFactorError{Factor: factor}
	}
	if from == to {
		return value, nil
	}
	if from == Kg {
		return value / factor, nil
	}
	return value * factor, nil
}

// ConvertPrice converts a unit price between per-kg and per-java. The
// direction is inverse to quantities: price/java = price/kg * factor.
func ConvertPrice(value, factor float64, from, to Unit) (float64, error) {
	if factor <= 0 {
		return 0, &InvalidFactorError{Factor: factor}
	}
	if from == to {
		return value, nil
	}
	if from == Kg {
		return value * factor, nil
	}
	return value / factor, nil
}

// QuantityInput is a user-entered quantity tagged with the unit it was typed
// in. The complementary unit is always derived, never stored as input.
type QuantityInput struct {
	Unit  Unit
	Value float64
}

// PriceInput is a user-entered unit price tagged with its unit.
type PriceInput struct {
	Unit  Unit
	Value float64
}

// LineItem is one row of a sale or ingreso form: a product's conversion
// factor plus whichever quantity/price fields were populated.
type LineItem struct {
	Factor   float64
	Quantity QuantityInput
	Price    PriceInput
}

// LineTotals is the canonical resolved set for a line. Both quantity and
// price are carried in both units so callers never re-derive.
type LineTotals struct {
	QuantityKg    float64
	QuantityJavas float64
	PricePerKg    float64
	PricePerJava  float64
	Subtotal      float64
}

// Totals aggregates LineTotals across a whole form.
type Totals struct {
	TotalKg     float64
	TotalJavas  float64
	TotalAmount float64
}

// Add returns the componentwise sum of two Totals.
func (t Totals) Add(o Totals) Totals {
	return Totals{
		TotalKg:     t.TotalKg + o.TotalKg,
		TotalJavas:  t.TotalJavas + o.TotalJavas,
		TotalAmount: t.TotalAmount + o.TotalAmount,
	}
}

// ComputeLineTotals resolves a line into the canonical set.
//
// Incomplete rows are not errors: a blank or non-positive quantity or price
// contributes zero so the form stays usable while the user is still typing.
// An invalid factor on a row that would otherwise contribute degrades the row
// to zero AND returns the error, so the calling form can block submission.
func ComputeLineTotals(item LineItem) (LineTotals, error) {
	var out LineTotals

	if item.Quantity.Value <= 0 {
		return out, nil
	}
	if item.Factor <= 0 {
		return out, &InvalidFactorError{Factor: item.Factor}
	}

	kg, _ := ConvertQuantity(item.Quantity.Value, item.Factor, item.Quantity.Unit, Kg)
	javas, _ := ConvertQuantity(item.Quantity.Value, item.Factor, item.Quantity.Unit, Java)
	out.QuantityKg = kg
	out.QuantityJavas = javas

	if item.Price.Value <= 0 {
		return out, nil
	}
	perKg, _ := ConvertPrice(item.Price.Value, item.Factor, item.Price.Unit, Kg)
	perJava, _ := ConvertPrice(item.Price.Value, item.Factor, item.Price.Unit, Java)
	out.PricePerKg = perKg
	out.PricePerJava = perJava
	out.Subtotal = javas * perJava

	return out, nil
}

// Aggregate sums the resolved totals of all lines. Lines that fail to resolve
// (invalid factor) contribute zero; the first such error is returned alongside
// the totals of the remaining lines. An empty slice yields all-zero totals.
func Aggregate(items []LineItem) (Totals, error) {
	var totals Totals
	var firstErr error
	for _, item := range items {
		lt, err := ComputeLineTotals(item)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		totals.TotalKg += lt.QuantityKg
		totals.TotalJavas += lt.QuantityJavas
		totals.TotalAmount += lt.Subtotal
	}
	return totals, firstErr
}
