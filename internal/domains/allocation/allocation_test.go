package allocation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSplit_BoxPartition(t *testing.T) {
	for boxes := 0; boxes <= 101; boxes++ {
		res := Split(Input{Boxes: boxes})

		assert.Equal(t, boxes, res.S3.Boxes+res.MSR.Boxes, "boxes=%d", boxes)
		// MSR gets the odd box
		diff := res.MSR.Boxes - res.S3.Boxes
		assert.True(t, diff == 0 || diff == 1, "boxes=%d diff=%d", boxes, diff)
	}
}

func TestSplit_OddBoxGoesToMSR(t *testing.T) {
	res := Split(Input{Boxes: 7})

	assert.Equal(t, 3, res.S3.Boxes)
	assert.Equal(t, 4, res.MSR.Boxes)
}

func TestSplit_ZeroBoxes(t *testing.T) {
	res := Split(Input{
		Boxes:     0,
		Salles:    dec("1000"),
		TotalCost: dec("500"),
		AirCargo:  dec("100"),
	})

	assert.Equal(t, 0, res.S3.Boxes)
	assert.Equal(t, 0, res.MSR.Boxes)

	for name, got := range map[string]decimal.Decimal{
		"s3.sales":           res.S3.Sales,
		"s3.cost":            res.S3.Cost,
		"s3.expenses":        res.S3.Expenses,
		"s3.net_income":      res.S3.NetIncome,
		"s3.freight.bas_zam": res.S3.Freight.BasZam,
		"s3.freight.air":     res.S3.Freight.AirCargo,
		"s3.freight.t2":      res.S3.Freight.T2Market,
		"msr.sales":          res.MSR.Sales,
		"msr.cost":           res.MSR.Cost,
		"msr.expenses":       res.MSR.Expenses,
		"msr.net_income":     res.MSR.NetIncome,
		"msr.freight":        res.MSR.Freight,
	} {
		assert.True(t, got.IsZero(), "%s = %s, want 0", name, got)
	}
}

// Reference day worked out by hand with the owner: 10 boxes, 1000 gross
// sales, 500 landed cost, 100 air cargo.
func TestSplit_ReferenceDay(t *testing.T) {
	res := Split(Input{
		Boxes:     10,
		Salles:    dec("1000"),
		TotalCost: dec("500"),
		AirCargo:  dec("100"),
	})

	require.Equal(t, 5, res.S3.Boxes)
	require.Equal(t, 5, res.MSR.Boxes)

	assertDecEqual(t, dec("500"), res.S3.Sales, "s3.sales")
	assertDecEqual(t, dec("250"), res.S3.Cost, "s3.cost")
	assertDecEqual(t, dec("1750"), res.S3.Freight.BasZam, "s3.freight.bas_zam")
	assertDecEqual(t, dec("700"), res.S3.Freight.T2Market, "s3.freight.t2_market")
	assertDecEqual(t, dec("50"), res.S3.Freight.AirCargo, "s3.freight.air_cargo")
	assertDecEqual(t, dec("2750"), res.S3.Expenses, "s3.expenses")
	assertDecEqual(t, dec("-2250"), res.S3.NetIncome, "s3.net_income")

	assertDecEqual(t, dec("500"), res.MSR.Sales, "msr.sales")
	assertDecEqual(t, dec("250"), res.MSR.Cost, "msr.cost")
	assertDecEqual(t, dec("9000"), res.MSR.Freight, "msr.freight")
	assertDecEqual(t, dec("9250"), res.MSR.Expenses, "msr.expenses")
	assertDecEqual(t, dec("-8750"), res.MSR.NetIncome, "msr.net_income")
}

func TestSplit_SalesSumBackToTotal(t *testing.T) {
	cases := []Input{
		{Boxes: 10, Salles: dec("1000"), TotalCost: dec("500"), AirCargo: dec("100")},
		{Boxes: 7, Salles: dec("933.45"), TotalCost: dec("412.10"), AirCargo: dec("55")},
		{Boxes: 1, Salles: dec("120"), TotalCost: dec("80"), AirCargo: dec("0")},
		{Boxes: 3, Salles: dec("0"), TotalCost: dec("0"), AirCargo: dec("0")},
	}

	tolerance := dec("0.000001")
	for _, in := range cases {
		res := Split(in)

		sum := res.S3.Sales.Add(res.MSR.Sales)
		assert.True(t, sum.Sub(in.Salles).Abs().LessThanOrEqual(tolerance),
			"boxes=%d: s3+msr sales = %s, want %s", in.Boxes, sum, in.Salles)

		costSum := res.S3.Cost.Add(res.MSR.Cost)
		assert.True(t, costSum.Sub(in.TotalCost).Abs().LessThanOrEqual(tolerance),
			"boxes=%d: s3+msr cost = %s, want %s", in.Boxes, costSum, in.TotalCost)
	}
}

func TestSplit_Idempotent(t *testing.T) {
	in := Input{Boxes: 13, Salles: dec("1540.50"), TotalCost: dec("760.25"), AirCargo: dec("90")}

	first := Split(in)
	second := Split(in)

	assert.Equal(t, first, second)
}

func TestSplit_NegativeInputsClampToZero(t *testing.T) {
	res := Split(Input{
		Boxes:     -4,
		Salles:    dec("-100"),
		TotalCost: dec("-50"),
		AirCargo:  dec("-10"),
	})

	assert.Equal(t, 0, res.S3.Boxes)
	assert.Equal(t, 0, res.MSR.Boxes)
	assert.True(t, res.S3.Expenses.IsZero())
	assert.True(t, res.MSR.Expenses.IsZero())
}

func assertDecEqual(t *testing.T, want, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, want.Equal(got), "%s = %s, want %s", field, got, want)
}
