package service

import (
	"testing"

	"learnhub_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func coursesPriced(cents ...int64) []model.Course {
	courses := make([]model.Course, len(cents))
	for i, c := range cents {
		courses[i] = model.Course{Title: "course", PriceCents: c}
		courses[i].ID = uint(i + 1)
	}
	return courses
}

func TestComputeQuoteNoCoupon(t *testing.T) {
	q := computeQuote(coursesPriced(5000, 2500), nil, 20)

	assert.EqualValues(t, 7500, q.SubtotalCents)
	assert.EqualValues(t, 0, q.DiscountCents)
	assert.EqualValues(t, 7500, q.TotalCents)
	assert.EqualValues(t, 1500, q.PlatformFeeCents)
	assert.EqualValues(t, 6000, q.AuthorShareCents)
	assert.Len(t, q.Lines, 2)
}

func TestComputeQuotePercentCoupon(t *testing.T) {
	coupon := &model.Coupon{Code: "WELCOME10", Kind: model.CouponPercent, PercentOff: 10}
	q := computeQuote(coursesPriced(9900), coupon, 30)

	assert.EqualValues(t, 9900, q.SubtotalCents)
	assert.EqualValues(t, 990, q.DiscountCents)
	assert.EqualValues(t, 8910, q.TotalCents)
	// fee is floored, author share absorbs the remainder
	assert.EqualValues(t, 2673, q.PlatformFeeCents)
	assert.EqualValues(t, 6237, q.AuthorShareCents)
	assert.Equal(t, q.TotalCents, q.PlatformFeeCents+q.AuthorShareCents)
}

func TestComputeQuoteFixedCouponClamped(t *testing.T) {
	coupon := &model.Coupon{Code: "BIG", Kind: model.CouponFixed, AmountCents: 10000}
	q := computeQuote(coursesPriced(3000), coupon, 20)

	assert.EqualValues(t, 3000, q.DiscountCents, "fixed discount clamps to subtotal")
	assert.EqualValues(t, 0, q.TotalCents)
	assert.EqualValues(t, 0, q.PlatformFeeCents)
	assert.EqualValues(t, 0, q.AuthorShareCents)
}

func TestComputeQuoteSplitAlwaysSums(t *testing.T) {
	for _, price := range []int64{1, 99, 101, 12345, 99999} {
		for _, fee := range []int{0, 7, 30, 100} {
			q := computeQuote(coursesPriced(price), nil, fee)
			assert.Equal(t, q.TotalCents, q.PlatformFeeCents+q.AuthorShareCents,
				"price=%d fee=%d", price, fee)
		}
	}
}
