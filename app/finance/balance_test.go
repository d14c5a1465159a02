package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PORTABLEA02/primaire2/app/models"
)

func payment(amount int64, status models.PaymentStatus) models.Payment {
	return models.Payment{
		Amount: amount,
		Method: models.MethodCash,
		Type:   models.TypeTuition,
		Status: status,
	}
}

func TestComputeBalance(t *testing.T) {
	tests := []struct {
		name            string
		annualFee       int64
		payments        []models.Payment
		wantPaid        int64
		wantOutstanding int64
		wantStatus      models.BalanceStatus
	}{
		{
			name:      "partial with pending excluded",
			annualFee: 400000,
			payments: []models.Payment{
				payment(250000, models.PaymentConfirmed),
				payment(50000, models.PaymentPending),
			},
			wantPaid:        250000,
			wantOutstanding: 150000,
			wantStatus:      models.BalancePartial,
		},
		{
			name:      "fully paid in two tranches",
			annualFee: 450000,
			payments: []models.Payment{
				payment(200000, models.PaymentConfirmed),
				payment(250000, models.PaymentConfirmed),
			},
			wantPaid:        450000,
			wantOutstanding: 0,
			wantStatus:      models.BalanceUpToDate,
		},
		{
			name:            "no payments yet",
			annualFee:       350000,
			payments:        nil,
			wantPaid:        0,
			wantOutstanding: 350000,
			wantStatus:      models.BalanceLate,
		},
		{
			name:      "overpayment clamps to zero",
			annualFee: 300000,
			payments: []models.Payment{
				payment(320000, models.PaymentConfirmed),
			},
			wantPaid:        320000,
			wantOutstanding: 0,
			wantStatus:      models.BalanceUpToDate,
		},
		{
			name:      "cancelled payments never count",
			annualFee: 400000,
			payments: []models.Payment{
				payment(400000, models.PaymentCancelled),
			},
			wantPaid:        0,
			wantOutstanding: 400000,
			wantStatus:      models.BalanceLate,
		},
		{
			name:            "zero annual fee is up to date",
			annualFee:       0,
			payments:        nil,
			wantPaid:        0,
			wantOutstanding: 0,
			wantStatus:      models.BalanceUpToDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ComputeBalance(models.Level{Name: "CE1", AnnualFee: tt.annualFee}, tt.payments)
			assert.Equal(t, tt.annualFee, b.TotalFees)
			assert.Equal(t, tt.wantPaid, b.PaidAmount)
			assert.Equal(t, tt.wantOutstanding, b.OutstandingAmount)
			assert.Equal(t, tt.wantStatus, b.Status)
		})
	}
}

// Adding a pending or cancelled payment of any amount must not change the
// paid or outstanding amounts.
func TestComputeBalanceConfirmedOnly(t *testing.T) {
	plan := models.Level{Name: "CM1", AnnualFee: 450000}
	base := []models.Payment{payment(100000, models.PaymentConfirmed)}
	want := ComputeBalance(plan, base)

	for _, status := range []models.PaymentStatus{models.PaymentPending, models.PaymentCancelled} {
		for _, amount := range []int64{1, 50000, 450000, 10000000} {
			got := ComputeBalance(plan, append(base, payment(amount, status)))
			assert.Equal(t, want.PaidAmount, got.PaidAmount, "status=%s amount=%d", status, amount)
			assert.Equal(t, want.OutstandingAmount, got.OutstandingAmount, "status=%s amount=%d", status, amount)
		}
	}
}

// For any fee F and confirmed total P, outstanding is max(F-P, 0) and exactly
// one of the three statuses holds.
func TestComputeBalanceMonotonicityAndPartition(t *testing.T) {
	fees := []int64{0, 1, 100000, 300000, 450000}
	paids := []int64{0, 1, 99999, 100000, 300000, 450000, 500000}

	for _, f := range fees {
		for _, p := range paids {
			var payments []models.Payment
			if p > 0 {
				payments = []models.Payment{payment(p, models.PaymentConfirmed)}
			}
			b := ComputeBalance(models.Level{AnnualFee: f}, payments)

			want := f - p
			if want < 0 {
				want = 0
			}
			require.Equal(t, want, b.OutstandingAmount, "F=%d P=%d", f, p)
			require.GreaterOrEqual(t, b.OutstandingAmount, int64(0))

			switch {
			case p >= f:
				assert.Equal(t, models.BalanceUpToDate, b.Status, "F=%d P=%d", f, p)
			case p == 0:
				assert.Equal(t, models.BalanceLate, b.Status, "F=%d P=%d", f, p)
			default:
				assert.Equal(t, models.BalancePartial, b.Status, "F=%d P=%d", f, p)
			}
		}
	}
}

func TestComputeBalanceDeterministic(t *testing.T) {
	plan := models.Level{Name: "CP", AnnualFee: 350000}
	payments := []models.Payment{
		payment(100000, models.PaymentConfirmed),
		payment(50000, models.PaymentPending),
	}

	first := ComputeBalance(plan, payments)
	second := ComputeBalance(plan, payments)
	assert.Equal(t, first, second)
}

func TestPaidPercentage(t *testing.T) {
	assert.Equal(t, 0, StudentBalance{TotalFees: 0, PaidAmount: 0}.PaidPercentage())
	assert.Equal(t, 50, StudentBalance{TotalFees: 400000, PaidAmount: 200000}.PaidPercentage())
	assert.Equal(t, 63, StudentBalance{TotalFees: 400000, PaidAmount: 250000}.PaidPercentage())
	assert.Equal(t, 100, StudentBalance{TotalFees: 300000, PaidAmount: 300000}.PaidPercentage())
}
