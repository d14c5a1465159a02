// Package finance holds the tuition ledger's pure domain logic: per-student
// balance derivation, cohort aggregation, payment submission validation and
// CSV serialization. Nothing in this package touches the database or the
// clock; every function is a deterministic mapping of its inputs.
package finance

import "github.com/PORTABLEA02/primaire2/app/models"

// StudentBalance is the derived payment standing of one student against the
// annual fee of their level. It is recomputed on every read, never persisted.
type StudentBalance struct {
	TotalFees         int64                `json:"total_fees"`
	PaidAmount        int64                `json:"paid_amount"`
	OutstandingAmount int64                `json:"outstanding_amount"`
	Status            models.BalanceStatus `json:"payment_status"`
}

// ComputeBalance derives a StudentBalance from the level's fee plan and the
// student's payment records. Only confirmed payments count as received money;
// pending and cancelled records never move the paid total. Overpayment clamps
// the outstanding amount to zero, the surplus is not tracked as credit.
func ComputeBalance(plan models.Level, payments []models.Payment) StudentBalance {
	var paid int64
	for _, p := range payments {
		if p.Status == models.PaymentConfirmed {
			paid += p.Amount
		}
	}

	outstanding := plan.AnnualFee - paid
	if outstanding < 0 {
		outstanding = 0
	}

	// Order matters: a student owing nothing is up to date even with zero
	// payments (annual fee of zero); "En retard" means money is due and
	// nothing has been confirmed yet.
	var status models.BalanceStatus
	switch {
	case outstanding == 0:
		status = models.BalanceUpToDate
	case paid == 0:
		status = models.BalanceLate
	default:
		status = models.BalancePartial
	}

	return StudentBalance{
		TotalFees:         plan.AnnualFee,
		PaidAmount:        paid,
		OutstandingAmount: outstanding,
		Status:            status,
	}
}

// PaidPercentage returns the rounded share of fees already paid, 0 when no
// fees are due. Used by the outstanding export and the student cards so the
// figure is computed in exactly one place.
func (b StudentBalance) PaidPercentage() int {
	if b.TotalFees <= 0 {
		return 0
	}
	return int((float64(b.PaidAmount)/float64(b.TotalFees))*100 + 0.5)
}
