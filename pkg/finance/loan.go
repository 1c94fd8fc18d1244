package finance

import (
	"fmt"
	"math"

	"github.com/ChicagoDave/costplanner/pkg/project"
)

// AnnualDebtService uses the standard annuity formula.
// P * r(1+r)^n / ((1+r)^n - 1)
// At 0% interest, returns principal / term. The rate is a percentage.
func AnnualDebtService(principal, ratePct float64, termYears int) float64 {
	if termYears <= 0 {
		return 0
	}
	rate := ratePct / 100
	if rate <= 0 {
		return principal / float64(termYears)
	}
	n := float64(termYears)
	factor := math.Pow(1+rate, n)
	return principal * rate * factor / (factor - 1)
}

// FinancingCosts is the total interest paid over the life of the loan.
func FinancingCosts(l project.LoanTerms) (float64, error) {
	if l.TermYears < 1 {
		return 0, fmt.Errorf("%w: loan term_years must be >= 1 (got %d)", ErrDegenerateInput, l.TermYears)
	}
	if l.Principal < 0 || l.InterestRate < 0 {
		return 0, fmt.Errorf("%w: loan principal and interest_rate must be >= 0", ErrDegenerateInput)
	}
	annual := AnnualDebtService(l.Principal, l.InterestRate, l.TermYears)
	return annual*float64(l.TermYears) - l.Principal, nil
}
