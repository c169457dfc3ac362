package accounting

import (
	"fmt"
	"sort"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the largest debit/credit difference still treated as balanced.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// CalculateSignedAmount returns the effect of a line on its account's balance.
// This is used in both services and repositories to ensure consistent accounting logic.
func CalculateSignedAmount(line domain.VoucherLine, accountType domain.AccountType) (decimal.Decimal, error) {
	// DEBIT to ASSET/EXPENSE -> Positive (+)
	// CREDIT to ASSET/EXPENSE -> Negative (-)
	// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
	// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
	switch accountType {
	case domain.Asset, domain.Expense:
		return line.Debit.Sub(line.Credit), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return line.Credit.Sub(line.Debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, line.AccountID)
	}
}

// CalculateBalanceChanges nets the signed effect of lines per account.
func CalculateBalanceChanges(lines []domain.VoucherLine, accounts map[string]domain.Account) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal)
	for _, line := range lines {
		acc, ok := accounts[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("account %s missing for balance calculation", line.AccountID)
		}
		signed, err := CalculateSignedAmount(line, acc.AccountType)
		if err != nil {
			return nil, err
		}
		changes[line.AccountID] = changes[line.AccountID].Add(signed)
	}
	return changes, nil
}

// ApplyRunningBalances returns a copy of lines ordered by line number, each
// stamped with its account's balance after the line. Opening balances are the
// balances held in accounts.
func ApplyRunningBalances(lines []domain.VoucherLine, accounts map[string]domain.Account) ([]domain.VoucherLine, error) {
	stamped := make([]domain.VoucherLine, len(lines))
	copy(stamped, lines)
	sort.SliceStable(stamped, func(i, j int) bool { return stamped[i].LineNo < stamped[j].LineNo })

	running := make(map[string]decimal.Decimal, len(accounts))
	for i := range stamped {
		acc, ok := accounts[stamped[i].AccountID]
		if !ok {
			return nil, fmt.Errorf("account %s missing for running balance", stamped[i].AccountID)
		}
		if _, seen := running[acc.AccountID]; !seen {
			running[acc.AccountID] = acc.Balance
		}
		signed, err := CalculateSignedAmount(stamped[i], acc.AccountType)
		if err != nil {
			return nil, err
		}
		running[acc.AccountID] = running[acc.AccountID].Add(signed)
		stamped[i].RunningBalance = running[acc.AccountID]
	}
	return stamped, nil
}

// SumDebits adds up the debit side of lines.
func SumDebits(lines []domain.VoucherLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Debit)
	}
	return total
}

// SumCredits adds up the credit side of lines.
func SumCredits(lines []domain.VoucherLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Credit)
	}
	return total
}

// IsBalanced reports whether debits and credits of lines agree within BalanceTolerance.
func IsBalanced(lines []domain.VoucherLine) bool {
	diff := SumDebits(lines).Sub(SumCredits(lines)).Abs()
	return diff.LessThan(BalanceTolerance)
}
