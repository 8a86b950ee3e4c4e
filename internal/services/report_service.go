package services

import (
	apperrors "grana/internal/errors"

	"github.com/shopspring/decimal"
)

// reportService joins ledger and budget outputs into report-ready
// aggregates. It holds no state of its own and never writes.
type reportService struct {
	users   UserServicer
	ledger  TransactionServicer
	budgets BudgetServicer
}

// NewReportService creates a new ReportServicer.
func NewReportService(users UserServicer, ledger TransactionServicer, budgets BudgetServicer) ReportServicer {
	return &reportService{users: users, ledger: ledger, budgets: budgets}
}

// MonthReport assembles the document-generator payload for one month: the
// user's display name, the period totals, and the transaction and budget
// views of that period. A month without activity yields zero totals and
// empty lists, not an error.
func (s *reportService) MonthReport(userID uint, month, year int) (*MonthReport, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	totals, err := s.ledger.ComputePeriodTotals(userID, month, year)
	if err != nil {
		return nil, err
	}
	transactions, err := s.ledger.ListPeriodTransactions(userID, month, year)
	if err != nil {
		return nil, err
	}
	budgets, err := s.budgets.ListBudgets(userID, month, year)
	if err != nil {
		return nil, err
	}

	return &MonthReport{
		UserName:     user.Name,
		Month:        month,
		Year:         year,
		Totals:       *totals,
		Transactions: transactions,
		Budgets:      budgets,
	}, nil
}

// YearOverview rolls the twelve months of a year into per-month totals,
// year-to-date sums, the best and worst month by balance, and the
// month-over-month balance change series.
func (s *reportService) YearOverview(userID uint, year int) (*YearOverview, error) {
	if year <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "year must be positive")
	}

	overview := &YearOverview{
		Year:       year,
		Months:     make([]MonthTotals, 0, 12),
		YTDIncome:  decimal.Zero,
		YTDExpense: decimal.Zero,
		YTDBalance: decimal.Zero,
		BestMonth:  1,
		WorstMonth: 1,
	}

	var best, worst decimal.Decimal
	var prevBalance decimal.Decimal

	for month := 1; month <= 12; month++ {
		totals, err := s.ledger.ComputePeriodTotals(userID, month, year)
		if err != nil {
			return nil, err
		}

		mt := MonthTotals{
			Month:        month,
			IncomeTotal:  totals.IncomeTotal,
			ExpenseTotal: totals.ExpenseTotal,
			Balance:      totals.Balance,
		}
		if month > 1 {
			mt.BalanceChange = totals.Balance.Sub(prevBalance)
		}
		prevBalance = totals.Balance

		overview.Months = append(overview.Months, mt)
		overview.YTDIncome = overview.YTDIncome.Add(totals.IncomeTotal)
		overview.YTDExpense = overview.YTDExpense.Add(totals.ExpenseTotal)

		if month == 1 {
			best = totals.Balance
			worst = totals.Balance
			continue
		}
		if totals.Balance.Cmp(best) > 0 {
			best = totals.Balance
			overview.BestMonth = month
		}
		if totals.Balance.Cmp(worst) < 0 {
			worst = totals.Balance
			overview.WorstMonth = month
		}
	}

	overview.YTDBalance = overview.YTDIncome.Sub(overview.YTDExpense)
	return overview, nil
}
