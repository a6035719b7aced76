package expense_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/adikrishnan/expense-ledger/internal"
	"github.com/adikrishnan/expense-ledger/internal/expense"
)

// Mock converter for testing
type mockConverter struct {
	rate         decimal.Decimal
	convertError error
	calls        int
	lastFrom     string
	lastTo       string
}

func newMockConverter(rate string) *mockConverter {
	return &mockConverter{rate: decimal.RequireFromString(rate)}
}

func (m *mockConverter) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	m.calls++
	m.lastFrom = from
	m.lastTo = to
	if m.convertError != nil {
		return decimal.Zero, m.convertError
	}
	if from == to {
		return amount, nil
	}
	return m.rate.Mul(amount).Round(2), nil
}

func assignmentFor(assignments []expense.Assignment, column string) (expense.Assignment, bool) {
	for _, a := range assignments {
		if a.Column == column {
			return a, true
		}
	}
	return expense.Assignment{}, false
}

var _ = Describe("Reconciler", func() {
	var (
		reconciler *expense.Reconciler
		converter  *mockConverter
		current    *expense.Expense
	)

	BeforeEach(func() {
		converter = newMockConverter("83.0")
		reconciler = expense.NewReconciler(converter, "INR")

		current = &expense.Expense{
			ID:             1,
			ExpenseDate:    expense.NewDate(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)),
			OriginalAmount: decimal.RequireFromString("42.50"),
			BaseAmount:     decimal.RequireFromString("3527.50"),
			Category:       "food",
			Currency:       "USD",
		}
	})

	Context("with an empty update", func() {
		It("should reject a request with no fields at all", func() {
			_, err := reconciler.Reconcile(context.Background(), current, expense.UpdateExpenseDTO{})

			Expect(err).To(MatchError(internal.ErrNoChangesRequested))
		})
	})

	Context("with half of the amount/currency pair", func() {
		It("should reject an amount without a currency", func() {
			dto := expense.UpdateExpenseDTO{OriginalAmount: decPtr("99.00")}

			_, err := reconciler.Reconcile(context.Background(), current, dto)

			Expect(err).To(MatchError(internal.ErrMissingPairedField))
		})

		It("should reject a currency without an amount", func() {
			dto := expense.UpdateExpenseDTO{Currency: strPtr("EUR")}

			_, err := reconciler.Reconcile(context.Background(), current, dto)

			Expect(err).To(MatchError(internal.ErrMissingPairedField))
		})

		It("should apply the pairing rule even when other fields are present", func() {
			dto := expense.UpdateExpenseDTO{
				Category: strPtr("transport"),
				Currency: strPtr("EUR"),
			}

			_, err := reconciler.Reconcile(context.Background(), current, dto)

			Expect(err).To(MatchError(internal.ErrMissingPairedField))
		})
	})

	Context("when the new value equals the stored value", func() {
		It("should reject an identical date", func() {
			dto := expense.UpdateExpenseDTO{ExpenseDate: strPtr("2024-03-15")}

			_, err := reconciler.Reconcile(context.Background(), current, dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeNoEffectiveChange))
		})

		It("should reject an identical category after normalization", func() {
			dto := expense.UpdateExpenseDTO{Category: strPtr("  FOOD ")}

			_, err := reconciler.Reconcile(context.Background(), current, dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeNoEffectiveChange))
		})

		It("should reject an identical amount and currency pair", func() {
			dto := expense.UpdateExpenseDTO{
				OriginalAmount: decPtr("42.50"),
				Currency:       strPtr("usd"),
			}

			_, err := reconciler.Reconcile(context.Background(), current, dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeNoEffectiveChange))
			Expect(converter.calls).To(Equal(0))
		})
	})

	Context("when only the amount changes", func() {
		It("should recompute the base amount alongside the new amount", func() {
			dto := expense.UpdateExpenseDTO{
				OriginalAmount: decPtr("100.00"),
				Currency:       strPtr("USD"),
			}

			assignments, err := reconciler.Reconcile(context.Background(), current, dto)

			Expect(err).NotTo(HaveOccurred())

			amount, ok := assignmentFor(assignments, expense.ColumnOriginalAmount)
			Expect(ok).To(BeTrue())
			Expect(amount.Value.(decimal.Decimal).Equal(decimal.RequireFromString("100.00"))).To(BeTrue())

			_, ok = assignmentFor(assignments, expense.ColumnCurrency)
			Expect(ok).To(BeFalse())

			base, ok := assignmentFor(assignments, expense.ColumnBaseAmount)
			Expect(ok).To(BeTrue())
			Expect(base.Value.(decimal.Decimal).Equal(decimal.RequireFromString("8300.00"))).To(BeTrue())
			Expect(converter.lastFrom).To(Equal("USD"))
			Expect(converter.lastTo).To(Equal("INR"))
		})
	})

	Context("when only the currency changes", func() {
		It("should recompute the base amount from the stored amount and new currency", func() {
			dto := expense.UpdateExpenseDTO{
				OriginalAmount: decPtr("42.50"),
				Currency:       strPtr("EUR"),
			}

			assignments, err := reconciler.Reconcile(context.Background(), current, dto)

			Expect(err).NotTo(HaveOccurred())

			_, ok := assignmentFor(assignments, expense.ColumnOriginalAmount)
			Expect(ok).To(BeFalse())

			code, ok := assignmentFor(assignments, expense.ColumnCurrency)
			Expect(ok).To(BeTrue())
			Expect(code.Value).To(Equal("EUR"))

			_, ok = assignmentFor(assignments, expense.ColumnBaseAmount)
			Expect(ok).To(BeTrue())
			Expect(converter.lastFrom).To(Equal("EUR"))
		})
	})

	Context("when the new currency is the base currency", func() {
		It("should set the base amount equal to the new amount", func() {
			dto := expense.UpdateExpenseDTO{
				OriginalAmount: decPtr("500.00"),
				Currency:       strPtr("INR"),
			}

			assignments, err := reconciler.Reconcile(context.Background(), current, dto)

			Expect(err).NotTo(HaveOccurred())

			base, ok := assignmentFor(assignments, expense.ColumnBaseAmount)
			Expect(ok).To(BeTrue())
			Expect(base.Value.(decimal.Decimal).Equal(decimal.RequireFromString("500.00"))).To(BeTrue())
		})
	})

	Context("when the converter fails", func() {
		It("should abort without producing assignments", func() {
			converter.convertError = internal.ErrConversionUnavailable
			dto := expense.UpdateExpenseDTO{
				OriginalAmount: decPtr("100.00"),
				Currency:       strPtr("USD"),
			}

			assignments, err := reconciler.Reconcile(context.Background(), current, dto)

			Expect(err).To(HaveOccurred())
			Expect(assignments).To(BeNil())
		})
	})

	Context("with text field changes", func() {
		It("should normalize and assign a new category", func() {
			dto := expense.UpdateExpenseDTO{Category: strPtr("  Transport ")}

			assignments, err := reconciler.Reconcile(context.Background(), current, dto)

			Expect(err).NotTo(HaveOccurred())
			Expect(assignments).To(HaveLen(1))
			Expect(assignments[0].Column).To(Equal(expense.ColumnCategory))
			Expect(assignments[0].Value).To(Equal("transport"))
		})

		It("should assign a subcategory when none is stored", func() {
			dto := expense.UpdateExpenseDTO{Subcategory: strPtr("Groceries")}

			assignments, err := reconciler.Reconcile(context.Background(), current, dto)

			Expect(err).NotTo(HaveOccurred())
			Expect(assignments).To(HaveLen(1))
			Expect(assignments[0].Value).To(Equal("groceries"))
		})

		It("should reject a blank description", func() {
			dto := expense.UpdateExpenseDTO{Description: strPtr("   ")}

			_, err := reconciler.Reconcile(context.Background(), current, dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeEmptyField))
		})
	})

	Context("with invalid field values", func() {
		It("should reject a future date", func() {
			tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
			dto := expense.UpdateExpenseDTO{ExpenseDate: strPtr(tomorrow)}

			_, err := reconciler.Reconcile(context.Background(), current, dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeFutureDateNotAllowed))
		})

		It("should reject an amount with more than two decimal places", func() {
			dto := expense.UpdateExpenseDTO{
				OriginalAmount: decPtr("10.005"),
				Currency:       strPtr("USD"),
			}

			_, err := reconciler.Reconcile(context.Background(), current, dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidAmount))
		})

		It("should reject an unsupported currency", func() {
			dto := expense.UpdateExpenseDTO{
				OriginalAmount: decPtr("10.00"),
				Currency:       strPtr("XYZ"),
			}

			_, err := reconciler.Reconcile(context.Background(), current, dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeUnsupportedCurrency))
		})
	})

	Context("with several fields changing at once", func() {
		It("should produce assignments in a deterministic column order", func() {
			dto := expense.UpdateExpenseDTO{
				Description:    strPtr("team lunch"),
				Category:       strPtr("transport"),
				ExpenseDate:    strPtr("2024-02-01"),
				OriginalAmount: decPtr("60.00"),
				Currency:       strPtr("EUR"),
			}

			assignments, err := reconciler.Reconcile(context.Background(), current, dto)

			Expect(err).NotTo(HaveOccurred())

			columns := make([]string, len(assignments))
			for i, a := range assignments {
				columns[i] = a.Column
			}
			Expect(columns).To(Equal([]string{
				expense.ColumnExpenseDate,
				expense.ColumnOriginalAmount,
				expense.ColumnCurrency,
				expense.ColumnBaseAmount,
				expense.ColumnCategory,
				expense.ColumnDescription,
			}))
		})
	})
})
