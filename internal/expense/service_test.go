package expense_test

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/adikrishnan/expense-ledger/internal"
	"github.com/adikrishnan/expense-ledger/internal/expense"
)

// Mock repository for testing
type mockExpenseRepository struct {
	expenses        map[int64]*expense.Expense
	nextID          int64
	createError     error
	searchError     error
	updateError     error
	deleteRows      int64
	deleteError     error
	lastFilters     expense.ListFilters
	lastAssignments []expense.Assignment
	searchResult    []*expense.Expense
}

func newMockExpenseRepository() *mockExpenseRepository {
	return &mockExpenseRepository{
		expenses: make(map[int64]*expense.Expense),
		nextID:   1,
	}
}

func (m *mockExpenseRepository) Create(ctx context.Context, ownerID uuid.UUID, e *expense.Expense) (int64, error) {
	if m.createError != nil {
		return 0, m.createError
	}
	e.ID = m.nextID
	e.UserID = ownerID
	m.nextID++
	m.expenses[e.ID] = e
	return e.ID, nil
}

func (m *mockExpenseRepository) GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*expense.Expense, error) {
	e, exists := m.expenses[id]
	if !exists || e.UserID != ownerID {
		return nil, internal.ErrExpenseNotFound
	}
	return e, nil
}

func (m *mockExpenseRepository) Search(ctx context.Context, ownerID uuid.UUID, filters expense.ListFilters) ([]*expense.Expense, error) {
	if m.searchError != nil {
		return nil, m.searchError
	}
	m.lastFilters = filters
	return m.searchResult, nil
}

func (m *mockExpenseRepository) Update(ctx context.Context, ownerID uuid.UUID, id int64, assignments []expense.Assignment) (int64, error) {
	if m.updateError != nil {
		return 0, m.updateError
	}
	m.lastAssignments = assignments
	if _, exists := m.expenses[id]; !exists {
		return 0, nil
	}
	return 1, nil
}

func (m *mockExpenseRepository) Delete(ctx context.Context, ownerID uuid.UUID, id int64) (int64, error) {
	if m.deleteError != nil {
		return 0, m.deleteError
	}
	return m.deleteRows, nil
}

var _ = Describe("ExpenseService", func() {
	var (
		service   *expense.Service
		mockRepo  *mockExpenseRepository
		converter *mockConverter
		logger    *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = newMockExpenseRepository()
		converter = newMockConverter("83.0")
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = expense.NewService(mockRepo, converter, "INR", logger)
	})

	Describe("AddExpense", func() {
		Context("with a valid foreign-currency expense", func() {
			It("should store the converted base amount alongside the original", func() {
				dto := expense.AddExpenseDTO{
					ExpenseDate:    "2024-03-15",
					OriginalAmount: decimal.RequireFromString("100.00"),
					Currency:       "usd",
					Category:       "Food",
				}

				id, err := service.AddExpense(context.Background(), testOwner, dto)

				Expect(err).NotTo(HaveOccurred())
				Expect(id).To(BeNumerically(">", 0))

				stored := mockRepo.expenses[id]
				Expect(stored.Currency).To(Equal("USD"))
				Expect(stored.Category).To(Equal("food"))
				Expect(stored.BaseAmount.Equal(decimal.RequireFromString("8300.00"))).To(BeTrue())
				Expect(converter.lastFrom).To(Equal("USD"))
				Expect(converter.lastTo).To(Equal("INR"))
			})
		})

		Context("with a base-currency expense", func() {
			It("should store a base amount equal to the original amount", func() {
				dto := expense.AddExpenseDTO{
					ExpenseDate:    "2024-03-15",
					OriginalAmount: decimal.RequireFromString("250.00"),
					Currency:       "INR",
					Category:       "transport",
				}

				id, err := service.AddExpense(context.Background(), testOwner, dto)

				Expect(err).NotTo(HaveOccurred())
				stored := mockRepo.expenses[id]
				Expect(stored.BaseAmount.Equal(stored.OriginalAmount)).To(BeTrue())
			})
		})

		Context("with optional fields", func() {
			It("should normalize subcategory and description", func() {
				dto := expense.AddExpenseDTO{
					ExpenseDate:    "2024-03-15",
					OriginalAmount: decimal.RequireFromString("50.00"),
					Currency:       "INR",
					Category:       "food",
					Subcategory:    strPtr("  Groceries "),
					Description:    strPtr("Weekly Shop"),
				}

				id, err := service.AddExpense(context.Background(), testOwner, dto)

				Expect(err).NotTo(HaveOccurred())
				stored := mockRepo.expenses[id]
				Expect(*stored.Subcategory).To(Equal("groceries"))
				Expect(*stored.Description).To(Equal("weekly shop"))
			})
		})

		Context("when validation fails", func() {
			It("should reject a future date before converting or storing", func() {
				tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
				dto := expense.AddExpenseDTO{
					ExpenseDate:    tomorrow,
					OriginalAmount: decimal.RequireFromString("10.00"),
					Currency:       "INR",
					Category:       "food",
				}

				_, err := service.AddExpense(context.Background(), testOwner, dto)

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeFutureDateNotAllowed))
				Expect(converter.calls).To(Equal(0))
				Expect(mockRepo.expenses).To(BeEmpty())
			})

			It("should reject a non-positive amount", func() {
				dto := expense.AddExpenseDTO{
					ExpenseDate:    "2024-03-15",
					OriginalAmount: decimal.Zero,
					Currency:       "INR",
					Category:       "food",
				}

				_, err := service.AddExpense(context.Background(), testOwner, dto)

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidAmount))
			})

			It("should reject an empty category", func() {
				dto := expense.AddExpenseDTO{
					ExpenseDate:    "2024-03-15",
					OriginalAmount: decimal.RequireFromString("10.00"),
					Currency:       "INR",
					Category:       "  ",
				}

				_, err := service.AddExpense(context.Background(), testOwner, dto)

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeEmptyField))
			})
		})

		Context("when conversion fails", func() {
			It("should not store anything", func() {
				converter.convertError = internal.ErrConversionUnavailable
				dto := expense.AddExpenseDTO{
					ExpenseDate:    "2024-03-15",
					OriginalAmount: decimal.RequireFromString("10.00"),
					Currency:       "USD",
					Category:       "food",
				}

				_, err := service.AddExpense(context.Background(), testOwner, dto)

				Expect(err).To(MatchError(internal.ErrConversionUnavailable))
				Expect(mockRepo.expenses).To(BeEmpty())
			})
		})
	})

	Describe("ListExpenses", func() {
		Context("with filters that need normalization", func() {
			It("should pass normalized filters to the repository", func() {
				mockRepo.searchResult = []*expense.Expense{}
				filters := expense.ListFilters{
					Category: strPtr("  FOOD "),
					Currency: strPtr("usd"),
				}

				_, err := service.ListExpenses(context.Background(), testOwner, filters)

				Expect(err).NotTo(HaveOccurred())
				Expect(*mockRepo.lastFilters.Category).To(Equal("food"))
				Expect(*mockRepo.lastFilters.Currency).To(Equal("USD"))
			})
		})

		Context("with an invalid filter value", func() {
			It("should reject a malformed start date", func() {
				filters := expense.ListFilters{StartDate: strPtr("15-03-2024")}

				_, err := service.ListExpenses(context.Background(), testOwner, filters)

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidFormat))
				Expect(appErr.Field).To(Equal("start_date"))
			})

			It("should name the offending amount bound", func() {
				filters := expense.ListFilters{MinAmount: decPtr("-1.00")}

				_, err := service.ListExpenses(context.Background(), testOwner, filters)

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Field).To(Equal("min_amount"))
			})
		})
	})

	Describe("GetExpense", func() {
		It("should return the stored record", func() {
			stored := &expense.Expense{
				ID:       5,
				UserID:   testOwner,
				Category: "food",
			}
			mockRepo.expenses[5] = stored

			record, err := service.GetExpense(context.Background(), testOwner, 5)

			Expect(err).NotTo(HaveOccurred())
			Expect(record).To(Equal(stored))
		})

		It("should report a missing id as not found", func() {
			_, err := service.GetExpense(context.Background(), testOwner, 999)

			Expect(err).To(MatchError(internal.ErrExpenseNotFound))
		})
	})

	Describe("UpdateExpense", func() {
		BeforeEach(func() {
			mockRepo.expenses[3] = &expense.Expense{
				ID:             3,
				UserID:         testOwner,
				ExpenseDate:    expense.NewDate(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)),
				OriginalAmount: decimal.RequireFromString("42.50"),
				BaseAmount:     decimal.RequireFromString("3527.50"),
				Category:       "food",
				Currency:       "USD",
			}
		})

		Context("when the expense exists", func() {
			It("should apply the reconciled assignments", func() {
				dto := expense.UpdateExpenseDTO{Category: strPtr("transport")}

				rows, err := service.UpdateExpense(context.Background(), testOwner, 3, dto)

				Expect(err).NotTo(HaveOccurred())
				Expect(rows).To(Equal(int64(1)))
				Expect(mockRepo.lastAssignments).To(HaveLen(1))
				Expect(mockRepo.lastAssignments[0].Column).To(Equal(expense.ColumnCategory))
			})

			It("should recompute the base amount on a currency change", func() {
				dto := expense.UpdateExpenseDTO{
					OriginalAmount: decPtr("42.50"),
					Currency:       strPtr("EUR"),
				}

				_, err := service.UpdateExpense(context.Background(), testOwner, 3, dto)

				Expect(err).NotTo(HaveOccurred())
				_, ok := assignmentFor(mockRepo.lastAssignments, expense.ColumnBaseAmount)
				Expect(ok).To(BeTrue())
			})
		})

		Context("when the expense does not exist", func() {
			It("should return not found before reconciling", func() {
				dto := expense.UpdateExpenseDTO{Category: strPtr("transport")}

				_, err := service.UpdateExpense(context.Background(), testOwner, 999, dto)

				Expect(err).To(MatchError(internal.ErrExpenseNotFound))
			})
		})

		Context("when no fields are supplied", func() {
			It("should reject the request", func() {
				_, err := service.UpdateExpense(context.Background(), testOwner, 3, expense.UpdateExpenseDTO{})

				Expect(err).To(MatchError(internal.ErrNoChangesRequested))
			})
		})
	})

	Describe("DeleteExpense", func() {
		Context("when the row exists", func() {
			It("should report one affected row", func() {
				mockRepo.deleteRows = 1

				rows, err := service.DeleteExpense(context.Background(), testOwner, 3)

				Expect(err).NotTo(HaveOccurred())
				Expect(rows).To(Equal(int64(1)))
			})
		})

		Context("when nothing matches", func() {
			It("should map zero affected rows to not found", func() {
				mockRepo.deleteRows = 0

				_, err := service.DeleteExpense(context.Background(), testOwner, 999)

				Expect(err).To(MatchError(internal.ErrExpenseNotFound))
			})
		})
	})
})
