package expense_test

import (
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/adikrishnan/expense-ledger/internal/expense"
)

var _ = Describe("Date", func() {
	It("should render as YYYY-MM-DD", func() {
		d := expense.NewDate(time.Date(2024, 3, 5, 17, 30, 0, 0, time.UTC))

		Expect(d.String()).To(Equal("2024-03-05"))
	})

	It("should drop the time component so same-day values compare equal", func() {
		morning := expense.NewDate(time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC))
		evening := expense.NewDate(time.Date(2024, 3, 5, 22, 0, 0, 0, time.UTC))

		Expect(morning.Equal(evening)).To(BeTrue())
	})

	It("should store and scan as a plain date string", func() {
		d, err := expense.ParseDate("2024-03-05")
		Expect(err).NotTo(HaveOccurred())

		value, err := d.Value()
		Expect(err).NotTo(HaveOccurred())
		Expect(value).To(Equal("2024-03-05"))

		var scanned expense.Date
		Expect(scanned.Scan("2024-03-05")).To(Succeed())
		Expect(scanned.Equal(d)).To(BeTrue())
	})

	It("should scan from a timestamp", func() {
		var scanned expense.Date
		Expect(scanned.Scan(time.Date(2024, 3, 5, 13, 45, 0, 0, time.UTC))).To(Succeed())

		Expect(scanned.String()).To(Equal("2024-03-05"))
	})

	It("should reject a source it cannot interpret", func() {
		var scanned expense.Date

		Expect(scanned.Scan(42)).NotTo(Succeed())
	})

	It("should marshal to and from a JSON string", func() {
		d, err := expense.ParseDate("2024-03-05")
		Expect(err).NotTo(HaveOccurred())

		out, err := json.Marshal(d)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(out)).To(Equal(`"2024-03-05"`))

		var roundTripped expense.Date
		Expect(json.Unmarshal(out, &roundTripped)).To(Succeed())
		Expect(roundTripped.Equal(d)).To(BeTrue())
	})
})
