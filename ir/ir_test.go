package ir_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mcrecipe/ir"
)

func TestIr(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ir Suite")
}

var _ = Describe("VariableRegistry", func() {
	It("assigns slots in first-appearance order", func() {
		r := ir.NewVariableRegistry()
		Expect(r.SlotFor("A")).To(Equal(0))
		Expect(r.SlotFor("B")).To(Equal(1))
		Expect(r.SlotFor("A")).To(Equal(0), "re-declaring A must return its original slot")
		Expect(r.Len()).To(Equal(2))
	})

	It("reports Lookup misses without assigning a slot", func() {
		r := ir.NewVariableRegistry()
		_, ok := r.Lookup("missing")
		Expect(ok).To(BeFalse())
		Expect(r.Len()).To(Equal(0))
	})
})
