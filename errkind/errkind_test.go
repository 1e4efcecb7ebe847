package errkind_test

import (
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mcrecipe/errkind"
)

func TestErrkind(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Errkind Suite")
}

var _ = Describe("Error", func() {
	It("formats without a line when unset", func() {
		err := errkind.New(errkind.DivisionByZero, "divide by zero")
		Expect(err.Error()).To(Equal("divide by zero"))
	})

	It("formats with an L-prefix when a line is set", func() {
		err := errkind.NewAt(errkind.DivisionByZero, 7, "divide by zero")
		Expect(err.Error()).To(Equal("L7: divide by zero"))
	})

	It("preserves Kind through WrapCall", func() {
		inner := errkind.New(errkind.DivisionByZero, "divide by zero")
		wrapped := errkind.WrapCall(inner, "divide", 3)
		Expect(errkind.KindOf(wrapped)).To(Equal(errkind.DivisionByZero))
		Expect(wrapped.Error()).To(Equal("L3: In function 'divide': divide by zero"))
	})

	It("preserves Kind through WrapNested", func() {
		inner := errkind.New(errkind.UnknownFunction, "bogus")
		wrapped := errkind.WrapNested(inner, "outer", 9)
		Expect(errkind.KindOf(wrapped)).To(Equal(errkind.UnknownFunction))
		Expect(wrapped.Error()).To(Equal("L9: In nested function 'outer': bogus"))
	})

	It("defaults KindOf to UnknownError for plain errors", func() {
		Expect(errkind.KindOf(errors.New("plain"))).To(Equal(errkind.UnknownError))
	})
})
