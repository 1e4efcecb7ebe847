package funcs_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mcrecipe/errkind"
	"github.com/sarchlab/mcrecipe/value"
)

var _ = Describe("BlackScholes", func() {
	It("prices a call option as positive", func() {
		out, err := call("BlackScholes",
			value.Scalar(100), value.Scalar(100), value.Scalar(0.05),
			value.Scalar(1), value.Scalar(0.2), value.Str("call"))
		Expect(err).NotTo(HaveOccurred())
		price, _ := out[0].AsScalar()
		Expect(price).To(BeNumerically(">", 0))
	})

	It("accepts case-insensitive option types", func() {
		_, err := call("BlackScholes",
			value.Scalar(100), value.Scalar(100), value.Scalar(0.05),
			value.Scalar(1), value.Scalar(0.2), value.Str("PUT"))
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects an unknown option type", func() {
		_, err := call("BlackScholes",
			value.Scalar(100), value.Scalar(100), value.Scalar(0.05),
			value.Scalar(1), value.Scalar(0.2), value.Str("straddle"))
		Expect(errkind.KindOf(err)).To(Equal(errkind.InvalidSamplerParameters))
	})
})

var _ = Describe("SirModel", func() {
	It("returns three vectors of the requested length", func() {
		out, err := call("SirModel",
			value.Scalar(999), value.Scalar(1), value.Scalar(0),
			value.Scalar(0.3), value.Scalar(0.1), value.Scalar(5), value.Scalar(1))
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(HaveLen(3))
		s, _ := out[0].AsVector()
		i, _ := out[1].AsVector()
		r, _ := out[2].AsVector()
		Expect(s).To(HaveLen(5))
		Expect(i).To(HaveLen(5))
		Expect(r).To(HaveLen(5))
	})

	It("grows the infected compartment on the first Euler step of an outbreak", func() {
		out, err := call("SirModel",
			value.Scalar(999), value.Scalar(1), value.Scalar(0),
			value.Scalar(0.3), value.Scalar(0.1), value.Scalar(5), value.Scalar(1))
		Expect(err).NotTo(HaveOccurred())
		i, _ := out[1].AsVector()
		Expect(i[0]).To(Equal(1.0), "index 0 holds the initial state, not a stepped value")
		Expect(i[1]).To(BeNumerically("~", 1.1997, 0.01))
	})

	It("fails InvalidSamplerParameters when the total population is zero", func() {
		_, err := call("SirModel",
			value.Scalar(0), value.Scalar(0), value.Scalar(0),
			value.Scalar(0.3), value.Scalar(0.1), value.Scalar(5), value.Scalar(1))
		Expect(errkind.KindOf(err)).To(Equal(errkind.InvalidSamplerParameters))
	})

	It("never drives a compartment negative", func() {
		out, err := call("SirModel",
			value.Scalar(10), value.Scalar(5), value.Scalar(0),
			value.Scalar(2), value.Scalar(0.1), value.Scalar(50), value.Scalar(1))
		Expect(err).NotTo(HaveOccurred())
		for _, column := range out {
			v, _ := column.AsVector()
			for _, x := range v {
				Expect(x).To(BeNumerically(">=", 0))
			}
		}
	})
})
