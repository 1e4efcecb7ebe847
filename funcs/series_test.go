package funcs_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mcrecipe/errkind"
	"github.com/sarchlab/mcrecipe/value"
)

var _ = Describe("series operations", func() {
	It("grows a series by a constant rate", func() {
		out, err := call("grow_series", value.Scalar(100), value.Scalar(0.1), value.Scalar(3))
		Expect(err).NotTo(HaveOccurred())
		v, _ := out[0].AsVector()
		Expect(v[0]).To(BeNumerically("~", 110.0, 1e-9))
		Expect(v[1]).To(BeNumerically("~", 121.0, 1e-9))
		Expect(v[2]).To(BeNumerically("~", 133.1, 1e-9))
	})

	It("compounds a series against a vector of per-period rates", func() {
		out, err := call("compound_series", value.Scalar(100), value.VectorOf([]float64{0.1, 0.1}))
		Expect(err).NotTo(HaveOccurred())
		v, _ := out[0].AsVector()
		Expect(v).To(HaveExactElements(BeNumerically("~", 110.0, 1e-9), BeNumerically("~", 121.0, 1e-9)))
	})

	It("computes npv as a discounted sum", func() {
		out, err := call("npv", value.Scalar(0), value.VectorOf([]float64{10, 10, 10}))
		Expect(err).NotTo(HaveOccurred())
		s, _ := out[0].AsScalar()
		Expect(s).To(Equal(30.0))
	})

	It("sums a series", func() {
		out, err := call("sum_series", value.VectorOf([]float64{1, 2, 3}))
		Expect(err).NotTo(HaveOccurred())
		s, _ := out[0].AsScalar()
		Expect(s).To(Equal(6.0))
	})

	It("supports negative indices on get_element", func() {
		out, err := call("get_element", value.VectorOf([]float64{1, 2, 3}), value.Scalar(-1))
		Expect(err).NotTo(HaveOccurred())
		s, _ := out[0].AsScalar()
		Expect(s).To(Equal(3.0))
	})

	It("fails EmptyVectorOperation on get_element of an empty vector", func() {
		_, err := call("get_element", value.VectorOf(nil), value.Scalar(0))
		Expect(errkind.KindOf(err)).To(Equal(errkind.EmptyVectorOperation))
	})

	It("fails IndexOutOfBounds past the end", func() {
		_, err := call("get_element", value.VectorOf([]float64{1, 2}), value.Scalar(5))
		Expect(errkind.KindOf(err)).To(Equal(errkind.IndexOutOfBounds))
	})

	It("deletes an element, shrinking the vector by one", func() {
		out, err := call("delete_element", value.VectorOf([]float64{1, 2, 3}), value.Scalar(1))
		Expect(err).NotTo(HaveOccurred())
		v, _ := out[0].AsVector()
		Expect(v).To(Equal([]float64{1.0, 3.0}))
	})

	It("computes series_delta as length-(n-1) first differences", func() {
		out, err := call("series_delta", value.VectorOf([]float64{1, 3, 6}))
		Expect(err).NotTo(HaveOccurred())
		v, _ := out[0].AsVector()
		Expect(v).To(Equal([]float64{2.0, 3.0}))
	})

	It("composes scalars and vectors into one vector", func() {
		out, err := call("compose_vector", value.Scalar(1), value.VectorOf([]float64{2, 3}), value.Scalar(4))
		Expect(err).NotTo(HaveOccurred())
		v, _ := out[0].AsVector()
		Expect(v).To(Equal([]float64{1.0, 2.0, 3.0, 4.0}))
	})

	It("interpolates linearly between two endpoints", func() {
		out, err := call("interpolate_series", value.Scalar(0), value.Scalar(10), value.Scalar(3))
		Expect(err).NotTo(HaveOccurred())
		v, _ := out[0].AsVector()
		Expect(v).To(Equal([]float64{0.0, 5.0, 10.0}))
	})

	It("returns just the endpoint when n == 1", func() {
		out, err := call("interpolate_series", value.Scalar(0), value.Scalar(10), value.Scalar(1))
		Expect(err).NotTo(HaveOccurred())
		v, _ := out[0].AsVector()
		Expect(v).To(Equal([]float64{10.0}))
	})

	It("returns an empty vector when n < 1", func() {
		out, err := call("interpolate_series", value.Scalar(0), value.Scalar(10), value.Scalar(0))
		Expect(err).NotTo(HaveOccurred())
		v, _ := out[0].AsVector()
		Expect(v).To(BeEmpty())
	})

	It("capitalize_expense returns both the asset and the amortization", func() {
		out, err := call("capitalize_expense", value.Scalar(0), value.VectorOf([]float64{100, 100}), value.Scalar(2))
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(HaveLen(2))
		asset, _ := out[0].AsScalar()
		amort, _ := out[1].AsScalar()
		Expect(asset).To(BeNumerically(">=", 0))
		Expect(amort).To(BeNumerically(">", 0))
	})
})
