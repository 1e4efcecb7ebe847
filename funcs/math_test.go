package funcs_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mcrecipe/csvcache"
	"github.com/sarchlab/mcrecipe/errkind"
	"github.com/sarchlab/mcrecipe/funcs"
	"github.com/sarchlab/mcrecipe/registry"
	"github.com/sarchlab/mcrecipe/value"
)

func call(name string, args ...value.Value) ([]value.Value, error) {
	r := funcs.NewRegistry(csvcache.New())
	factory, err := r.Lookup(name)
	Expect(err).NotTo(HaveOccurred())
	return factory().Execute(&registry.Env{}, args)
}

var _ = Describe("variadic math", func() {
	It("left-folds add across scalars", func() {
		out, err := call("add", value.Scalar(1), value.Scalar(2), value.Scalar(3))
		Expect(err).NotTo(HaveOccurred())
		s, _ := out[0].AsScalar()
		Expect(s).To(Equal(6.0))
	})

	It("returns a single argument unchanged", func() {
		out, err := call("multiply", value.Scalar(42))
		Expect(err).NotTo(HaveOccurred())
		s, _ := out[0].AsScalar()
		Expect(s).To(Equal(42.0))
	})

	It("broadcasts scalar over vector", func() {
		out, err := call("add", value.VectorOf([]float64{10, 20, 30}), value.Scalar(5))
		Expect(err).NotTo(HaveOccurred())
		v, _ := out[0].AsVector()
		Expect(v).To(Equal([]float64{15.0, 25.0, 35.0}))
	})

	It("requires equal-length vectors", func() {
		_, err := call("add", value.VectorOf([]float64{1, 2}), value.VectorOf([]float64{1, 2, 3}))
		Expect(errkind.KindOf(err)).To(Equal(errkind.VectorSizeMismatch))
	})

	It("fails DivisionByZero", func() {
		_, err := call("divide", value.Scalar(10), value.Scalar(0))
		Expect(errkind.KindOf(err)).To(Equal(errkind.DivisionByZero))
	})

	It("rejects strings in arithmetic", func() {
		_, err := call("add", value.Scalar(1), value.Str("x"))
		Expect(errkind.KindOf(err)).To(Equal(errkind.MismatchedArgumentType))
	})

	It("fails LogOfNonPositive", func() {
		_, err := call("log", value.Scalar(0))
		Expect(errkind.KindOf(err)).To(Equal(errkind.LogOfNonPositive))
	})

	It("passes identity through unchanged", func() {
		out, err := call("identity", value.Scalar(7))
		Expect(err).NotTo(HaveOccurred())
		s, _ := out[0].AsScalar()
		Expect(s).To(Equal(7.0))
	})
})

var _ = Describe("comparisons and logicals", func() {
	It("compares scalars with __gt__", func() {
		out, _ := call("__gt__", value.Scalar(5), value.Scalar(3))
		b, _ := out[0].AsBool()
		Expect(b).To(BeTrue())
	})

	It("restricts bool operands to eq/neq", func() {
		_, err := call("__gt__", value.Bool(true), value.Bool(false))
		Expect(errkind.KindOf(err)).To(Equal(errkind.MismatchedArgumentType))
	})

	It("reports false for __eq__ on a type mismatch", func() {
		out, err := call("__eq__", value.Scalar(1), value.Bool(true))
		Expect(err).NotTo(HaveOccurred())
		b, _ := out[0].AsBool()
		Expect(b).To(BeFalse())
	})

	It("reports true for __neq__ on a type mismatch", func() {
		out, err := call("__neq__", value.Scalar(1), value.Bool(true))
		Expect(err).NotTo(HaveOccurred())
		b, _ := out[0].AsBool()
		Expect(b).To(BeTrue())
	})

	It("short-circuits __and__ on a false operand", func() {
		out, err := call("__and__", value.Bool(true), value.Bool(false), value.Bool(true))
		Expect(err).NotTo(HaveOccurred())
		b, _ := out[0].AsBool()
		Expect(b).To(BeFalse())
	})

	It("requires boolean operands for __and__", func() {
		_, err := call("__and__", value.Scalar(1))
		Expect(errkind.KindOf(err)).To(Equal(errkind.LogicalOperatorRequiresBoolean))
	})
})
