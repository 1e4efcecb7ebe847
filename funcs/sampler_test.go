package funcs_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mcrecipe/csvcache"
	"github.com/sarchlab/mcrecipe/errkind"
	"github.com/sarchlab/mcrecipe/funcs"
	"github.com/sarchlab/mcrecipe/registry"
	"github.com/sarchlab/mcrecipe/value"
)

func sample(name string, env *registry.Env, args ...value.Value) (float64, error) {
	r := funcs.NewRegistry(csvcache.New())
	factory, err := r.Lookup(name)
	Expect(err).NotTo(HaveOccurred())
	out, err := factory().Execute(env, args)
	if err != nil {
		return 0, err
	}
	return out[0].AsScalar()
}

var _ = Describe("samplers", func() {
	var env *registry.Env

	BeforeEach(func() {
		env = &registry.Env{Rand: rand.New(rand.NewSource(1))}
	})

	It("draws Uniform samples whose mean converges near the midpoint", func() {
		sum := 0.0
		const n = 20000
		for i := 0; i < n; i++ {
			s, err := sample("Uniform", env, value.Scalar(-10), value.Scalar(10))
			Expect(err).NotTo(HaveOccurred())
			sum += s
		}
		mean := sum / n
		Expect(mean).To(BeNumerically("~", 0, 0.5))
	})

	It("draws Bernoulli samples as 0 or 1", func() {
		s, err := sample("Bernoulli", env, value.Scalar(0.5))
		Expect(err).NotTo(HaveOccurred())
		Expect(s == 0 || s == 1).To(BeTrue())
	})

	It("draws Normal samples", func() {
		_, err := sample("Normal", env, value.Scalar(0), value.Scalar(1))
		Expect(err).NotTo(HaveOccurred())
	})

	It("draws Lognormal samples that are always positive", func() {
		s, err := sample("Lognormal", env, value.Scalar(0), value.Scalar(1))
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(BeNumerically(">", 0))
	})

	It("draws Beta samples within [0,1]", func() {
		s, err := sample("Beta", env, value.Scalar(2), value.Scalar(5))
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(BeNumerically(">=", 0))
		Expect(s).To(BeNumerically("<=", 1))
	})

	It("rejects non-positive Beta parameters", func() {
		_, err := sample("Beta", env, value.Scalar(0), value.Scalar(5))
		Expect(errkind.KindOf(err)).To(Equal(errkind.InvalidSamplerParameters))
	})

	It("draws Pert samples within [min,max]", func() {
		s, err := sample("Pert", env, value.Scalar(1), value.Scalar(5), value.Scalar(10))
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(BeNumerically(">=", 1))
		Expect(s).To(BeNumerically("<=", 10))
	})

	It("draws Triangular samples within [min,max]", func() {
		for i := 0; i < 200; i++ {
			s, err := sample("Triangular", env, value.Scalar(1), value.Scalar(5), value.Scalar(10))
			Expect(err).NotTo(HaveOccurred())
			Expect(s).To(BeNumerically(">=", 1))
			Expect(s).To(BeNumerically("<=", 10))
		}
	})

	It("rejects a degenerate Triangular range", func() {
		_, err := sample("Triangular", env, value.Scalar(5), value.Scalar(5), value.Scalar(5))
		Expect(errkind.KindOf(err)).To(Equal(errkind.InvalidSamplerParameters))
	})
})
