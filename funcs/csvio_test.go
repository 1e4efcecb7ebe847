package funcs_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mcrecipe/errkind"
	"github.com/sarchlab/mcrecipe/value"
)

var _ = Describe("CSV readers", func() {
	var path string

	BeforeEach(func() {
		dir := GinkgoT().TempDir()
		path = filepath.Join(dir, "rates.csv")
		content := "year,rate\n1,0.05\n2,0.06\n3,0.07\n"
		Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
	})

	It("reads an entire column as a vector", func() {
		out, err := call("read_csv_vector", value.Str(path), value.Str("rate"))
		Expect(err).NotTo(HaveOccurred())
		v, _ := out[0].AsVector()
		Expect(v).To(Equal([]float64{0.05, 0.06, 0.07}))
	})

	It("reads a single cell as a scalar", func() {
		out, err := call("read_csv_scalar", value.Str(path), value.Str("rate"), value.Scalar(1))
		Expect(err).NotTo(HaveOccurred())
		s, _ := out[0].AsScalar()
		Expect(s).To(Equal(0.06))
	})

	It("fails CsvColumnNotFound for an unknown column", func() {
		_, err := call("read_csv_vector", value.Str(path), value.Str("nope"))
		Expect(errkind.KindOf(err)).To(Equal(errkind.CsvColumnNotFound))
	})

	It("fails CsvFileNotFound for a missing file", func() {
		_, err := call("read_csv_vector", value.Str(path+".missing"), value.Str("rate"))
		Expect(errkind.KindOf(err)).To(Equal(errkind.CsvFileNotFound))
	})

	It("fails CsvRowIndexOutOfBounds past the end", func() {
		_, err := call("read_csv_scalar", value.Str(path), value.Str("rate"), value.Scalar(99))
		Expect(errkind.KindOf(err)).To(Equal(errkind.CsvRowIndexOutOfBounds))
	})
})
