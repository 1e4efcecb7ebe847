package csvcache_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mcrecipe/csvcache"
	"github.com/sarchlab/mcrecipe/errkind"
)

func TestCsvcache(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Csvcache Suite")
}

func writeTempCSV(dir, name, contents string) string {
	path := filepath.Join(dir, name)
	Expect(os.WriteFile(path, []byte(contents), 0o644)).To(Succeed())
	return path
}

var _ = Describe("Cache", func() {
	It("parses a file on first read and reuses the cached table thereafter", func() {
		dir := GinkgoT().TempDir()
		path := writeTempCSV(dir, "rates.csv", "month,rate\n1,0.01\n2,0.02\n")

		c := csvcache.New()
		first, err := c.Get(path)
		Expect(err).NotTo(HaveOccurred())

		second, err := c.Get(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(BeIdenticalTo(first))
	})

	It("fails CsvFileNotFound on a missing path", func() {
		c := csvcache.New()
		_, err := c.Get(filepath.Join(GinkgoT().TempDir(), "nope.csv"))
		Expect(errkind.KindOf(err)).To(Equal(errkind.CsvFileNotFound))
	})
})

var _ = Describe("Table", func() {
	var table *csvcache.Table

	BeforeEach(func() {
		dir := GinkgoT().TempDir()
		path := writeTempCSV(dir, "rates.csv", "month,rate\n1,0.01\n2,0.02\n")
		c := csvcache.New()
		var err error
		table, err = c.Get(path)
		Expect(err).NotTo(HaveOccurred())
	})

	It("extracts a full column as floats", func() {
		v, err := table.FloatColumn("rate")
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal([]float64{0.01, 0.02}))
	})

	It("fails CsvColumnNotFound on an unknown column", func() {
		_, err := table.FloatColumn("nope")
		Expect(errkind.KindOf(err)).To(Equal(errkind.CsvColumnNotFound))
	})

	It("extracts a single cell by row and column", func() {
		v, err := table.FloatCell(1, "month")
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(2.0))
	})

	It("fails CsvRowIndexOutOfBounds on an out-of-range row", func() {
		_, err := table.FloatCell(5, "month")
		Expect(errkind.KindOf(err)).To(Equal(errkind.CsvRowIndexOutOfBounds))
	})

	It("fails CsvConversionError on a non-numeric cell", func() {
		dir := GinkgoT().TempDir()
		path := writeTempCSV(dir, "text.csv", "name\nalice\n")
		c := csvcache.New()
		t2, err := c.Get(path)
		Expect(err).NotTo(HaveOccurred())
		_, err = t2.FloatColumn("name")
		Expect(errkind.KindOf(err)).To(Equal(errkind.CsvConversionError))
	})
})
