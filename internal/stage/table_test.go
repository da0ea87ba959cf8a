package stage_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ffeval/internal/ff"
	"github.com/san-kum/ffeval/internal/stage"
)

var _ = Describe("IndexTable", func() {
	It("pads short rows with the sentinel", func() {
		t, err := stage.NewIndexTable([][]int{{4, 7}, {}, {9}})
		Expect(err).NotTo(HaveOccurred())
		Expect(t.Rows()).To(Equal(3))
		Expect(t.Width()).To(Equal(2))
		Expect(t.At(1, 0)).To(Equal(stage.Sentinel))
		Expect(t.At(2, 1)).To(Equal(stage.Sentinel))
		Expect(t.Row(0)).To(Equal([]int{4, 7}))
		Expect(t.Row(1)).To(BeEmpty())
	})

	It("has width one and only sentinels when every row is empty", func() {
		t, err := stage.NewIndexTable(make([][]int, 3))
		Expect(err).NotTo(HaveOccurred())
		Expect(t.Width()).To(Equal(1))
		for i := 0; i < 3; i++ {
			Expect(t.At(i, 0)).To(Equal(stage.Sentinel))
			Expect(t.Find(i, 0)).To(Equal(-1))
		}
	})

	It("finds entries before the first sentinel only", func() {
		t, err := stage.NewIndexTable([][]int{{2, 5}, {3}})
		Expect(err).NotTo(HaveOccurred())
		Expect(t.Find(0, 5)).To(Equal(1))
		Expect(t.Find(1, 3)).To(Equal(0))
		Expect(t.Find(1, stage.Sentinel)).To(Equal(-1))
	})

	It("rejects negative indices", func() {
		_, err := stage.NewIndexTable([][]int{{1, -1}})
		Expect(err).To(MatchError(ff.ErrMalformedTopology))
	})
})

var _ = Describe("ValueTable", func() {
	It("pads with NaN", func() {
		t, err := stage.NewValueTable([][]float64{{1, 2, 3}, {4}})
		Expect(err).NotTo(HaveOccurred())
		Expect(t.Width()).To(Equal(3))
		Expect(t.At(1, 0)).To(Equal(4.0))
		Expect(math.IsNaN(t.At(1, 1))).To(BeTrue())
		Expect(t.Row(1)).To(HaveLen(3))
	})

	It("rejects NaN values", func() {
		_, err := stage.NewValueTable([][]float64{{math.NaN()}})
		Expect(err).To(MatchError(ff.ErrMalformedTopology))
	})
})
