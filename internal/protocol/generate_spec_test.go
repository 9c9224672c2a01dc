package protocol_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aperez/cyclab/internal/protocol"
)

var _ = Describe("Generate", func() {
	Describe("ASCE-41", func() {
		It("repeats the first level three times at the rescaled amplitude", func() {
			seq, err := protocol.Generate(protocol.NewASCE41(1.0))
			Expect(err).NotTo(HaveOccurred())

			first := 0.0025 / 0.060
			Expect(seq.Disp[1]).To(BeNumerically("~", first, 1e-12))
			Expect(seq.Disp[2]).To(BeNumerically("~", -first, 1e-12))
			Expect(seq.Disp[3]).To(BeNumerically("~", first, 1e-12))
			Expect(seq.Disp[5]).To(BeNumerically("~", first, 1e-12))
			Expect(seq.Disp[7]).NotTo(BeNumerically("~", first, 1e-12))
		})

		It("emits 2*(6*3+3*2)+2 points", func() {
			seq, err := protocol.Generate(protocol.NewASCE41(1.0))
			Expect(err).NotTo(HaveOccurred())
			Expect(seq.NPoints()).To(Equal(2*24 + 2))
		})
	})

	Describe("FEMA-461", func() {
		It("terminates with the default growth ratio", func() {
			seq, err := protocol.Generate(protocol.NewFEMA461(1.0, protocol.DefaultAlpha))
			Expect(err).NotTo(HaveOccurred())
			Expect(seq.PeakAmplitude()).To(BeNumerically("<", 1.0))
		})

		It("emits more levels for smaller growth ratios", func() {
			slow, err := protocol.Generate(protocol.NewFEMA461(1.0, 0.1))
			Expect(err).NotTo(HaveOccurred())
			fast, err := protocol.Generate(protocol.NewFEMA461(1.0, protocol.DefaultAlpha))
			Expect(err).NotTo(HaveOccurred())
			Expect(slow.NPoints()).To(BeNumerically(">", fast.NPoints()))
		})
	})

	DescribeTable("rejects invalid parameters",
		func(spec protocol.Spec) {
			_, err := protocol.Generate(spec)
			Expect(err).To(MatchError(protocol.ErrInvalidParameter))
		},
		Entry("zero amplitude", protocol.NewASCE41(0)),
		Entry("negative amplitude", protocol.NewModifiedATC24(-2)),
		Entry("zero alpha", protocol.NewFEMA461(1, 0)),
	)
})
