package logger

import (
	"bytes"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
)

var _ = Describe("logger", func() {
	var (
		base *logrus.Logger
		buf  *bytes.Buffer
	)
	BeforeEach(func() {
		base = logrus.New()
		buf = new(bytes.Buffer)
	})

	It("tags entries with the default prefix", func() {
		log := New(base, "maintenance")
		Expect(log.Data).To(HaveKeyWithValue("prefix", "maintenance"))
		Expect(log.WithPrefix("script").Data).To(HaveKeyWithValue("prefix", "script"))
		Expect(log.WithInstance("2oDvieFrVTi").Data).To(HaveKeyWithValue("instance", "2oDvieFrVTi"))
	})

	It("sets the level and writes prefixed output", func() {
		Expect(Setup(base, buf, "debug", false)).To(Succeed())
		Expect(base.GetLevel()).To(Equal(logrus.DebugLevel))

		New(base, "maintenance").Debug("state changed")
		Expect(buf.String()).To(ContainSubstring("maintenance"))
		Expect(buf.String()).To(ContainSubstring("state changed"))
	})

	It("keeps the level when none is given", func() {
		base.SetLevel(logrus.WarnLevel)
		Expect(Setup(base, buf, "", false)).To(Succeed())
		Expect(base.GetLevel()).To(Equal(logrus.WarnLevel))
	})

	It("rejects unknown levels", func() {
		Expect(Setup(base, buf, "chatty", false)).NotTo(Succeed())
	})
})

func TestLogger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Logger Test Suite")
}
