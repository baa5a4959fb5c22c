package product

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("product version", func() {
	var major, minor, patch, build string
	BeforeEach(func() {
		major, minor, patch, build = VERSION_MAJOR, VERSION_MINOR, VERSION_PATCH, BUILD
		DeferCleanup(func() {
			VERSION_MAJOR, VERSION_MINOR, VERSION_PATCH, BUILD = major, minor, patch, build
		})
	})

	It("reads the Makefile version assignments", func() {
		parseVersionFile("# comment\nVERSION_MAJOR := 1\nVERSION_MINOR := 4\nVERSION_PATCH := 2\nOTHER := x\n")
		Expect(VERSION_MAJOR).To(Equal("1"))
		Expect(VERSION_MINOR).To(Equal("4"))
		Expect(VERSION_PATCH).To(Equal("2"))
	})

	It("ignores lines without an assignment", func() {
		parseVersionFile("VERSION_MAJOR 9\n")
		Expect(VERSION_MAJOR).To(Equal(major))
	})

	When("built from a source checkout", func() {
		var dir string
		BeforeEach(func() {
			var err error
			dir, err = os.MkdirTemp("", "product")
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(os.RemoveAll, dir)
			Expect(os.WriteFile(filepath.Join(dir, "VERSION"), []byte("VERSION_MAJOR := 2\nVERSION_MINOR := 0\nVERSION_PATCH := 7\n"), 0644)).To(Succeed())
		})

		It("takes the build hash from HEAD", func() {
			repo, err := git.PlainInit(dir, false)
			Expect(err).NotTo(HaveOccurred())
			wt, err := repo.Worktree()
			Expect(err).NotTo(HaveOccurred())
			_, err = wt.Add("VERSION")
			Expect(err).NotTo(HaveOccurred())
			head, err := wt.Commit("release 2.0.7", &git.CommitOptions{
				Author: &object.Signature{Name: "maintainer", Email: "maintainer@cern.ch", When: time.Now()},
			})
			Expect(err).NotTo(HaveOccurred())

			BUILD = ""
			fillFromSourceTree(dir)
			Expect(VERSION_MAJOR).To(Equal("2"))
			Expect(VERSION_PATCH).To(Equal("7"))
			Expect(BUILD).To(Equal(head.String()[:7]))
		})

		It("leaves the build hash empty outside a repository", func() {
			BUILD = ""
			fillFromSourceTree(dir)
			Expect(VERSION_MINOR).To(Equal("0"))
			Expect(BUILD).To(BeEmpty())
		})
	})

	It("always has a version string", func() {
		Expect(VERSION).NotTo(BeEmpty())
		Expect(VERSION_BUILD).To(HavePrefix(VERSION))
	})
})

func TestProduct(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Product Test Suite")
}
