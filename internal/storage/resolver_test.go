package storage_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"spotcheck.app/survey/internal/storage"
)

var _ = Describe("Resolver", func() {
	r := storage.NewResolver("https://cdn.example.com/", "images")

	Describe("PublicURL", func() {
		It("joins base, bucket, and path", func() {
			Expect(r.PublicURL("main/cat-101.png")).
				To(Equal("https://cdn.example.com/images/main/cat-101.png"))
		})

		It("strips a redundant bucket prefix from the stored path", func() {
			Expect(r.PublicURL("images/main/cat-101.png")).
				To(Equal("https://cdn.example.com/images/main/cat-101.png"))
		})
	})

	Describe("AltURL", func() {
		It("drops the trailing id suffix from the file name", func() {
			alt, ok := r.AltURL("images/main/cat-101.png")
			Expect(ok).To(BeTrue())
			Expect(alt).To(Equal("https://cdn.example.com/images/main/cat.png"))
		})

		It("only strips a suffix directly before the extension", func() {
			alt, ok := r.AltURL("images/main/cat-101-final.png")
			Expect(ok).To(BeFalse())
			Expect(alt).To(BeEmpty())
		})

		It("reports no fallback when the name carries no suffix", func() {
			_, ok := r.AltURL("images/main/dog.png")
			Expect(ok).To(BeFalse())
		})

		It("keeps directory id-like segments intact", func() {
			alt, ok := r.AltURL("images/batch-7/cat-12.jpeg")
			Expect(ok).To(BeTrue())
			Expect(alt).To(Equal("https://cdn.example.com/images/batch-7/cat.jpeg"))
		})
	})
})
