package auth

import (
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/mindgraphix/platform/internal"
)

var _ = ginkgo.Describe("TokenGenerator", func() {
	var gen *TokenGenerator

	ginkgo.BeforeEach(func() {
		gen = NewTokenGenerator(testSecurityConfig())
	})

	ginkgo.Describe("VerifyToken", func() {
		ginkgo.It("should round-trip the subject claim", func() {
			token, err := gen.GenerateAccessToken("user@example.com")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			subject, err := gen.VerifyToken(token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(subject).To(gomega.Equal("user@example.com"))
		})

		ginkgo.It("should reject an expired token", func() {
			token, err := gen.GenerateAccessTokenWithTTL("user@example.com", -1*time.Minute)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = gen.VerifyToken(token)
			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
		})

		ginkgo.It("should reject a token signed with a different secret", func() {
			otherCfg := testSecurityConfig()
			otherCfg.TokenSecret = "other-secret"
			other := NewTokenGenerator(otherCfg)

			token, err := other.GenerateAccessToken("user@example.com")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = gen.VerifyToken(token)
			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
		})

		ginkgo.It("should reject garbage without panicking", func() {
			for _, input := range []string{"", "garbage", "a.b.c", "....."} {
				_, err := gen.VerifyToken(input)
				gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
			}
		})

		ginkgo.It("should reject a token with an empty subject", func() {
			token, err := gen.GenerateAccessToken("")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = gen.VerifyToken(token)
			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
		})

		ginkgo.It("should collapse all failure modes into the same outcome", func() {
			expired, _ := gen.GenerateAccessTokenWithTTL("user@example.com", -1*time.Minute)
			valid, _ := gen.GenerateAccessToken("user@example.com")

			_, errExpired := gen.VerifyToken(expired)
			_, errTampered := gen.VerifyToken(valid + "x")
			_, errGarbage := gen.VerifyToken("garbage")

			gomega.Expect(errExpired).To(gomega.Equal(errTampered))
			gomega.Expect(errTampered).To(gomega.Equal(errGarbage))
		})
	})

	ginkgo.Describe("RotateAccessToken", func() {
		ginkgo.It("should mint a new token for the same subject", func() {
			refresh, err := gen.GenerateRefreshToken("user@example.com")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			access, err := gen.RotateAccessToken(refresh)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			subject, err := gen.VerifyToken(access)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(subject).To(gomega.Equal("user@example.com"))
		})

		ginkgo.It("should accept the same refresh token repeatedly", func() {
			refresh, err := gen.GenerateRefreshToken("user@example.com")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = gen.RotateAccessToken(refresh)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			_, err = gen.RotateAccessToken(refresh)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should reject an expired refresh token", func() {
			shortCfg := testSecurityConfig()
			shortCfg.RefreshTokenDuration = -1 * time.Minute
			shortGen := NewTokenGenerator(shortCfg)

			refresh, err := shortGen.GenerateRefreshToken("user@example.com")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = gen.RotateAccessToken(refresh)
			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
		})
	})
})
