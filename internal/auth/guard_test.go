package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

var _ = ginkgo.Describe("Gate", func() {
	var (
		service  *Service
		mockRepo *mockRepository
		tokenGen *TokenGenerator
		gate     *Gate
		next     http.Handler
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockRepository()
		tokenGen = NewTokenGenerator(testSecurityConfig())
		service = NewService(mockRepo, tokenGen, bcrypt.MinCost, nil)
		gate = NewGate(service, slog.Default())

		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(user).ToNot(gomega.BeNil())
			w.WriteHeader(http.StatusOK)
		})
	})

	request := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		gate.Guard(Require("manage_users"))(next).ServeHTTP(rec, req)
		return rec
	}

	ginkgo.Context("without a token", func() {
		ginkgo.It("should reject with 401", func() {
			rec := request("")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})

	ginkgo.Context("with a malformed token", func() {
		ginkgo.It("should reject with 401", func() {
			rec := request("garbage")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})

	ginkgo.Context("with a non-bearer authorization header", func() {
		ginkgo.It("should reject with 401", func() {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Basic dXNlcjpwdw==")
			rec := httptest.NewRecorder()
			gate.Guard(Require("manage_users"))(next).ServeHTTP(rec, req)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})

	ginkgo.Context("with a valid token for a deleted user", func() {
		ginkgo.It("should reject with 404, not 401", func() {
			token, err := tokenGen.GenerateAccessToken("user@example.com")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			delete(mockRepo.usersByEmail, "user@example.com")

			rec := request(token)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNotFound))
		})
	})

	ginkgo.Context("with an authenticated user lacking the permission", func() {
		ginkgo.It("should reject with 403", func() {
			token, err := tokenGen.GenerateAccessToken("user@example.com")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			rec := request(token)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		})

		ginkgo.It("should allow after the permission is granted through a role", func() {
			token, err := tokenGen.GenerateAccessToken("user@example.com")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			rec := request(token)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))

			mockRepo.assignRole(1, "staff", "manage_users")

			rec = request(token)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})
	})

	ginkgo.Context("with a superuser holding no roles", func() {
		ginkgo.It("should allow without any permission check", func() {
			token, err := tokenGen.GenerateAccessToken("root@example.com")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			rec := request(token)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})
	})

	ginkgo.Describe("Authenticate middleware", func() {
		ginkgo.It("should resolve the user without checking permissions", func() {
			token, err := tokenGen.GenerateAccessToken("user@example.com")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			gate.Authenticate(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})
	})
})

var _ = ginkgo.Describe("BearerToken", func() {
	ginkgo.It("should extract the token case-insensitively", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "bearer abc123")
		gomega.Expect(BearerToken(req)).To(gomega.Equal("abc123"))
	})

	ginkgo.It("should return empty for missing or non-bearer headers", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		gomega.Expect(BearerToken(req)).To(gomega.BeEmpty())

		req.Header.Set("Authorization", "Basic abc")
		gomega.Expect(BearerToken(req)).To(gomega.BeEmpty())
	})
})

var _ = ginkgo.Describe("Handler.Me", func() {
	var handler *Handler

	ginkgo.BeforeEach(func() {
		mockRepo := newMockRepository()
		tokenGen := NewTokenGenerator(testSecurityConfig())
		handler = NewHandler(NewService(mockRepo, tokenGen, bcrypt.MinCost, nil))
	})

	me := func(authorization string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		rec := httptest.NewRecorder()
		handler.Me(rec, req)
		return rec
	}

	errorCode := func(rec *httptest.ResponseRecorder) string {
		var body struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
		return body.Error.Code
	}

	ginkgo.It("should answer a missing token with the invalid-token envelope", func() {
		rec := me("")
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		gomega.Expect(errorCode(rec)).To(gomega.Equal("INVALID_TOKEN"))
	})

	ginkgo.It("should answer a garbage token with the same envelope", func() {
		rec := me("Bearer garbage")
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		gomega.Expect(errorCode(rec)).To(gomega.Equal("INVALID_TOKEN"))
	})
})
