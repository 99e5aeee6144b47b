package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vilkasoft/backoffice/internal/auth"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

// MockUserRepository implements auth.RepositoryAPI
type MockUserRepository struct {
	email        string
	passwordHash string
	userID       int64
	user         *auth.User
	lookupErr    error
}

func (m *MockUserRepository) GetPasswordForEmail(email string) (string, int64, error) {
	if m.lookupErr != nil {
		return "", 0, m.lookupErr
	}
	if email != m.email {
		return "", 0, errors.New("not found")
	}
	return m.passwordHash, m.userID, nil
}

func (m *MockUserRepository) GetUserWithRole(userID int64) (*auth.User, error) {
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	return m.user, nil
}

// MockCapabilityResolver implements auth.CapabilityResolver
type MockCapabilityResolver struct {
	caps map[string][]string
}

func (m *MockCapabilityResolver) Capabilities(roleName string) ([]string, error) {
	return m.caps[roleName], nil
}

var _ = Describe("Auth Service", func() {
	var (
		repo     *MockUserRepository
		resolver *MockCapabilityResolver
		service  *auth.Service
	)

	BeforeEach(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())

		repo = &MockUserRepository{
			email:        "admin@vilkasoft.lt",
			passwordHash: string(hash),
			userID:       1,
			user:         &auth.User{ID: 1, Email: "admin@vilkasoft.lt", Name: "Administrator", Role: "admin"},
		}
		resolver = &MockCapabilityResolver{caps: map[string][]string{
			"admin":      {"all"},
			"accountant": {"invoices.view"},
		}}
		tokenGen := auth.NewJWTTokenGenerator("access-secret", "refresh-secret", time.Minute, time.Hour)
		service = auth.NewService(repo, resolver, tokenGen)
	})

	Describe("Authenticate", func() {
		It("issues tokens for valid credentials", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Email: "admin@vilkasoft.lt", Password: "secret123"})
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(tokens.RefreshToken).NotTo(BeEmpty())
		})

		It("rejects a wrong password", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "admin@vilkasoft.lt", Password: "wrong"})
			Expect(err).To(MatchError(auth.ErrInvalidCredentials))
		})

		It("rejects an unknown email", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "nobody@vilkasoft.lt", Password: "secret123"})
			Expect(err).To(MatchError(auth.ErrInvalidCredentials))
		})

		It("rejects an empty login", func() {
			_, err := service.Authenticate(auth.LoginDTO{})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("token validation", func() {
		It("round-trips claims through the access token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Email: "admin@vilkasoft.lt", Password: "secret123"})
			Expect(err).NotTo(HaveOccurred())

			claims, err := service.ValidateAccessToken(tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal("1"))
			Expect(claims.Email).To(Equal("admin@vilkasoft.lt"))
		})

		It("refreshes a session from the refresh token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Email: "admin@vilkasoft.lt", Password: "secret123"})
			Expect(err).NotTo(HaveOccurred())

			renewed, err := service.RefreshTokens(tokens.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(renewed.AccessToken).NotTo(BeEmpty())
		})

		It("rejects a forged token", func() {
			other := auth.NewJWTTokenGenerator("other-secret", "other-refresh", time.Minute, time.Hour)
			forged, err := other.GenerateAccessToken("1", "admin@vilkasoft.lt")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ValidateAccessToken(forged)
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})

		It("rejects an expired token", func() {
			expiring := auth.NewJWTTokenGenerator("access-secret", "refresh-secret", -time.Minute, -time.Minute)
			expired, err := expiring.GenerateAccessToken("1", "admin@vilkasoft.lt")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ValidateAccessToken(expired)
			Expect(err).To(SatisfyAny(
				MatchError(auth.ErrTokenExpired),
				MatchError(auth.ErrInvalidToken),
			))
		})
	})

	Describe("GetUserWithRole", func() {
		It("attaches the role's capability set to the user", func() {
			user, err := service.GetUserWithRole(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Role).To(Equal("admin"))
			Expect(user.Permissions).To(Equal([]string{"all"}))
		})
	})

	Describe("User.HasPermission", func() {
		It("satisfies any check through the wildcard", func() {
			u := &auth.User{Permissions: []string{"all"}}
			Expect(u.HasPermission("warehouse.manage")).To(BeTrue())
		})

		It("matches literal permissions only for other roles", func() {
			u := &auth.User{Permissions: []string{"invoices.view"}}
			Expect(u.HasPermission("invoices.view")).To(BeTrue())
			Expect(u.HasPermission("roles.manage")).To(BeFalse())
		})
	})
})
