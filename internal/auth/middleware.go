package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-tracker/internal/authz"
	"github.com/spec-kit/issue-tracker/internal/domain"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

const identityKey = "auth_identity"

// AuthMiddleware resolves the session identity for each request. The role
// comes straight from the token claims; the user record is not re-read, so
// role changes apply only after the next login.
type AuthMiddleware struct {
	tokens     *TokenManager
	sessions   SessionStore
	cookieName string
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, sessions SessionStore, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, sessions: sessions, cookieName: cookieName}
}

// Handle enforces authentication for protected routes. The token is accepted
// from the session cookie or a bearer header.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	tokenStr := m.tokenFromRequest(c)
	if tokenStr == "" {
		return apperrors.NewUnauthenticated("authentication required")
	}

	claims, err := m.tokens.ParseToken(tokenStr)
	if err != nil {
		return apperrors.NewUnauthenticated("invalid session token")
	}

	active, err := m.sessions.Exists(c.Context(), claims.SessionID)
	if err != nil {
		return apperrors.NewStoreError(err)
	}
	if !active {
		return apperrors.NewUnauthenticated("session expired")
	}

	identity := &authz.Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}
	c.Locals(identityKey, identity)
	return c.Next()
}

func (m *AuthMiddleware) tokenFromRequest(c *fiber.Ctx) string {
	if cookie := c.Cookies(m.cookieName); cookie != "" {
		return cookie
	}
	header := c.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// IdentityFromContext retrieves the authenticated identity.
func IdentityFromContext(c *fiber.Ctx) (*authz.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*authz.Identity)
	return identity, ok
}

// RequireRoles guards a route group with the authorization gate. A missing
// identity yields 401; a present identity outside the role set yields 403.
func RequireRoles(required ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, _ := IdentityFromContext(c)
		switch authz.Authorize(identity, required...) {
		case authz.DecisionAllowed:
			return c.Next()
		case authz.DecisionUnauthenticated:
			return apperrors.NewUnauthenticated("authentication required")
		default:
			return apperrors.NewForbidden("insufficient role")
		}
	}
}
