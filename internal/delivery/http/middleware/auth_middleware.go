package middleware

import (
	"strings"
	"time"

	"habitly/internal/domain/entity"
	domainerrors "habitly/internal/domain/errors"
	"habitly/internal/domain/service"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// principalKey is the echo context key carrying the authenticated principal.
const principalKey = "principal"

// AccessRule binds a glob path pattern to an access requirement. Rules
// are evaluated in declaration order and the first matching pattern
// decides the outcome for the request.
type AccessRule struct {
	// Pattern is a doublestar glob matched against the request path.
	Pattern string
	// Public marks the path as reachable without any token.
	Public bool
	// Roles lists the roles allowed through. Empty with Public false
	// means any authenticated principal.
	Roles []entity.Role
}

// DefaultAccessRules is the ordered rule table for the whole API surface.
// Order matters: the admin and user prefixes must precede the catch-all.
func DefaultAccessRules() []AccessRule {
	return []AccessRule{
		{Pattern: "/auth/**", Public: true},
		{Pattern: "/oauth/**", Public: true},
		{Pattern: "/health", Public: true},
		{Pattern: "/config", Public: true},
		{Pattern: "/uploads/**", Public: true},
		{Pattern: "/ai/results/**", Public: true},
		{Pattern: "/admin/**", Roles: []entity.Role{entity.RoleAdmin}},
		{Pattern: "/user/**", Roles: []entity.Role{entity.RoleUser, entity.RoleAdmin}},
		{Pattern: "/**"},
	}
}

// AuthMiddleware gates every request through the ordered rule table,
// verifying the bearer token where the matched rule requires one.
type AuthMiddleware struct {
	codec service.TokenCodec
	rules []AccessRule
}

// NewAuthMiddleware is the constructor for AuthMiddleware. It rejects a
// rule table containing an invalid glob pattern up front so matching at
// request time cannot fail.
func NewAuthMiddleware(codec service.TokenCodec, rules []AccessRule) (*AuthMiddleware, error) {
	for _, rule := range rules {
		if !doublestar.ValidatePattern(rule.Pattern) {
			return nil, errors.Errorf("invalid access rule pattern: %s", rule.Pattern)
		}
	}

	return &AuthMiddleware{codec: codec, rules: rules}, nil
}

// Gate is the single authentication and authorization middleware. Public
// paths pass through untouched; everything else needs a valid access
// token, and prefix-scoped paths additionally need a matching role.
func (m *AuthMiddleware) Gate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		rule := m.match(c.Request().URL.Path)
		if rule.Public {
			return next(c)
		}

		principal, err := m.authenticate(c)
		if err != nil {
			return err
		}

		if !principal.Role.Satisfies(rule.Roles) {
			return errors.Wrap(domainerrors.ErrUnauthorizedRole, "access denied for "+c.Request().URL.Path)
		}

		c.Set(principalKey, principal)

		return next(c)
	}
}

// match returns the first rule whose pattern covers the path. The table
// ends with a catch-all, so a match always exists.
func (m *AuthMiddleware) match(path string) AccessRule {
	for _, rule := range m.rules {
		if ok, _ := doublestar.Match(rule.Pattern, path); ok {
			return rule
		}
	}

	return AccessRule{}
}

// authenticate verifies the bearer token and builds the principal. The
// checks keep their distinct failure modes: malformed signature, expired
// token and wrong category each carry their own error code.
func (m *AuthMiddleware) authenticate(c echo.Context) (entity.Principal, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return entity.Principal{}, domainerrors.ErrMalformedToken.WrapMessage("authorization header is missing")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || tokenString == "" {
		return entity.Principal{}, domainerrors.ErrMalformedToken.WrapMessage("authorization header is not a bearer token")
	}

	claims, err := m.codec.Parse(tokenString)
	if err != nil {
		return entity.Principal{}, errors.Wrap(err, "access token rejected")
	}

	if time.Now().After(claims.ExpiresAt) {
		return entity.Principal{}, domainerrors.ErrExpiredToken.WrapMessage("access token expired")
	}

	if claims.Category != service.CategoryAccess {
		return entity.Principal{}, domainerrors.ErrWrongTokenCategory.WrapMessage("token is not an access token")
	}

	return entity.Principal{Username: claims.Username, Role: claims.Role}, nil
}

// GetPrincipal extracts the authenticated principal a gate attached to
// the request. The second return is false on public paths.
func GetPrincipal(c echo.Context) (entity.Principal, bool) {
	principal, ok := c.Get(principalKey).(entity.Principal)

	return principal, ok
}
