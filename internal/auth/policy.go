package auth

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/park-api/internal/domain"
	"github.com/spec-kit/park-api/internal/observability"
	apperrors "github.com/spec-kit/park-api/pkg/util"
)

// Decision is the outcome of evaluating a Policy.
type Decision int

const (
	Allow Decision = iota
	DenyUnauthenticated
	DenyForbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyUnauthenticated:
		return "unauthenticated"
	default:
		return "forbidden"
	}
}

type policyKind int

const (
	kindPublic policyKind = iota
	kindRole
	kindRoleAndSelf
	kindAnyRoleAndSelf
	kindEither
)

// Policy is a declarative access rule attached to a route.
type Policy struct {
	kind         policyKind
	roles        []domain.Role
	alternatives []Policy
}

// Public allows every request.
func Public() Policy { return Policy{kind: kindPublic} }

// RequireRole allows identities holding role.
func RequireRole(role domain.Role) Policy {
	return Policy{kind: kindRole, roles: []domain.Role{role}}
}

// RequireRoleAndSelf allows identities holding role whose account id equals
// the :id path parameter.
func RequireRoleAndSelf(role domain.Role) Policy {
	return Policy{kind: kindRoleAndSelf, roles: []domain.Role{role}}
}

// RequireAnyRoleAndSelf is RequireRoleAndSelf over a set of roles.
func RequireAnyRoleAndSelf(roles ...domain.Role) Policy {
	return Policy{kind: kindAnyRoleAndSelf, roles: roles}
}

// Either allows a request when any alternative allows it.
func Either(alternatives ...Policy) Policy {
	return Policy{kind: kindEither, alternatives: alternatives}
}

// Subject is the account id named by the request path, if any.
type Subject struct {
	ID      int64
	Present bool
}

// Decide evaluates p for identity (nil when the request is anonymous).
func Decide(p Policy, identity *Identity, subject Subject) Decision {
	switch p.kind {
	case kindPublic:
		return Allow
	case kindEither:
		for _, alt := range p.alternatives {
			if Decide(alt, identity, subject) == Allow {
				return Allow
			}
		}
		return deny(identity)
	}

	if identity == nil {
		return DenyUnauthenticated
	}

	switch p.kind {
	case kindRole:
		if identity.HasAnyRole(p.roles...) {
			return Allow
		}
	case kindRoleAndSelf, kindAnyRoleAndSelf:
		if identity.HasAnyRole(p.roles...) && subject.Present && subject.ID == identity.AccountID {
			return Allow
		}
	}
	return DenyForbidden
}

func deny(identity *Identity) Decision {
	if identity == nil {
		return DenyUnauthenticated
	}
	return DenyForbidden
}

// AccessDecider turns policies into route handlers.
type AccessDecider struct {
	entry   *EntryPoint
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewAccessDecider constructs the decision stage.
func NewAccessDecider(entry *EntryPoint, logger *zap.Logger, metrics *observability.Metrics) *AccessDecider {
	return &AccessDecider{entry: entry, logger: observability.OrNop(logger), metrics: metrics}
}

// Authorize enforces p for the route it is mounted on. It must run after
// AuthMiddleware.
func (a *AccessDecider) Authorize(p Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, _ := IdentityFromContext(c)
		decision := Decide(p, identity, subjectFromPath(c))
		a.metrics.RecordAccessDecision(decision.String())

		switch decision {
		case Allow:
			return c.Next()
		case DenyUnauthenticated:
			return a.entry.Commence(c)
		default:
			a.logger.Info("access denied",
				zap.String("username", identity.Username),
				zap.String("role", string(identity.Role)),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
			)
			return apperrors.NewForbidden("access denied")
		}
	}
}

func subjectFromPath(c *fiber.Ctx) Subject {
	raw := c.Params("id")
	if raw == "" {
		return Subject{}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Subject{}
	}
	return Subject{ID: id, Present: true}
}
