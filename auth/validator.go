package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"github.com/keepnetlabs/agentic-ally-agent-sub012/validation"
)

// ValidatorConfig configures the token validator.
type ValidatorConfig struct {
	// Key is the HMAC signing key tokens are verified against.
	Key []byte

	// Issuer, when set, is the required iss claim.
	Issuer string

	// CompanyClaim is the claim carrying the tenant id.
	// Default: "cid"
	CompanyClaim string

	// Metrics, when set, receives one record per cache consultation.
	Metrics validation.Metrics
}

// Validator answers "is this token currently acceptable" with a cached,
// deduplicated check.
type Validator struct {
	config ValidatorConfig
	check  *validation.Check
	group  singleflight.Group
}

// NewValidator creates a validator caching outcomes in cache.
func NewValidator(config ValidatorConfig, cache *validation.Cache) (*Validator, error) {
	if len(config.Key) == 0 {
		return nil, ErrMissingKey
	}
	// Apply defaults
	if config.CompanyClaim == "" {
		config.CompanyClaim = "cid"
	}

	var opts []validation.CheckOption
	if config.Metrics != nil {
		opts = append(opts, validation.WithMetrics(config.Metrics))
	}

	return &Validator{
		config: config,
		check:  validation.NewCheck(cache, "token", opts...),
	}, nil
}

// Validate reports whether token is currently acceptable. A malformed,
// mis-signed or expired token yields (false, nil); errors are reserved
// for infrastructure failures. Outcomes are cached; concurrent calls for
// one token collapse into a single verification.
func (v *Validator) Validate(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, ErrMissingToken
	}

	key := validation.Key("token", token)
	res, err, _ := v.group.Do(key, func() (any, error) {
		return v.check.Do(ctx, token, func(ctx context.Context) (bool, time.Duration, error) {
			return v.verify(token)
		})
	})
	if err != nil {
		return false, err
	}
	return res.(bool), nil
}

// parse runs token through the one parser configuration both validation
// paths share.
func (v *Validator) parse(token string) (*jwt.Token, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
	}
	if v.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.config.Issuer))
	}

	return jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return v.config.Key, nil
	}, opts...)
}

// verify parses and checks the token. The returned ttl bounds how long a
// positive outcome may be cached: never past the token's own expiry.
func (v *Validator) verify(token string) (bool, time.Duration, error) {
	parsed, err := v.parse(token)
	if err != nil || !parsed.Valid {
		return false, 0, nil
	}

	var ttl time.Duration
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		ttl = time.Until(exp.Time)
		if ttl <= 0 {
			return false, 0, nil
		}
	}
	return true, ttl, nil
}

// Identity extracts the principal from token, verifying it first.
// Returns nil when the token does not verify.
func (v *Validator) Identity(token string) (*Identity, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	parsed, err := v.parse(token)
	if err != nil || !parsed.Valid {
		return nil, err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrUnexpectedClaims
	}

	id := &Identity{Claims: claims}
	if sub, err := claims.GetSubject(); err == nil {
		id.Principal = sub
	}
	if company, ok := claims[v.config.CompanyClaim].(string); ok {
		id.CompanyID = company
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		id.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		id.IssuedAt = iat.Time
	}
	return id, nil
}
