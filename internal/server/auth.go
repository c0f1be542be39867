// auth.go - Bearer-token authentication and password hashing.
//
// Tokens are HS256-signed JWTs carrying the donor's identifier and mobile
// number. They deliberately carry no expiry claim: a token stays valid until
// the signing secret rotates, which is the contract the registry's clients
// were built against.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthConfig holds the signing secret and the donor store used to confirm
// that a token's subject still exists. It is injected at startup; nothing
// here reads ambient state.
type AuthConfig struct {
	SecretKey string
	Donors    DonorStore
}

// tokenClaims is the JWT payload: donor identifier plus the mobile number
// the donor logged in with.
type tokenClaims struct {
	DonorID string `json:"id"`
	Mobile  string `json:"mobile"`
	jwt.RegisteredClaims
}

// hashPassword generates a bcrypt hash of the password.
func hashPassword(password string) (string, error) {
	// bcrypt cost of 12 is a good balance of security and performance
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword compares a password with its hash.
func verifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// issueToken signs a token for the donor. No expiry is set.
func (a AuthConfig) issueToken(donorID, mobile string) (string, error) {
	if a.SecretKey == "" {
		return "", errors.New("signing secret not configured")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		DonorID: donorID,
		Mobile:  mobile,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	})
	return token.SignedString([]byte(a.SecretKey))
}

// verifyToken checks the signature and returns the claims. Expiry is not
// validated because tokens never carry one.
func (a AuthConfig) verifyToken(tokenString string) (*tokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return []byte(a.SecretKey), nil
	})
	if err != nil || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || claims.DonorID == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

type donorContextKey struct{}

// donorFromContext returns the authenticated donor stored by requireAuth.
func donorFromContext(ctx context.Context) (*Donor, bool) {
	d, ok := ctx.Value(donorContextKey{}).(*Donor)
	return d, ok
}

// requireAuth extracts the bearer token from the Authorization header,
// verifies the signature, and re-loads the donor by the embedded identifier.
// A token whose donor no longer exists is rejected.
func (a AuthConfig) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeMsg(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeMsg(w, http.StatusUnauthorized, "invalid authorization header")
			return
		}

		claims, err := a.verifyToken(strings.TrimSpace(parts[1]))
		if err != nil {
			writeMsg(w, http.StatusUnauthorized, "invalid token")
			return
		}

		donor, err := a.Donors.FindByID(r.Context(), claims.DonorID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeMsg(w, http.StatusUnauthorized, "invalid token")
				return
			}
			Error("auth: donor lookup failed", map[string]any{"donor_id": claims.DonorID}, err)
			writeMsg(w, http.StatusInternalServerError, "server error")
			return
		}

		ctx := context.WithValue(r.Context(), donorContextKey{}, donor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// profileResp is the body of GET /profile.
type profileResp struct {
	VerifiedUser bool `json:"verifiedUser"`
}

// profileHandler answers the token-verification probe used by the frontend
// after login. Reaching it at all means requireAuth accepted the token.
func (s *Server) profileHandler(w http.ResponseWriter, r *http.Request) {
	_, ok := donorFromContext(r.Context())
	writeJSON(w, http.StatusOK, profileResp{VerifiedUser: ok})
}
