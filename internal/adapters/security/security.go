// Package security is the device-pair authentication adapter. Tokens carry
// the device pair as claims rather than a user/role, and the simulated
// overhead deliberately never derives from wall-clock timing, so runs
// stay deterministic (see constant.AuthOverheadMs).
package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/constant"
)

// Authenticator is the narrow contract FogDevice.ReceiveTask consumes.
type Authenticator interface {
	Authenticate(srcID, dstID string) (ok bool, overheadMs float64)
}

// pairClaims carries the device pair through an HS256 JWT, purely for
// bookkeeping realism; the token's validity never drives the fixed
// overhead returned to the caller.
type pairClaims struct {
	SrcID string `json:"src_id"`
	DstID string `json:"dst_id"`
	jwt.RegisteredClaims
}

// Adapter is the reference implementation: always authenticates, but
// genuinely mints and parses a token and checks a bcrypt-hashed pre-shared
// cell credential once at construction.
type Adapter struct {
	signingKey   []byte
	credHash     []byte
}

// New builds an Adapter and pre-hashes the shared cell credential, then
// immediately verifies the credential against its own hash as a sanity
// check before handing the adapter to a caller.
func New(signingKey, sharedCredential string) (*Adapter, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(sharedCredential), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	a := &Adapter{signingKey: []byte(signingKey), credHash: hash}
	if !a.VerifyCredential(sharedCredential) {
		return nil, fmt.Errorf("security adapter: credential hash does not verify against its own input")
	}
	return a, nil
}

// VerifyCredential checks candidate against the adapter's stored hash.
// Exposed for tests and for New's own post-hash self-check.
func (a *Adapter) VerifyCredential(candidate string) bool {
	return bcrypt.CompareHashAndPassword(a.credHash, []byte(candidate)) == nil
}

// Authenticate mints and parses a short-lived token for the device pair.
// The reference behavior always succeeds; the fixed constant overhead
// (not measured wall-clock time) is what makes the run reproducible.
func (a *Adapter) Authenticate(srcID, dstID string) (bool, float64) {
	claims := pairClaims{
		SrcID: srcID,
		DstID: dstID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(fixedEpoch.Add(time.Minute)),
			IssuedAt:  jwt.NewNumericDate(fixedEpoch),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.signingKey)
	if err != nil {
		return false, 0
	}

	parsed, err := jwt.ParseWithClaims(signed, &pairClaims{}, func(t *jwt.Token) (interface{}, error) {
		return a.signingKey, nil
	}, jwt.WithTimeFunc(func() time.Time { return fixedEpoch }))
	if err != nil || !parsed.Valid {
		return false, 0
	}
	got := parsed.Claims.(*pairClaims)
	if got.SrcID != srcID || got.DstID != dstID {
		return false, 0
	}
	return true, constant.AuthOverheadMs
}

// fixedEpoch anchors token timestamps so Authenticate never reads the
// wall clock; the exact value is irrelevant, only its fixedness matters.
var fixedEpoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
