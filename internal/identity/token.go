package identity

import (
	"github.com/golang-jwt/jwt/v5"
)

// DecodeCredential extracts a Record from an identity-provider credential: a
// compact JWT whose claims segment carries name/email/picture. The signature
// is the provider's concern and is deliberately not verified here; the only
// question this function answers is whether the token parses at all.
//
// Any malformed segment, invalid base64, or non-JSON payload yields ok=false,
// never an error.
func DecodeCredential(credential string) (Record, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(credential, claims); err != nil {
		return Record{}, false
	}

	rec := Record{
		Name:    stringClaim(claims, "name"),
		Email:   stringClaim(claims, "email"),
		Picture: stringClaim(claims, "picture"),
	}
	return rec, true
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, ok := claims[key].(string)
	if !ok {
		return ""
	}
	return v
}
