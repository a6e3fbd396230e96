package domain

// ClaimKind is the strongly typed discriminator for token and role claims.
// The wire representation stays a generic type/value string pair; conversion
// happens only at serialization boundaries.
type ClaimKind string

const (
	ClaimSubject     ClaimKind = "sub"
	ClaimDisplayName ClaimKind = "name"
	ClaimTokenID     ClaimKind = "jti"
	ClaimRole        ClaimKind = "role"
	ClaimPermission  ClaimKind = "perm"
)

// Claim is a typed key/value fact attached to a role or embedded in a token.
type Claim struct {
	Kind  ClaimKind
	Value string
}

// PermissionClaim builds a permission claim for the given value.
func PermissionClaim(value string) Claim {
	return Claim{Kind: ClaimPermission, Value: value}
}
