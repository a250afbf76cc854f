package valueobject

// AuthType names the authentication method an AuthInfo belongs to.
type AuthType string

const (
	AuthTypeLocal  AuthType = "LOCAL"
	AuthTypeGoogle AuthType = "GOOGLE"
)

// ParseAuthType converts a stored tag back into an AuthType.
func ParseAuthType(s string) (AuthType, error) {
	switch AuthType(s) {
	case AuthTypeLocal:
		return AuthTypeLocal, nil
	case AuthTypeGoogle:
		return AuthTypeGoogle, nil
	default:
		return "", ErrUnknownAuthType
	}
}

func (t AuthType) IsLocal() bool  { return t == AuthTypeLocal }
func (t AuthType) IsGoogle() bool { return t == AuthTypeGoogle }
func (t AuthType) String() string { return string(t) }
