package valkey

import "time"

// AuthPair is the (username, password) pair HELLO's AUTH clause takes.
type AuthPair struct {
	Username string
	Password string
}

// HelloOpts configures the HELLO handshake performed during Connect.
// AUTH and SETNAME are only meaningful when ProtoVer is set; building a
// request with either set and ProtoVer nil fails fast with a KindClient
// error before any network I/O (spec.md §8 scenario 6).
type HelloOpts struct {
	ProtoVer   *string // "2" or "3"
	Auth       *AuthPair
	ClientName *string
}

// HrandfieldOpts configures HRANDFIELD. WithValues requires Count to be
// set; a Count of nil with WithValues true fails fast with a KindClient
// error.
type HrandfieldOpts struct {
	Count      *int64 // negative means sample with replacement, per server semantics
	WithValues bool
}

// HscanOpts configures HSCAN.
type HscanOpts struct {
	Match    *string
	Count    *int64
	NoValues bool
}

// ConnectOptions configures Connect. A zero value dials with no
// per-candidate timeout and performs a bare HELLO with no protocol
// version negotiated.
type ConnectOptions struct {
	// DialTimeout bounds each candidate address's TCP connect attempt.
	// Zero means no timeout is applied beyond ctx's own deadline.
	DialTimeout time.Duration
	Hello       *HelloOpts
}

// StrPtr and Int64Ptr are small conveniences for building the optional
// fields of HelloOpts/HrandfieldOpts/HscanOpts from literals.
func StrPtr(s string) *string  { return &s }
func Int64Ptr(n int64) *int64 { return &n }
