package models

// AccountKind tags the two account variants that can own reports and hold
// sessions. It travels inside auth claims and in the polymorphic owner
// reference resolved by the accounts store.
type AccountKind string

const (
	KindUser AccountKind = "user"
	KindOrg  AccountKind = "org"
)

// IsValid reports whether k is one of the two known kinds.
func (k AccountKind) IsValid() bool {
	return k == KindUser || k == KindOrg
}
