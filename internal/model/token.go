package model

// TokenIssuer mints and validates signed bearer tokens binding an account id
// to a tamper-evident string.
//
// Verify is purely cryptographic: it returns the id embedded at issuance and
// does not re-check that the account still exists.
type TokenIssuer interface {
	Issue(id string) (string, error)
	Verify(token string) (string, error)
}
