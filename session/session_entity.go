package session

import (
	"time"

	"github.com/fundwit/go-commons/types"
)

type Context struct {
	Token    string   `json:"token"`
	Identity Identity `json:"identity"`

	SigningTime time.Time `json:"-"`
}

// Identity is the operator on whose behalf a request is executed.
type Identity struct {
	ID    types.ID `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  string   `json:"role"`
}

// SystemIdentity attributes records created by the service itself,
// such as the initial history entry of a rolled-over filing.
var SystemIdentity = Identity{ID: 0, Name: "system", Email: "", Role: "SYSTEM"}
