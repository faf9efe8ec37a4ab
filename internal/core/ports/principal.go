package ports

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Principal is the caller on whose behalf an action runs. It is passed into
// every operation explicitly and its token is forwarded to the order store.
type Principal struct {
	UserID string
	Role   string
	Token  string
}

// Validate requires a user id and a token.
func (p Principal) Validate() error {
	var problems []error
	if strings.TrimSpace(p.UserID) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("principal.userId"))
	}
	if strings.TrimSpace(p.Token) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("principal.token"))
	}
	return errors.Join(problems...)
}
