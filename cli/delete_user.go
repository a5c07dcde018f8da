package cli

import (
	"context"
	"errors"
	"strings"
)

// DeleteUser erases the data of the user with the given uid, the same way a
// signed-in user would through deleteMyAccountData.
//
// It is safe to run again after a partial failure.
func (c *Context) DeleteUser(ctx context.Context, uid string) error {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return errors.New("uid is required")
	}
	if strings.Contains(uid, "/") {
		return errors.New("uid must not contain \"/\"")
	}

	return c.deleter.DeleteUserData(ctx, uid)
}
