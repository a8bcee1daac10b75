package operations

import (
	// Go Internal Packages
	"context"

	// Local Packages
	errors "network-ops/errors"
	models "network-ops/models"
	utils "network-ops/utils"
)

type UserFinder interface {
	FindUser(ctx context.Context, username string) (models.User, error)
}

// ResolveActor loads username from the user store. Nothing the caller claims
// about itself is trusted.
func ResolveActor(ctx context.Context, users UserFinder, username string) (models.Actor, error) {
	if utils.IsBlank(username) {
		return models.Actor{}, errors.EmptyParamErr("username")
	}
	user, err := users.FindUser(ctx, username)
	if err != nil {
		return models.Actor{}, dispatchErr("find user", err)
	}
	return user.Actor(), nil
}
