// Package identity provides the acting user and their permissions.
package identity

import (
	"context"
	"fmt"

	"github.com/example/assess/internal/core/questionnaire"
	"github.com/example/assess/internal/ctxutil"
	"github.com/example/assess/internal/ports/secondary"
)

// StaticProvider implements secondary.IdentityProvider from configured values.
type StaticProvider struct {
	user  questionnaire.User
	perms questionnaire.Permissions
}

var _ secondary.IdentityProvider = (*StaticProvider)(nil)

// NewStaticProvider creates a provider for a fixed user.
func NewStaticProvider(user questionnaire.User, perms questionnaire.Permissions) *StaticProvider {
	return &StaticProvider{user: user, perms: perms}
}

// CurrentUser returns the configured user. An actor in the context overrides
// the configured id.
func (p *StaticProvider) CurrentUser(ctx context.Context) (questionnaire.User, error) {
	user := p.user
	if actor := ctxutil.ActorFromContext(ctx); actor != "" {
		user.ID = actor
	}
	if user.ID == "" {
		return questionnaire.User{}, fmt.Errorf("no user configured (set user.id)")
	}
	if user.DisplayName == "" {
		user.DisplayName = user.ID
	}
	return user, nil
}

// Permissions returns the configured permissions.
func (p *StaticProvider) Permissions(ctx context.Context) (questionnaire.Permissions, error) {
	return p.perms, nil
}
