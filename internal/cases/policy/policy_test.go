package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"sangamsetu/pkg/domain"
)

func actorWith(role string, groups ...string) domain.Actor {
	return domain.Actor{
		ID:            domain.UserID(uuid.New()),
		Username:      "tester",
		Role:          role,
		Groups:        groups,
		Authenticated: true,
	}
}

func TestIsVolunteerOrPolice(t *testing.T) {
	t.Run("volunteer group passes", func(t *testing.T) {
		assert.True(t, IsVolunteerOrPolice(actorWith(domain.RoleVolunteer, domain.GroupVolunteer)))
	})

	t.Run("police group alone does not pass", func(t *testing.T) {
		// Known quirk, kept intentionally: police must also hold the
		// volunteer group to file found reports.
		assert.False(t, IsVolunteerOrPolice(actorWith(domain.RolePolice, domain.GroupPolice)))
	})

	t.Run("police with volunteer group passes", func(t *testing.T) {
		assert.True(t, IsVolunteerOrPolice(actorWith(domain.RolePolice, domain.GroupPolice, domain.GroupVolunteer)))
	})

	t.Run("anonymous fails", func(t *testing.T) {
		assert.False(t, IsVolunteerOrPolice(domain.Anonymous()))
	})
}

func TestIsAdminRole(t *testing.T) {
	assert.True(t, IsAdminRole(actorWith(domain.RoleAdmin, domain.GroupAdmin)))
	assert.False(t, IsAdminRole(actorWith(domain.RolePolice, domain.GroupPolice)))
	assert.False(t, IsAdminRole(domain.Anonymous()))
}

func TestIsPoliceOrAdmin(t *testing.T) {
	assert.True(t, IsPoliceOrAdmin(actorWith(domain.RolePolice, domain.GroupPolice)))
	assert.True(t, IsPoliceOrAdmin(actorWith(domain.RoleAdmin, domain.GroupAdmin)))
	assert.False(t, IsPoliceOrAdmin(actorWith(domain.RoleVolunteer, domain.GroupVolunteer)))
	assert.False(t, IsPoliceOrAdmin(domain.Anonymous()))
}

func TestIsCreatorOrAdmin(t *testing.T) {
	creator := actorWith(domain.RoleReporter)
	other := actorWith(domain.RoleReporter)
	superuser := actorWith(domain.RoleAdmin, domain.GroupAdmin)
	superuser.Superuser = true

	t.Run("creator may act on own record", func(t *testing.T) {
		assert.True(t, IsCreatorOrAdmin(creator, &creator.ID))
	})

	t.Run("other reporter may not", func(t *testing.T) {
		assert.False(t, IsCreatorOrAdmin(other, &creator.ID))
	})

	t.Run("superuser may act on any record", func(t *testing.T) {
		assert.True(t, IsCreatorOrAdmin(superuser, &creator.ID))
	})

	t.Run("admin role without superuser flag may not", func(t *testing.T) {
		admin := actorWith(domain.RoleAdmin, domain.GroupAdmin)
		assert.False(t, IsCreatorOrAdmin(admin, &creator.ID))
	})

	t.Run("orphaned record only resolvable by superuser", func(t *testing.T) {
		assert.False(t, IsCreatorOrAdmin(creator, nil))
		assert.True(t, IsCreatorOrAdmin(superuser, nil))
	})
}
