package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"restaurant_api/internal/authz"
)

func TestGroupManagementIsManagerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := &GroupService{DB: db}
	seedUser(t, db, "bob")

	require.ErrorIs(t, svc.AddMember(ctx(), customer(1), authz.RoleDeliveryCrew, "bob"), ErrForbidden)
	require.ErrorIs(t, svc.AddMember(ctx(), crew(1), authz.RoleDeliveryCrew, "bob"), ErrForbidden)
	_, err := svc.Members(ctx(), customer(1), authz.RoleManager)
	require.ErrorIs(t, err, ErrForbidden)
	require.ErrorIs(t, svc.RemoveMember(ctx(), crew(1), authz.RoleDeliveryCrew, 1), ErrForbidden)
}

func TestAddAndRemoveMember(t *testing.T) {
	db := newTestDB(t)
	svc := &GroupService{DB: db}
	bob := seedUser(t, db, "bob")
	boss := seedUser(t, db, "boss")
	grantRole(t, db, boss.ID, authz.RoleManager)

	require.NoError(t, svc.AddMember(ctx(), manager(boss.ID), authz.RoleDeliveryCrew, "bob"))

	roles, err := svc.RolesOf(ctx(), bob.ID)
	require.NoError(t, err)
	require.Equal(t, []string{authz.RoleDeliveryCrew}, roles)

	// Granting an already-held role is a no-op.
	require.NoError(t, svc.AddMember(ctx(), manager(boss.ID), authz.RoleDeliveryCrew, "bob"))
	roles, err = svc.RolesOf(ctx(), bob.ID)
	require.NoError(t, err)
	require.Len(t, roles, 1)

	members, err := svc.Members(ctx(), manager(boss.ID), authz.RoleDeliveryCrew)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, "bob", members[0].Username)

	require.NoError(t, svc.RemoveMember(ctx(), manager(boss.ID), authz.RoleDeliveryCrew, bob.ID))
	roles, err = svc.RolesOf(ctx(), bob.ID)
	require.NoError(t, err)
	require.Empty(t, roles)

	// Revoking again still succeeds.
	require.NoError(t, svc.RemoveMember(ctx(), manager(boss.ID), authz.RoleDeliveryCrew, bob.ID))
}

func TestGroupValidation(t *testing.T) {
	db := newTestDB(t)
	svc := &GroupService{DB: db}
	boss := seedUser(t, db, "boss")
	grantRole(t, db, boss.ID, authz.RoleManager)

	require.ErrorIs(t, svc.AddMember(ctx(), manager(boss.ID), "cooks", "bob"), ErrValidation)
	require.ErrorIs(t, svc.AddMember(ctx(), manager(boss.ID), authz.RoleManager, ""), ErrValidation)
	require.ErrorIs(t, svc.AddMember(ctx(), manager(boss.ID), authz.RoleManager, "ghost"), ErrNotFound)
	require.ErrorIs(t, svc.RemoveMember(ctx(), manager(boss.ID), authz.RoleManager, 999), ErrNotFound)
}
