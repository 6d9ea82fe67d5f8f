package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asmamiga/tourism-website-sub001/internal/model"
)

func TestCanManageResource(t *testing.T) {
	const ownerID, strangerID, adminID = uint64(100), uint64(55), uint64(1)

	cases := []struct {
		name    string
		role    model.Role
		actorID uint64
		want    bool
	}{
		{"owner manages own resource", model.RoleOwner, ownerID, true},
		{"owner blocked on foreign resource", model.RoleOwner, strangerID, false},
		{"admin manages any resource", model.RoleAdmin, adminID, true},
		{"admin manages own resource too", model.RoleAdmin, ownerID, true},
		{"customer blocked", model.RoleCustomer, strangerID, false},
		{"customer who happens to own is allowed", model.RoleCustomer, ownerID, true},
		{"empty role blocked", model.Role(""), strangerID, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, canManageResource(tc.role, ownerID, tc.actorID))
		})
	}
}
