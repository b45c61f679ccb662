package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpulse/classpulse-core/internal/domain/identity"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
	"github.com/classpulse/classpulse-core/internal/infrastructure/persistence/memory"
)

func TestFindByEmail_StudentAnyCase(t *testing.T) {
	store := memory.NewStore()
	student := addStudent(t, store, "s-1", "d.seitkali@university.edu", "CS-2024-017")

	h := NewFindByEmailHandler(store.Professors(), store.Students())
	res, err := h.Handle(context.Background(), FindByEmailQuery{
		Email: "D.Seitkali@University.EDU",
		Role:  identity.RoleStudent,
	})
	require.NoError(t, err)

	assert.Equal(t, student.ID, res.User.ID)
	assert.Equal(t, identity.RoleStudent, res.User.Role)
	assert.Equal(t, "d.seitkali@university.edu", res.User.Email)
	assert.Equal(t, "CS-2024-017", res.User.RollNumber)
}

func TestFindByEmail_RoleScopesTheSearch(t *testing.T) {
	store := memory.NewStore()

	prof, err := identity.NewProfessor(identity.NewProfessorParams{
		ID:         "p-1",
		Name:       "Aliya Nurkhanova",
		Email:      "shared@university.edu",
		Department: "Computer Science",
	})
	require.NoError(t, err)
	require.NoError(t, store.Professors().Create(context.Background(), prof))

	// Same address registered as a student account.
	student := addStudent(t, store, "s-1", "shared@university.edu", "CS-2024-017")

	h := NewFindByEmailHandler(store.Professors(), store.Students())

	asProf, err := h.Handle(context.Background(), FindByEmailQuery{
		Email: "shared@university.edu",
		Role:  identity.RoleProfessor,
	})
	require.NoError(t, err)
	assert.Equal(t, prof.ID, asProf.User.ID)

	asStudent, err := h.Handle(context.Background(), FindByEmailQuery{
		Email: "shared@university.edu",
		Role:  identity.RoleStudent,
	})
	require.NoError(t, err)
	assert.Equal(t, student.ID, asStudent.User.ID)
}

func TestFindByEmail_NoRoleSearchesBothRegistries(t *testing.T) {
	store := memory.NewStore()

	prof, err := identity.NewProfessor(identity.NewProfessorParams{
		ID:         "p-1",
		Name:       "Aliya Nurkhanova",
		Email:      "a.nurkhanova@university.edu",
		Department: "Computer Science",
	})
	require.NoError(t, err)
	require.NoError(t, store.Professors().Create(context.Background(), prof))
	student := addStudent(t, store, "s-1", "d.seitkali@university.edu", "CS-2024-017")

	h := NewFindByEmailHandler(store.Professors(), store.Students())

	asProf, err := h.Handle(context.Background(), FindByEmailQuery{Email: "a.nurkhanova@university.edu"})
	require.NoError(t, err)
	assert.Equal(t, prof.ID, asProf.User.ID)
	assert.Equal(t, identity.RoleProfessor, asProf.User.Role)

	asStudent, err := h.Handle(context.Background(), FindByEmailQuery{Email: "d.seitkali@university.edu"})
	require.NoError(t, err)
	assert.Equal(t, student.ID, asStudent.User.ID)
	assert.Equal(t, identity.RoleStudent, asStudent.User.Role)

	_, err = h.Handle(context.Background(), FindByEmailQuery{Email: "nobody@university.edu"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestFindByEmail_NoRolePrefersProfessor(t *testing.T) {
	store := memory.NewStore()

	prof, err := identity.NewProfessor(identity.NewProfessorParams{
		ID:         "p-1",
		Name:       "Aliya Nurkhanova",
		Email:      "shared@university.edu",
		Department: "Computer Science",
	})
	require.NoError(t, err)
	require.NoError(t, store.Professors().Create(context.Background(), prof))
	addStudent(t, store, "s-1", "shared@university.edu", "CS-2024-017")

	h := NewFindByEmailHandler(store.Professors(), store.Students())
	res, err := h.Handle(context.Background(), FindByEmailQuery{Email: "shared@university.edu"})
	require.NoError(t, err)

	assert.Equal(t, prof.ID, res.User.ID)
	assert.Equal(t, identity.RoleProfessor, res.User.Role)
}

func TestFindByEmail_NotFound(t *testing.T) {
	store := memory.NewStore()

	h := NewFindByEmailHandler(store.Professors(), store.Students())
	_, err := h.Handle(context.Background(), FindByEmailQuery{
		Email: "nobody@university.edu",
		Role:  identity.RoleStudent,
	})

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestFindByEmail_UnknownRole(t *testing.T) {
	store := memory.NewStore()

	h := NewFindByEmailHandler(store.Professors(), store.Students())
	_, err := h.Handle(context.Background(), FindByEmailQuery{
		Email: "somebody@university.edu",
		Role:  identity.Role("dean"),
	})

	assert.ErrorIs(t, err, shared.ErrValidation)
}
