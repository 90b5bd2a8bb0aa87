package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/capstone/internal/pkg/apperrors"
	"github.com/yigit/capstone/internal/pkg/auth"
	"github.com/yigit/capstone/internal/pkg/filestorage"
)

func strPtr(s string) *string { return &s }

func TestResetPassword(t *testing.T) {
	store := newFakeStore()
	store.addStudent("s1", "21BCE0001")
	svc := NewStudentService(&fakeStudentRepo{store: store})
	ctx := context.Background()

	err := svc.ResetPassword(ctx, "21BCE0001", "", "new-pass")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "Email id required", err.Error())

	err = svc.ResetPassword(ctx, "21BCE0001", "someone@else.edu", "new-pass")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Equal(t, "Invalid register number or email id", err.Error())

	require.NoError(t, svc.ResetPassword(ctx, "21BCE0001", "s1@college.edu", "new-pass"))
	assert.True(t, auth.CheckPassword(store.students["s1"].Password, "new-pass"))
}

func TestUpdateStudent(t *testing.T) {
	store := newFakeStore()
	store.addStudent("s1", "21BCE0001")
	store.addStudent("s2", "21BCE0002")
	svc := NewStudentService(&fakeStudentRepo{store: store})
	ctx := context.Background()

	updated, err := svc.UpdateStudent(ctx, "s1", UpdateStudentInput{PhoneNo: strPtr(" 12345 "), Batch: strPtr("2022")})
	require.NoError(t, err)
	assert.Equal(t, "12345", updated.PhoneNo)
	assert.Equal(t, "2022", updated.Batch)
	assert.Equal(t, "Student s1", updated.FullName)

	_, err = svc.UpdateStudent(ctx, "s1", UpdateStudentInput{})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.UpdateStudent(ctx, "s1", UpdateStudentInput{FullName: strPtr("  ")})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.UpdateStudent(ctx, "s1", UpdateStudentInput{RegNo: strPtr("21BCE0002")})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = svc.UpdateStudent(ctx, "ghost", UpdateStudentInput{Batch: strPtr("2022")})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestDeleteStudent(t *testing.T) {
	store := newFakeStore()
	store.addStudent("s1", "21BCE0001")
	svc := NewStudentService(&fakeStudentRepo{store: store})

	require.NoError(t, svc.DeleteStudent(context.Background(), "s1"))
	assert.ErrorIs(t, svc.DeleteStudent(context.Background(), "s1"), apperrors.ErrStudentNotFound)
}

func TestListStaff_EmptyIsNotFound(t *testing.T) {
	store := newFakeStore()
	svc := NewStaffService(&fakeStaffRepo{store: store}, &fakeProjectRepo{store: store})

	_, err := svc.ListStaff(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Equal(t, "No staff found", err.Error())

	store.addStaff("g1")
	staffs, err := svc.ListStaff(context.Background())
	require.NoError(t, err)
	assert.Len(t, staffs, 1)
}

func TestCreateStaffWithImage(t *testing.T) {
	store := newFakeStore()
	svc := NewStaffService(&fakeStaffRepo{store: store}, &fakeProjectRepo{store: store})
	ctx := context.Background()

	staff, err := svc.CreateStaff(ctx, CreateStaffInput{
		FullName:        "Dr. Rao",
		Email:           "rao@college.edu",
		Password:        "pw",
		Specializations: []string{" ML ", "", "Networks"},
		ProfileImg:      &filestorage.Blob{Data: []byte{1, 2, 3}, MimeType: "image/png"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ML", "Networks"}, staff.Specializations)
	assert.Equal(t, "image/png", staff.ProfileImgType)

	_, err = svc.CreateStaff(ctx, CreateStaffInput{FullName: "Dup", Email: "rao@college.edu", Password: "pw"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestGetStaffIncludesProjects(t *testing.T) {
	store := newFakeStore()
	store.addStaff("g1")
	store.addStudent("s1", "21BCE0001")
	store.addProject("g1", "s1")
	store.addProject("g1")
	svc := NewStaffService(&fakeStaffRepo{store: store}, &fakeProjectRepo{store: store})

	staff, err := svc.GetStaff(context.Background(), "g1")
	require.NoError(t, err)
	require.Len(t, staff.Projects, 2)
	assert.NotNil(t, staff.Projects[0].Review)
	assert.Len(t, staff.Projects[0].Students, 1)

	_, err = svc.GetStaff(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrStaffNotFound)
}

func TestDeleteStaffCascadesProjects(t *testing.T) {
	store := newFakeStore()
	store.addStaff("g1")
	store.addStaff("g2")
	store.addStudent("s1", "21BCE0001")
	store.addProject("g1", "s1")
	store.addProject("g1")
	kept := store.addProject("g2")
	svc := NewStaffService(&fakeStaffRepo{store: store}, &fakeProjectRepo{store: store})

	require.NoError(t, svc.DeleteStaff(context.Background(), "g1"))
	assert.Len(t, store.projects, 1)
	assert.Contains(t, store.projects, kept.ID)
	assert.Len(t, store.reviews, 1)
	assert.Nil(t, store.students["s1"].ProjectID)

	assert.ErrorIs(t, svc.DeleteStaff(context.Background(), "g1"), apperrors.ErrStaffNotFound)
}

func TestEnsureAdmin(t *testing.T) {
	store := newFakeStore()
	svc := NewAdminService(&fakeAdminRepo{store: store})
	ctx := context.Background()
	input := AdminInput{FullName: "Root", Email: "root@college.edu", Password: "pw"}

	created, err := svc.EnsureAdmin(ctx, input)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(ctx, input)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, store.admins, 1)

	created, err = svc.EnsureAdmin(ctx, AdminInput{})
	require.NoError(t, err)
	assert.False(t, created)
}

func TestAdminCRUD(t *testing.T) {
	store := newFakeStore()
	svc := NewAdminService(&fakeAdminRepo{store: store})
	ctx := context.Background()

	admin, err := svc.CreateAdmin(ctx, AdminInput{FullName: "Ops", Email: "ops@college.edu", Password: "pw"})
	require.NoError(t, err)

	updated, err := svc.UpdateAdmin(ctx, admin.ID, AdminInput{FullName: "Operations"})
	require.NoError(t, err)
	assert.Equal(t, "Operations", updated.FullName)

	_, err = svc.UpdateAdmin(ctx, admin.ID, AdminInput{})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	require.NoError(t, svc.DeleteAdmin(ctx, admin.ID))
	_, err = svc.GetAdmin(ctx, admin.ID)
	assert.ErrorIs(t, err, apperrors.ErrAdminNotFound)
}
