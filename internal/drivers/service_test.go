package drivers

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vbmartins/cargalog-backend/pkg/config"
	"github.com/vbmartins/cargalog-backend/pkg/db/models"
	"github.com/vbmartins/cargalog-backend/pkg/enums"
	pkgerrors "github.com/vbmartins/cargalog-backend/pkg/errors"
	"github.com/vbmartins/cargalog-backend/pkg/security"
)

type stubDriverRepo struct {
	listFn   func(ctx context.Context) ([]models.User, error)
	createFn func(ctx context.Context, user *models.User) error
	created  *models.User
}

func (s *stubDriverRepo) List(ctx context.Context) ([]models.User, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

func (s *stubDriverRepo) Create(ctx context.Context, user *models.User) error {
	s.created = user
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return nil
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    16 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code())
}

func TestCreate_HashesPasswordAndNormalizesUsername(t *testing.T) {
	repo := &stubDriverRepo{}
	svc, err := NewService(repo, testPasswordConfig())
	require.NoError(t, err)

	dto, err := svc.Create(context.Background(), CreateInput{
		Name:     "  Carlos Silva  ",
		Username: " Carlos ",
		Password: "segredo1",
	})

	require.NoError(t, err)
	require.Equal(t, "Carlos Silva", dto.Name)
	require.Equal(t, "carlos", dto.Username)
	require.True(t, dto.Active)

	require.NotNil(t, repo.created)
	require.Equal(t, enums.UserRoleDriver, repo.created.Role)
	require.NotEqual(t, "segredo1", repo.created.PasswordHash)

	valid, err := security.VerifyPassword("segredo1", repo.created.PasswordHash)
	require.NoError(t, err)
	require.True(t, valid)
}

func TestCreate_Validations(t *testing.T) {
	svc, err := NewService(&stubDriverRepo{}, testPasswordConfig())
	require.NoError(t, err)

	ctx := context.Background()

	_, err = svc.Create(ctx, CreateInput{Username: "carlos", Password: "segredo1"})
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Create(ctx, CreateInput{Name: "Carlos", Password: "segredo1"})
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Create(ctx, CreateInput{Name: "Carlos", Username: "carlos", Password: "curta"})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestCreate_DuplicateUsernameConflicts(t *testing.T) {
	repo := &stubDriverRepo{
		createFn: func(context.Context, *models.User) error {
			return errors.New(`pq: duplicate key value violates unique constraint "users_username_key"`)
		},
	}
	svc, err := NewService(repo, testPasswordConfig())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateInput{
		Name:     "Carlos Silva",
		Username: "carlos",
		Password: "segredo1",
	})

	requireCode(t, err, pkgerrors.CodeConflict)
}

func TestList_OmitsCredentialFields(t *testing.T) {
	repo := &stubDriverRepo{
		listFn: func(context.Context) ([]models.User, error) {
			return []models.User{
				{ID: uuid.New(), Name: "Carlos", Username: "carlos", PasswordHash: "hash", Active: true},
				{ID: uuid.New(), Name: "Joana", Username: "joana", PasswordHash: "hash", Active: false},
			}, nil
		},
	}
	svc, err := NewService(repo, testPasswordConfig())
	require.NoError(t, err)

	dtos, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, dtos, 2)
	require.Equal(t, "carlos", dtos[0].Username)
	require.False(t, dtos[1].Active)
}
