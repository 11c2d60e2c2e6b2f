package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/otcheredev/hms-backend/internal/models"
	"github.com/otcheredev/hms-backend/internal/repository"
)

func newUserService() *UserService {
	return NewUserService(
		repository.NewUserRepository(),
		repository.NewAuditRepository(),
	)
}

// A non-admin sending a role field on update must not change anyone's role,
// their own included.
func TestUpdateUserRoleIgnoredForNonAdmin(t *testing.T) {
	mock := setupMockDB(t)
	svc := newUserService()

	tenantID := "tenant_staff00000000000000000000000"
	hospitalID := uuid.New()
	selfID := uuid.New()

	principal := models.Principal{
		UserID:     selfID,
		TenantID:   tenantID,
		HospitalID: hospitalID,
		Role:       models.RoleReceptionist,
	}

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE .*tenant_id`).
		WillReturnRows(userRows(selfID, hospitalID, tenantID, "front@desk.example.com", "hash", models.RoleReceptionist, true))
	mock.ExpectExec(`UPDATE "users"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user, err := svc.Update(context.Background(), principal, selfID, &models.UpdateUserRequest{
		Role: models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if user.Role != models.RoleReceptionist {
		t.Fatalf("role: got %s, want receptionist to stay receptionist", user.Role)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateUserRoleAppliedForAdmin(t *testing.T) {
	mock := setupMockDB(t)
	svc := newUserService()

	tenantID := "tenant_staff00000000000000000000000"
	hospitalID := uuid.New()
	targetID := uuid.New()

	principal := models.Principal{
		UserID:     uuid.New(),
		TenantID:   tenantID,
		HospitalID: hospitalID,
		Role:       models.RoleAdmin,
	}

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE .*tenant_id`).
		WillReturnRows(userRows(targetID, hospitalID, tenantID, "doc@example.com", "hash", models.RoleReceptionist, true))
	mock.ExpectExec(`UPDATE "users"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user, err := svc.Update(context.Background(), principal, targetID, &models.UpdateUserRequest{
		Role: models.RoleDoctor,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if user.Role != models.RoleDoctor {
		t.Fatalf("role: got %s, want doctor", user.Role)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

// An admin naming a role outside the closed set is rejected before any
// write.
func TestUpdateUserInvalidRole(t *testing.T) {
	mock := setupMockDB(t)
	svc := newUserService()

	tenantID := "tenant_staff00000000000000000000000"
	hospitalID := uuid.New()
	targetID := uuid.New()

	principal := models.Principal{
		UserID:     uuid.New(),
		TenantID:   tenantID,
		HospitalID: hospitalID,
		Role:       models.RoleAdmin,
	}

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE .*tenant_id`).
		WillReturnRows(userRows(targetID, hospitalID, tenantID, "doc@example.com", "hash", models.RoleReceptionist, true))

	_, err := svc.Update(context.Background(), principal, targetID, &models.UpdateUserRequest{
		Role: models.Role("superuser"),
	})
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("got %v, want ErrInvalidRole", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	setupMockDB(t)
	svc := newUserService()

	principal := models.Principal{
		UserID:   uuid.New(),
		TenantID: "tenant_staff00000000000000000000000",
		Role:     models.RoleAdmin,
	}

	_, err := svc.Create(context.Background(), principal, &models.CreateUserRequest{
		Name:     "New Staff",
		Email:    "new@example.com",
		Password: "secret1",
		Role:     models.Role("superuser"),
	})
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("got %v, want ErrInvalidRole", err)
	}
}
