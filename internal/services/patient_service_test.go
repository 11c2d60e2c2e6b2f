package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/otcheredev/hms-backend/internal/cache"
	"github.com/otcheredev/hms-backend/internal/models"
	"github.com/otcheredev/hms-backend/internal/repository"
)

func testPrincipal(tenantID string) models.Principal {
	return models.Principal{
		UserID:     uuid.New(),
		TenantID:   tenantID,
		HospitalID: uuid.New(),
		Role:       models.RoleReceptionist,
	}
}

func newPatientService(c cache.Cache) *PatientService {
	return NewPatientService(
		repository.NewPatientRepository(),
		repository.NewAuditRepository(),
		c,
		time.Minute,
	)
}

func patientRows(tenantID string, names ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "tenant_id", "name", "phone", "gender"})
	for i, name := range names {
		rows.AddRow(uuid.New().String(), tenantID, name, "+155500000"+string(rune('0'+i)), "other")
	}
	return rows
}

func TestCreatePatientStampsPrincipalTenant(t *testing.T) {
	mock := setupMockDB(t)
	svc := newPatientService(nil)
	principal := testPrincipal("tenant_alpha0000000000000000000000000")

	mock.ExpectExec(`INSERT INTO "patients"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	patient, err := svc.Create(context.Background(), principal, &models.CreatePatientRequest{
		Name:        "Jane Doe",
		DateOfBirth: "1990-04-12",
		Gender:      models.GenderFemale,
		Phone:       "+15550001111",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if patient.TenantID != principal.TenantID {
		t.Errorf("tenant id: got %s, want %s", patient.TenantID, principal.TenantID)
	}
	if patient.HospitalID != principal.HospitalID {
		t.Errorf("hospital id: got %s, want %s", patient.HospitalID, principal.HospitalID)
	}
	if patient.CreatedBy != principal.UserID {
		t.Errorf("created by: got %s, want %s", patient.CreatedBy, principal.UserID)
	}
	if patient.DateOfBirth.Format("2006-01-02") != "1990-04-12" {
		t.Errorf("date of birth: got %s", patient.DateOfBirth)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreatePatientDuplicatePhone(t *testing.T) {
	mock := setupMockDB(t)
	svc := newPatientService(nil)

	mock.ExpectExec(`INSERT INTO "patients"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_patients_tenant_phone"})

	_, err := svc.Create(context.Background(), testPrincipal("tenant_alpha"), &models.CreatePatientRequest{
		Name:        "Jane Doe",
		DateOfBirth: "1990-04-12",
		Gender:      models.GenderFemale,
		Phone:       "+15550001111",
	})
	if !errors.Is(err, ErrDuplicatePhone) {
		t.Fatalf("got %v, want ErrDuplicatePhone", err)
	}
}

func TestCreatePatientRejectsBadDate(t *testing.T) {
	setupMockDB(t)
	svc := newPatientService(nil)

	_, err := svc.Create(context.Background(), testPrincipal("tenant_alpha"), &models.CreatePatientRequest{
		Name:        "Jane Doe",
		DateOfBirth: "12/04/1990",
		Gender:      models.GenderFemale,
		Phone:       "+15550001111",
	})
	if err == nil {
		t.Fatal("expected error for malformed date")
	}
}

// A patient id belonging to another tenant must look like a missing record,
// and the lookup must carry the tenant filter.
func TestGetPatientCrossTenant(t *testing.T) {
	mock := setupMockDB(t)
	svc := newPatientService(nil)

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE .*tenant_id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Get(context.Background(), testPrincipal("tenant_beta"), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUpdatePatientCrossTenant(t *testing.T) {
	mock := setupMockDB(t)
	svc := newPatientService(nil)

	// Only the scoped read runs; no UPDATE may be issued.
	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE .*tenant_id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Update(context.Background(), testPrincipal("tenant_beta"), uuid.New(), &models.UpdatePatientRequest{
		Name: "New Name",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestListPatientsScopedToTenant(t *testing.T) {
	mock := setupMockDB(t)
	svc := newPatientService(nil)
	tenantID := "tenant_gamma000000000000000000000000"

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE tenant_id = \$1`).
		WillReturnRows(patientRows(tenantID, "Jane Doe", "John Roe"))

	patients, err := svc.List(context.Background(), testPrincipal(tenantID))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(patients) != 2 {
		t.Fatalf("got %d patients, want 2", len(patients))
	}
	for _, p := range patients {
		if p.TenantID != tenantID {
			t.Errorf("patient %s leaked from tenant %s", p.ID, p.TenantID)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

// The second List for the same tenant is served from cache: only one DB
// query is expected across both calls.
func TestListPatientsUsesCache(t *testing.T) {
	mock := setupMockDB(t)
	c := cache.NewMemoryCache()
	t.Cleanup(func() { c.Close() })

	svc := newPatientService(c)
	principal := testPrincipal("tenant_delta000000000000000000000000")

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE tenant_id = \$1`).
		WillReturnRows(patientRows(principal.TenantID, "Jane Doe"))

	first, err := svc.List(context.Background(), principal)
	if err != nil {
		t.Fatalf("first List: %v", err)
	}
	second, err := svc.List(context.Background(), principal)
	if err != nil {
		t.Fatalf("second List: %v", err)
	}

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("got %d then %d patients, want 1 and 1", len(first), len(second))
	}
	if first[0].ID != second[0].ID {
		t.Errorf("cached list diverges: %s vs %s", first[0].ID, second[0].ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

// Creating a patient invalidates the tenant's cached list.
func TestCreatePatientInvalidatesCache(t *testing.T) {
	mock := setupMockDB(t)
	c := cache.NewMemoryCache()
	t.Cleanup(func() { c.Close() })

	svc := newPatientService(c)
	principal := testPrincipal("tenant_epsilon0000000000000000000000")

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE tenant_id = \$1`).
		WillReturnRows(patientRows(principal.TenantID, "Jane Doe"))

	if _, err := svc.List(context.Background(), principal); err != nil {
		t.Fatalf("List: %v", err)
	}

	mock.ExpectExec(`INSERT INTO "patients"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if _, err := svc.Create(context.Background(), principal, &models.CreatePatientRequest{
		Name:        "John Roe",
		DateOfBirth: "1985-01-30",
		Gender:      models.GenderMale,
		Phone:       "+15550002222",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// The list is re-read from the database now.
	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE tenant_id = \$1`).
		WillReturnRows(patientRows(principal.TenantID, "Jane Doe", "John Roe"))

	patients, err := svc.List(context.Background(), principal)
	if err != nil {
		t.Fatalf("List after create: %v", err)
	}
	if len(patients) != 2 {
		t.Fatalf("got %d patients, want 2", len(patients))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
