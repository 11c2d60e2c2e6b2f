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

func newPrescriptionService() *PrescriptionService {
	return NewPrescriptionService(
		repository.NewPrescriptionRepository(),
		repository.NewPatientRepository(),
		repository.NewAuditRepository(),
	)
}

// Prescribing for a patient of another tenant fails on the scoped patient
// lookup; the prescription insert never runs.
func TestCreatePrescriptionCrossTenantPatient(t *testing.T) {
	mock := setupMockDB(t)
	svc := newPrescriptionService()

	principal := models.Principal{
		UserID:     uuid.New(),
		TenantID:   "tenant_presc00000000000000000000000",
		HospitalID: uuid.New(),
		Role:       models.RoleDoctor,
	}

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE .*tenant_id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Create(context.Background(), principal, &models.CreatePrescriptionRequest{
		PatientID: uuid.New(),
		Diagnosis: "Hypertension",
		Medications: []models.Medication{
			{Name: "Lisinopril", Dosage: "10mg", Frequency: "daily"},
		},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreatePrescriptionStampsDoctor(t *testing.T) {
	mock := setupMockDB(t)
	svc := newPrescriptionService()

	principal := models.Principal{
		UserID:     uuid.New(),
		TenantID:   "tenant_presc00000000000000000000000",
		HospitalID: uuid.New(),
		Role:       models.RoleDoctor,
	}
	patientID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE .*tenant_id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name"}).
			AddRow(patientID.String(), principal.TenantID, "Jane Doe"))
	mock.ExpectExec(`INSERT INTO "prescriptions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	prescription, err := svc.Create(context.Background(), principal, &models.CreatePrescriptionRequest{
		PatientID: patientID,
		Diagnosis: "Hypertension",
		Medications: []models.Medication{
			{Name: "Lisinopril", Dosage: "10mg", Frequency: "daily"},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if prescription.DoctorID != principal.UserID {
		t.Errorf("doctor id: got %s, want %s", prescription.DoctorID, principal.UserID)
	}
	if prescription.TenantID != principal.TenantID {
		t.Errorf("tenant id: got %s, want %s", prescription.TenantID, principal.TenantID)
	}
	if !prescription.IsActive {
		t.Error("new prescription must be active")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestDeactivatePrescriptionCrossTenant(t *testing.T) {
	mock := setupMockDB(t)
	svc := newPrescriptionService()

	principal := models.Principal{
		UserID:   uuid.New(),
		TenantID: "tenant_presc00000000000000000000000",
		Role:     models.RoleDoctor,
	}

	mock.ExpectQuery(`SELECT \* FROM "prescriptions" WHERE .*tenant_id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if err := svc.Deactivate(context.Background(), principal, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
