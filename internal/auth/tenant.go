package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// tenantIDBytes gives 128 bits of entropy, enough that identifier
// collisions under concurrent registration are negligible. The database
// unique index on tenant_id backstops the generator regardless.
const tenantIDBytes = 16

// NewTenantID generates an opaque tenant identifier for a new hospital.
func NewTenantID() (string, error) {
	b := make([]byte, tenantIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate tenant id: %w", err)
	}
	return "tenant_" + hex.EncodeToString(b), nil
}
