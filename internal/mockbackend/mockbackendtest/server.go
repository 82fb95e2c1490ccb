package mockbackendtest

import (
	"net/http/httptest"
	"testing"
	"time"

	"civil-defense-app/internal/mockbackend"
	"civil-defense-app/internal/mockbackend/adapter/persistence"
	"civil-defense-app/internal/mockbackend/config"
	"civil-defense-app/internal/shared/logger"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"golang.org/x/crypto/bcrypt"
)

// Test account seeded by NewServer.
const (
	TestCedula = "00112345678"
	TestClave  = "defensa123"
)

// NewServer serves a fresh mock backend over httptest. It is closed when
// the test ends.
func NewServer(t testing.TB) (*httptest.Server, *mockbackend.MockBackendModule) {
	t.Helper()

	cfg := &config.Config{
		JWTSecretKey: "test-secret",
		JWTIssuer:    "defensa-civil-test",
		TokenTTL:     time.Hour,
		SeedCedula:   TestCedula,
		SeedClave:    TestClave,
		SeedNombre:   "Usuario de Prueba",
		SeedCorreo:   "prueba@example.do",
	}
	store := persistence.NewMemoryStore()
	store.SetHashCost(bcrypt.MinCost)

	module, err := mockbackend.NewMockBackendModuleWithStore(cfg, store, logger.NewNopLogger())
	if err != nil {
		t.Fatalf("mock backend: %v", err)
	}

	server := httptest.NewServer(adaptor.FiberApp(module.App()))
	t.Cleanup(server.Close)
	return server, module
}
