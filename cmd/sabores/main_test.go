package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sabores/internal/domain"
	"sabores/internal/dto"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestOrderSubmit_OfflineKeepsOrderOnDevice(t *testing.T) {
	device := filepath.Join(t.TempDir(), "device.db")
	common := []string{"--server", "http://127.0.0.1:1", "--device-store", device}

	out, err := run(t, append([]string{"order", "submit",
		"--product", "p-1", "--product-name", "Bolo de Cenoura",
		"--name", "Ana", "--address", "Rua 1", "--whatsapp", "11999999999"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "local-backup")

	id := regexp.MustCompile(`local_\d+_[0-9a-z]{9}`).FindString(out)
	require.NotEmpty(t, id)

	out, err = run(t, append([]string{"local", "count"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 1")
	assert.Contains(t, out, "Pendentes: 1")

	out, err = run(t, append([]string{"local", "show", id}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "(11) 99999-9999")

	_, err = run(t, append([]string{"local", "status", id, "delivered"}, common...)...)
	require.NoError(t, err)

	out, err = run(t, append([]string{"local", "export"}, common...)...)
	require.NoError(t, err)
	var exported []domain.Order
	require.NoError(t, json.Unmarshal([]byte(out), &exported))
	require.Len(t, exported, 1)
	assert.Equal(t, domain.OrderStatusDelivered, exported[0].Status)

	_, err = run(t, append([]string{"local", "clear"}, common...)...)
	require.NoError(t, err)
	out, err = run(t, append([]string{"local", "count"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 0")
}

func TestOrderSubmit_InvalidIsRejected(t *testing.T) {
	device := filepath.Join(t.TempDir(), "device.db")

	_, err := run(t, "order", "submit", "--server", "http://127.0.0.1:1", "--device-store", device,
		"--product", "p-1", "--address", "Rua 1", "--whatsapp", "119")
	require.Error(t, err)

	out, err := run(t, "local", "count", "--device-store", device)
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 0")
}

func TestLocalStatus_InvalidStatus(t *testing.T) {
	_, err := run(t, "local", "status", "x", "cancelled", "--device-store", filepath.Join(t.TempDir(), "d.db"))
	assert.Error(t, err)
}

func TestOrderList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(dto.ListOrdersResponse{
			Orders:  []domain.Order{{ID: "o-1", CustomerName: "Ana", ProductName: "Bolo", Status: domain.OrderStatusPending}},
			Source:  "local-backup",
			Message: "1 pedidos encontrados no backup local.",
		})
	}))
	defer srv.Close()

	out, err := run(t, "order", "list", "--server", srv.URL)

	require.NoError(t, err)
	assert.Contains(t, out, "Fonte: local-backup")
	assert.Contains(t, out, "o-1")
	assert.Contains(t, out, "Ana")
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req dto.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "admin123" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(dto.LoginResponse{Error: "Email ou senha incorretos."})
			return
		}
		json.NewEncoder(w).Encode(dto.LoginResponse{
			Success: true,
			Message: "Login realizado com sucesso!",
			User:    &domain.User{ID: "admin-123", Email: req.Email, Name: "Administrador Principal"},
		})
	}))
	defer srv.Close()

	out, err := run(t, "login", "--server", srv.URL, "--email", "admin@sabores.com", "--password", "admin123")
	require.NoError(t, err)
	assert.Contains(t, out, "Administrador Principal")

	_, err = run(t, "login", "--server", srv.URL, "--email", "admin@sabores.com", "--password", "nope")
	assert.ErrorContains(t, err, "Email ou senha incorretos.")
}
