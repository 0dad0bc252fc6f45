package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geia-vip/pet-manager-console/internal/errors"
)

func TestPetServiceListBuildsQuery(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pets", r.URL.Path)
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(Page[Pet]{
			Content:   []Pet{{ID: 1, Name: "Rex"}},
			Page:      2,
			Size:      10,
			PageCount: 5,
			Total:     42,
		})
	}))
	defer server.Close()

	pets := NewPetService(NewClient(server.URL))

	page, err := pets.List(context.Background(), 2, 10, PetFilter{Name: "Rex", Breed: "vira-lata"})
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "page=2")
	assert.Contains(t, gotQuery, "size=10")
	assert.Contains(t, gotQuery, "nome=Rex")
	assert.Contains(t, gotQuery, "raca=vira-lata")

	assert.Equal(t, 42, page.Total)
	assert.Equal(t, 5, page.PageCount)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Rex", page.Content[0].Name)
}

func TestPetServiceListOmitsEmptyFilters(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(Page[Pet]{})
	}))
	defer server.Close()

	pets := NewPetService(NewClient(server.URL))
	_, err := pets.List(context.Background(), 0, 10, PetFilter{})
	require.NoError(t, err)

	assert.NotContains(t, gotQuery, "nome=")
	assert.NotContains(t, gotQuery, "raca=")
}

func TestPetServiceCreateAndUpdate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload PetPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/pets":
			json.NewEncoder(w).Encode(Pet{ID: 10, Name: payload.Name, Breed: payload.Breed, Age: payload.Age})
		case r.Method == http.MethodPut && r.URL.Path == "/pets/10":
			json.NewEncoder(w).Encode(Pet{ID: 10, Name: payload.Name, Breed: payload.Breed, Age: payload.Age})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	pets := NewPetService(NewClient(server.URL))

	created, err := pets.Create(context.Background(), PetPayload{Name: "Rex", Breed: "vira-lata", Age: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(10), created.ID)

	updated, err := pets.Update(context.Background(), 10, PetPayload{Name: "Rex", Breed: "vira-lata", Age: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Age)
}

func TestPetServiceUploadPhoto(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/pets/10/fotos", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("foto")
		require.NoError(t, err)
		defer file.Close()

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "fake-image-bytes", string(content))
		assert.Equal(t, "rex.jpg", header.Filename)

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	pets := NewPetService(NewClient(server.URL))
	err := pets.UploadPhoto(context.Background(), 10, "rex.jpg", strings.NewReader("fake-image-bytes"))
	require.NoError(t, err)
}

func TestTutorServiceLinking(t *testing.T) {
	var calls []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	tutors := NewTutorService(NewClient(server.URL))

	require.NoError(t, tutors.LinkPet(context.Background(), 3, 10))
	require.NoError(t, tutors.UnlinkPet(context.Background(), 3, 10))

	assert.Equal(t, []string{
		"POST /tutores/3/pets/10",
		"DELETE /tutores/3/pets/10",
	}, calls)
}

func TestTutorServiceLinkedPetsAcceptsBothShapes(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"id":1,"nome":"Rex","raca":"vira-lata","idade":3}]`))
		}))
		defer server.Close()

		tutors := NewTutorService(NewClient(server.URL))
		pets, err := tutors.LinkedPets(context.Background(), 3)
		require.NoError(t, err)
		require.Len(t, pets, 1)
		assert.Equal(t, "Rex", pets[0].Name)
	})

	t.Run("page envelope", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"content":[{"id":2,"nome":"Mia","raca":"siamês","idade":2}],"page":0,"pageCount":1,"total":1}`))
		}))
		defer server.Close()

		tutors := NewTutorService(NewClient(server.URL))
		pets, err := tutors.LinkedPets(context.Background(), 3)
		require.NoError(t, err)
		require.Len(t, pets, 1)
		assert.Equal(t, "Mia", pets[0].Name)
	})
}

func TestAuthServiceLoginMapsRejectionToCredentialsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/autenticacao/login", r.URL.Path)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	auth := NewAuthService(NewClient(server.URL))
	_, err := auth.Login(context.Background(), Credentials{Username: "admin", Password: "wrong"})
	require.Error(t, err)

	consoleErr, ok := err.(*errors.ConsoleError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeAuthCredentials, consoleErr.Code)
}

func TestAuthServiceRefreshSendsBearer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/autenticacao/refresh", r.URL.Path)
		assert.Equal(t, "Bearer old-refresh", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"})
	}))
	defer server.Close()

	auth := NewAuthService(NewClient(server.URL))
	pair, err := auth.Refresh(context.Background(), "old-refresh")
	require.NoError(t, err)
	assert.Equal(t, "new-access", pair.AccessToken)
	assert.Equal(t, "new-refresh", pair.RefreshToken)
}
