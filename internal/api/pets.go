package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// PetService talks to the /pets endpoints.
type PetService struct {
	client *Client
}

// NewPetService creates a PetService on the given client.
func NewPetService(client *Client) *PetService {
	return &PetService{client: client}
}

// PetFilter narrows a pet listing. Empty fields are omitted from the
// query so the backend treats them as "no filter".
type PetFilter struct {
	Name  string
	Breed string
}

// List returns one page of pets matching the filter.
func (s *PetService) List(ctx context.Context, page, size int, filter PetFilter) (Page[Pet], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	if filter.Name != "" {
		query.Set("nome", filter.Name)
	}
	if filter.Breed != "" {
		query.Set("raca", filter.Breed)
	}

	var result Page[Pet]
	if err := s.client.doJSON(ctx, http.MethodGet, "/pets", query, nil, &result); err != nil {
		return Page[Pet]{}, err
	}
	return result, nil
}

// Get returns a single pet.
func (s *PetService) Get(ctx context.Context, id int64) (Pet, error) {
	var pet Pet
	if err := s.client.doJSON(ctx, http.MethodGet, fmt.Sprintf("/pets/%d", id), nil, nil, &pet); err != nil {
		return Pet{}, err
	}
	return pet, nil
}

// Create registers a new pet and returns the stored record.
func (s *PetService) Create(ctx context.Context, payload PetPayload) (Pet, error) {
	var pet Pet
	if err := s.client.doJSON(ctx, http.MethodPost, "/pets", nil, payload, &pet); err != nil {
		return Pet{}, err
	}
	return pet, nil
}

// Update replaces a pet's editable fields and returns the stored record.
func (s *PetService) Update(ctx context.Context, id int64, payload PetPayload) (Pet, error) {
	var pet Pet
	if err := s.client.doJSON(ctx, http.MethodPut, fmt.Sprintf("/pets/%d", id), nil, payload, &pet); err != nil {
		return Pet{}, err
	}
	return pet, nil
}

// Delete removes a pet.
func (s *PetService) Delete(ctx context.Context, id int64) error {
	return s.client.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/pets/%d", id), nil, nil, nil)
}

// UploadPhoto attaches a photo to a pet. The backend expects a
// multipart form with a single "foto" field.
func (s *PetService) UploadPhoto(ctx context.Context, id int64, filename string, content io.Reader) error {
	return s.client.doMultipart(ctx, fmt.Sprintf("/pets/%d/fotos", id), "foto", filename, content)
}
