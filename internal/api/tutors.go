package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/geia-vip/pet-manager-console/internal/errors"
)

// TutorService talks to the /tutores endpoints, including the
// pet↔tutor link sub-resource.
type TutorService struct {
	client *Client
}

// NewTutorService creates a TutorService on the given client.
func NewTutorService(client *Client) *TutorService {
	return &TutorService{client: client}
}

// TutorFilter narrows a tutor listing.
type TutorFilter struct {
	Name string
}

// List returns one page of tutors matching the filter.
func (s *TutorService) List(ctx context.Context, page, size int, filter TutorFilter) (Page[Tutor], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	if filter.Name != "" {
		query.Set("nome", filter.Name)
	}

	var result Page[Tutor]
	if err := s.client.doJSON(ctx, http.MethodGet, "/tutores", query, nil, &result); err != nil {
		return Page[Tutor]{}, err
	}
	return result, nil
}

// Get returns a single tutor, including linked pet summaries when the
// backend provides them.
func (s *TutorService) Get(ctx context.Context, id int64) (Tutor, error) {
	var tutor Tutor
	if err := s.client.doJSON(ctx, http.MethodGet, fmt.Sprintf("/tutores/%d", id), nil, nil, &tutor); err != nil {
		return Tutor{}, err
	}
	return tutor, nil
}

// Create registers a new tutor and returns the stored record.
func (s *TutorService) Create(ctx context.Context, payload TutorPayload) (Tutor, error) {
	var tutor Tutor
	if err := s.client.doJSON(ctx, http.MethodPost, "/tutores", nil, payload, &tutor); err != nil {
		return Tutor{}, err
	}
	return tutor, nil
}

// Update replaces a tutor's editable fields and returns the stored record.
func (s *TutorService) Update(ctx context.Context, id int64, payload TutorPayload) (Tutor, error) {
	var tutor Tutor
	if err := s.client.doJSON(ctx, http.MethodPut, fmt.Sprintf("/tutores/%d", id), nil, payload, &tutor); err != nil {
		return Tutor{}, err
	}
	return tutor, nil
}

// Delete removes a tutor.
func (s *TutorService) Delete(ctx context.Context, id int64) error {
	return s.client.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/tutores/%d", id), nil, nil, nil)
}

// UploadPhoto attaches a photo to a tutor.
func (s *TutorService) UploadPhoto(ctx context.Context, id int64, filename string, content io.Reader) error {
	return s.client.doMultipart(ctx, fmt.Sprintf("/tutores/%d/fotos", id), "foto", filename, content)
}

// LinkPet associates a pet with a tutor.
func (s *TutorService) LinkPet(ctx context.Context, tutorID, petID int64) error {
	return s.client.doJSON(ctx, http.MethodPost, fmt.Sprintf("/tutores/%d/pets/%d", tutorID, petID), nil, nil, nil)
}

// UnlinkPet removes the association between a pet and a tutor.
func (s *TutorService) UnlinkPet(ctx context.Context, tutorID, petID int64) error {
	return s.client.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/tutores/%d/pets/%d", tutorID, petID), nil, nil, nil)
}

// LinkedPets lists the pets currently linked to a tutor. The backend
// answers either a bare array or a page envelope depending on version,
// so both shapes are accepted.
func (s *TutorService) LinkedPets(ctx context.Context, tutorID int64) ([]Pet, error) {
	resp, err := s.client.doRequest(ctx, http.MethodGet, fmt.Sprintf("/tutores/%d/pets", tutorID), nil, nil)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseResponse(resp, nil)
	}

	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIDecode, "read response", err)
	}

	var pets []Pet
	if json.Unmarshal(raw, &pets) == nil {
		return pets, nil
	}

	var page Page[Pet]
	if json.Unmarshal(raw, &page) == nil {
		return page.Content, nil
	}

	return nil, errors.New(errors.ErrCodeAPIDecode, "unexpected linked-pets response shape")
}
