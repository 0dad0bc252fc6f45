package api

// Photo is the uploaded picture sub-resource shared by pets and tutors.
type Photo struct {
	ID          int64  `json:"id"`
	Name        string `json:"nome"`
	ContentType string `json:"contentType"`
	URL         string `json:"url"`
}

// Pet is a registered animal. The backend owns these records; the
// console only ever holds ephemeral copies.
type Pet struct {
	ID    int64  `json:"id"`
	Name  string `json:"nome"`
	Breed string `json:"raca"`
	Age   int    `json:"idade"`
	Photo *Photo `json:"foto,omitempty"`
}

// PetPayload is the create/update body for a pet.
type PetPayload struct {
	Name  string `json:"nome"`
	Breed string `json:"raca"`
	Age   int    `json:"idade"`
}

// Tutor is a guardian responsible for zero or more pets.
type Tutor struct {
	ID      int64  `json:"id"`
	Name    string `json:"nome"`
	Email   string `json:"email"`
	Phone   string `json:"telefone"`
	Address string `json:"endereco"`
	CPF     string `json:"cpf"`
	Photo   *Photo `json:"foto,omitempty"`
	Pets    []Pet  `json:"pets,omitempty"`
}

// TutorPayload is the create/update body for a tutor.
type TutorPayload struct {
	Name    string `json:"nome"`
	Email   string `json:"email"`
	Phone   string `json:"telefone"`
	Address string `json:"endereco"`
	CPF     string `json:"cpf"`
}

// Page is the paged-list envelope every list endpoint returns.
type Page[T any] struct {
	Content   []T `json:"content"`
	Page      int `json:"page"`
	Size      int `json:"size"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// TokenPair is the credential pair issued by login and refresh.
// RefreshToken may be empty on refresh when the backend does not
// rotate it; callers keep the previous one in that case.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Credentials is a login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
