package petapi

// Animal is a single adoptable animal as returned by the pet API.
type Animal struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Breed       string `json:"breed,omitempty"`
	Age         string `json:"age"`
	Gender      string `json:"gender"`
	Size        string `json:"size,omitempty"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
}

// Pagination carries the paging metadata of a search response.
type Pagination struct {
	CountPerPage int `json:"count_per_page"`
	TotalCount   int `json:"total_count"`
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
}

// SearchAnimalsResponse is the body of GET /v2/animals.
type SearchAnimalsResponse struct {
	Animals    []Animal   `json:"animals"`
	Pagination Pagination `json:"pagination"`
}

// GetAnimalResponse is the body of GET /v2/animals/{id}.
type GetAnimalResponse struct {
	Animal Animal `json:"animal"`
}

// AnimalType describes one species the API serves.
type AnimalType struct {
	Name    string   `json:"name"`
	Coats   []string `json:"coats"`
	Colors  []string `json:"colors"`
	Genders []string `json:"genders"`
}

// AnimalTypesResponse is the body of GET /v2/types.
type AnimalTypesResponse struct {
	Types []AnimalType `json:"types"`
}
