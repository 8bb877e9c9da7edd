package dto

type UploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
	Path    string `json:"path"`
	Source  string `json:"source"`
}

type DeleteUploadResponse struct {
	Success bool   `json:"success"`
	Source  string `json:"source"`
}
