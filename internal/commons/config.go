package commons

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"sabores/internal/config"
	"sabores/internal/domain"
)

type credentialsFile struct {
	Credentials []domain.Credential `yaml:"credentials"`
}

// LoadCredentials reads the admin allow-list from a YAML document. An empty
// path falls back to the allow-list embedded in the binary.
func LoadCredentials(path string) ([]domain.Credential, error) {
	if path == "" {
		return ParseCredentials(config.DefaultCredentials)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}
	return ParseCredentials(data)
}

func ParseCredentials(data []byte) ([]domain.Credential, error) {
	var file credentialsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing credentials file: %w", err)
	}

	for i, cred := range file.Credentials {
		if cred.Email == "" || cred.Password == "" {
			return nil, fmt.Errorf("credential #%d: email and password are required", i+1)
		}
	}

	return file.Credentials, nil
}
