package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tsicoop/ratings-anchor-go/pkg/authz"
)

// CredentialsFile is the caller identity and the credentials the
// authentication layer has already verified for it.
type CredentialsFile struct {
	Identity    string             `yaml:"identity"`
	Credentials []authz.Credential `yaml:"credentials"`
}

// LoadCredentials reads a credentials YAML file.
func LoadCredentials(path string) (CredentialsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CredentialsFile{}, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var file CredentialsFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return CredentialsFile{}, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	file.Identity = strings.TrimSpace(file.Identity)

	return file, nil
}
