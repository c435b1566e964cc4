package config

import (
	"fmt"
	"os"
	"strings"
)

// MQTTPasswordEnv names the variable holding the broker password.
const MQTTPasswordEnv = "VACUUM_MQTT_PASSWORD"

// ResolveSecret reads envName+"_FILE" if set, else envName. The file
// variant wins. Surrounding whitespace in files is trimmed.
func ResolveSecret(envName string) (string, error) {
	fileEnv := envName + "_FILE"
	if filePath := os.Getenv(fileEnv); filePath != "" {
		content, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("failed to read secret from %s=%s: %w", fileEnv, filePath, err)
		}
		return strings.TrimSpace(string(content)), nil
	}
	return os.Getenv(envName), nil
}

// MQTTPassword resolves the broker password. Only called when MQTT
// reporting is enabled.
func (f *File) MQTTPassword() (string, error) {
	return ResolveSecret(MQTTPasswordEnv)
}
