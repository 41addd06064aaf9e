package config

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

// Placeholder credentials shipped in the sample config file.
const (
	PlaceholderTeamName     = "TEAM_NAME_HERE"
	PlaceholderTeamPassword = "TEAM_PASSWORD_HERE"
)

type Credentials struct {
	TeamName     string
	TeamPassword string
}

// IsPlaceholder reports whether the credential file was never filled in.
func (c Credentials) IsPlaceholder() bool {
	return c.TeamName == PlaceholderTeamName || c.TeamPassword == PlaceholderTeamPassword
}

type Config struct {
	ServerURL      string
	Credentials    Credentials
	AIPath         string
	ArchivePath    string
	ArchiveKeepDay int
}

var AppConfig *Config

func LoadConfig() (*Config, error) {
	// DROPBLOX_DEBUG switches to a local unsecured server for development.
	serverURL := "https://playdropblox.com"
	if os.Getenv("DROPBLOX_DEBUG") != "" {
		serverURL = "http://localhost:8080"
	}
	serverURL = GetEnv("DROPBLOX_SERVER", serverURL)

	credPath := GetEnv("DROPBLOX_CONFIG", "config.txt")
	creds, err := LoadCredentials(credPath)
	if err != nil {
		return nil, err
	}

	aiPath := GetEnv("DROPBLOX_AI", "./dropblox_ai")

	// Empty DROPBLOX_ARCHIVE disables the local game archive.
	archivePath := "dropblox.db"
	if v, ok := os.LookupEnv("DROPBLOX_ARCHIVE"); ok {
		archivePath = v
	}
	archiveKeepDays := GetEnvAsInt("DROPBLOX_ARCHIVE_KEEP_DAYS", 30)

	AppConfig = &Config{
		ServerURL:      serverURL,
		Credentials:    creds,
		AIPath:         aiPath,
		ArchivePath:    archivePath,
		ArchiveKeepDay: archiveKeepDays,
	}

	return AppConfig, nil
}

// LoadCredentials reads the two-line credential file: team name on the first
// line, team password on the second.
func LoadCredentials(path string) (Credentials, error) {
	f, err := os.Open(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to open credential file %s: %v", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lines := make([]string, 0, 2)
	for scanner.Scan() && len(lines) < 2 {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return Credentials{}, fmt.Errorf("failed to read credential file %s: %v", path, err)
	}
	if len(lines) < 2 {
		return Credentials{}, fmt.Errorf("credential file %s must contain a team name line and a password line", path)
	}

	return Credentials{TeamName: lines[0], TeamPassword: lines[1]}, nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
