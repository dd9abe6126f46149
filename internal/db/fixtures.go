package db

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
)

// FixtureTasks is the sample task list written by CreateFixturesDatabase
var FixtureTasks = []string{
	"Buy milk",
	"Call the dentist about the March appointment",
	"Renew library card",
	"Water the plants",
	"Water the plants",
	"Draft the quarterly budget",
	"Book train tickets for the weekend",
}

// CreateFixturesDatabase creates a test database with realistic sample data
func CreateFixturesDatabase(dbPath, key string, logger *log.Logger) error {
	if err := Initialize(dbPath); err != nil {
		return fmt.Errorf("initializing fixtures database: %w", err)
	}

	database, err := Open(dbPath, logger)
	if err != nil {
		return fmt.Errorf("opening fixtures database: %w", err)
	}
	defer database.Close()

	data, err := json.Marshal(FixtureTasks)
	if err != nil {
		return fmt.Errorf("encoding fixture tasks: %w", err)
	}

	if err := database.SetValue(key, string(data)); err != nil {
		return fmt.Errorf("adding fixture tasks: %w", err)
	}

	return nil
}
