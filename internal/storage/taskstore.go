package storage

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// DefaultKey is the key the task list is stored under
const DefaultKey = "tasks"

var taskListSchema = jsonschema.MustCompileString("tasks.schema.json", `{
	"type": "array",
	"items": {"type": "string"}
}`)

// TaskStore persists the task list as a JSON array of strings under one key
type TaskStore struct {
	kv     KV
	key    string
	logger *log.Logger
}

// NewTaskStore creates a task store on top of kv
func NewTaskStore(kv KV, key string, logger *log.Logger) *TaskStore {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = log.Default()
	}
	return &TaskStore{kv: kv, key: key, logger: logger}
}

// Load returns the stored task list
// A missing, unreadable or malformed value yields an empty list
func (s *TaskStore) Load() []string {
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		s.logger.Error("reading stored tasks", "backend", s.kv.Name(), "key", s.key, "err", err)
		return []string{}
	}
	if !ok {
		return []string{}
	}

	tasks, err := DecodeTaskList(raw)
	if err != nil {
		s.logger.Warn("ignoring malformed stored tasks", "key", s.key, "err", err)
		return []string{}
	}

	s.logger.Debug("loaded tasks", "backend", s.kv.Name(), "count", len(tasks))
	return tasks
}

// Save overwrites the stored value with the full list
func (s *TaskStore) Save(tasks []string) error {
	if tasks == nil {
		tasks = []string{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.kv.Set(s.key, string(data)); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	s.logger.Debug("saved tasks", "backend", s.kv.Name(), "count", len(tasks))
	return nil
}

// DecodeTaskList parses a stored value, rejecting anything but a JSON array of strings
func DecodeTaskList(raw string) ([]string, error) {
	var doc interface{}
	dec := json.NewDecoder(strings.NewReader(raw))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("parse: trailing data after task list")
	}
	if err := taskListSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	tasks := []string{}
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return tasks, nil
}
