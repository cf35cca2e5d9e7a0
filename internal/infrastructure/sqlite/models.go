package sqlite

import (
	"encoding/json"
	"fmt"
	"time"
)

// SettingModel represents the database row for the settings table.
// Value holds the JSON encoding of the blob entry.
type SettingModel struct {
	Key       string
	Value     string
	UpdatedAt int64 // Unix timestamp
}

func toSettingModels(blob map[string]any, now time.Time) ([]SettingModel, error) {
	models := make([]SettingModel, 0, len(blob))
	for k, v := range blob {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", k, err)
		}
		models = append(models, SettingModel{Key: k, Value: string(data), UpdatedAt: now.Unix()})
	}
	return models, nil
}

func toBlob(models []SettingModel) (map[string]any, error) {
	blob := make(map[string]any, len(models))
	for _, m := range models {
		var v any
		if err := json.Unmarshal([]byte(m.Value), &v); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", m.Key, err)
		}
		blob[m.Key] = v
	}
	return blob, nil
}
