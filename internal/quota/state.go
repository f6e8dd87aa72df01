package quota

import (
	"encoding/json"
	"os"
	"time"
)

// State holds the persisted rolling counters and their bucket markers.
// Markers carry full date precision, so a new day also rolls the hour and
// minute buckets with it.
type State struct {
	MinuteCount int       `json:"minute_count"`
	HourCount   int       `json:"hour_count"`
	DayCount    int       `json:"day_count"`
	MinuteMark  string    `json:"minute_mark"` // 2006-01-02T15:04
	HourMark    string    `json:"hour_mark"`   // 2006-01-02T15
	DayMark     string    `json:"day_mark"`    // 2006-01-02
	UpdatedAt   time.Time `json:"updated_at"`
}

// LoadState reads tracker state from a JSON file. Returns a zero state if
// the file doesn't exist.
func LoadState(filePath string) (*State, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SaveState writes tracker state to a JSON file.
func SaveState(filePath string, state *State) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
