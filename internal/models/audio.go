package models

// AudioPromptEntry is one mindfulness clip with the playback settings the
// player should use.
type AudioPromptEntry struct {
	URL        string `json:"url"`
	Interval   string `json:"interval"`
	IntervalMs int64  `json:"intervalMs"`
	Volume     int    `json:"volume"`
}

type VolumeEntry struct {
	Volume int `json:"volume"`
}

type SessionEntry struct {
	ID            string `json:"id"`
	Authenticated bool   `json:"authenticated"`
}
