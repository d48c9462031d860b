package catalogue

// Stats summarizes a manifest for the stats command.
type Stats struct {
	TotalAssets int            `json:"total_assets"`
	ByType      map[string]int `json:"by_type"`
	TotalSize   int64          `json:"total_size"`
	LastUpdated string         `json:"last_updated"`
}

// Summarize computes catalogue statistics.
func Summarize(m *Manifest) Stats {
	stats := Stats{
		ByType:      make(map[string]int),
		LastUpdated: m.Metadata.LastUpdated,
	}
	if stats.LastUpdated == "" {
		stats.LastUpdated = "never"
	}

	for _, a := range m.Assets {
		stats.TotalAssets++
		t := string(a.Type)
		if t == "" {
			t = string(TypeUnknown)
		}
		stats.ByType[t]++
		stats.TotalSize += a.Size
	}

	return stats
}
