package catalogue

// Refresh replaces the manifest's assets with freshly scanned records.
// Records whose path, size and modification time are unchanged keep their
// original created_at, analysis metadata and AI description fields, so a
// rescan never throws away generated descriptions. Records for files that
// disappeared are dropped.
func (m *Manifest) Refresh(scanned []AssetRecord) {
	previous := make(map[string]AssetRecord, len(m.Assets))
	for _, a := range m.Assets {
		previous[a.Path] = a
	}

	merged := make([]AssetRecord, 0, len(scanned))
	for _, rec := range scanned {
		if prev, ok := previous[rec.Path]; ok && prev.Size == rec.Size && prev.ModifiedAt == rec.ModifiedAt {
			rec.CreatedAt = prev.CreatedAt
			rec.Metadata = prev.Metadata
			rec.AIDescription = prev.AIDescription
			rec.AIGeneratedAt = prev.AIGeneratedAt
		}
		merged = append(merged, rec)
	}

	m.Assets = merged
	m.Touch()
}
