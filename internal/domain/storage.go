package domain

// StorageTier names the backend that accepted an order write.
type StorageTier string

const (
	TierRemote     StorageTier = "supabase"
	TierMemoryFile StorageTier = "memory+file"
	TierDevice     StorageTier = "local-backup"
)

const (
	SourceRemote      = "supabase"
	SourceLocalBackup = "local-backup"
)

// ListSource maps a tier to the source label reported by order listings.
func (t StorageTier) ListSource() string {
	if t == TierRemote {
		return SourceRemote
	}
	return SourceLocalBackup
}
