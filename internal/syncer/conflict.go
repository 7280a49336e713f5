package syncer

// HasConflict reports whether the remote payload was written by someone else
// since this session last synced. Only two known, differing timestamps count:
// an empty remote (first save, legacy payload) or an empty local value (not
// synced yet this session) never conflicts.
func HasConflict(remoteTS, localTS string) bool {
	return remoteTS != "" && localTS != "" && remoteTS != localTS
}
