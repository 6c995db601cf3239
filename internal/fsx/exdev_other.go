//go:build !unix

package fsx

// Non-Unix platforms report cross-volume renames with their own error codes;
// os.Rename on Windows already moves across volumes via MoveFileEx.
func isEXDEV(err error) bool { return false }
