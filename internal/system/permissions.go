package system

import (
	"AppBuilder/internal/logger"
	"context"
	"os"
	"runtime"
	"strconv"
)

// TakeOwnership hands a file written under sudo back to the invoking user,
// so the project does not end up owned by root.
func TakeOwnership(ctx context.Context, path string) {
	if runtime.GOOS == "windows" || path == "" {
		return
	}
	if os.Geteuid() != 0 {
		return
	}

	puid, pgid, ok := GetIDs()
	if !ok {
		return
	}
	logger.Debug(ctx, "Taking ownership of '{{_File_}}%s{{|-|}}' for user '{{_Value_}}%d:%d{{|-|}}'.", path, puid, pgid)
	if err := os.Lchown(path, puid, pgid); err != nil {
		logger.Warn(ctx, "Failed to take ownership of '{{_File_}}%s{{|-|}}': %v", path, err)
	}
}

// GetIDs returns the user and group that invoked sudo.
// ok is false when the process was not started through sudo.
func GetIDs() (uid, gid int, ok bool) {
	sudoUID := os.Getenv("SUDO_UID")
	sudoGID := os.Getenv("SUDO_GID")
	if sudoUID == "" || sudoGID == "" {
		return 0, 0, false
	}
	uid, err := strconv.Atoi(sudoUID)
	if err != nil {
		return 0, 0, false
	}
	gid, err = strconv.Atoi(sudoGID)
	if err != nil {
		return 0, 0, false
	}
	return uid, gid, true
}
