package config

import (
	"os"
	"strings"
)

const badFileName = "_bad_file_name_"

// CleanFileName removes characters not allowed in file names on this
// platform. Leading dots are dropped so result is never hidden.
func CleanFileName(in string) string {
	forbidden := forbiddenNameChars + string(os.PathSeparator) + string(os.PathListSeparator)
	out := strings.TrimLeft(strings.Map(func(sym rune) rune {
		if sym == 0 || strings.ContainsRune(forbidden, sym) {
			return -1
		}
		return sym
	}, in), ".")
	if len(out) == 0 {
		return badFileName
	}
	return out
}
