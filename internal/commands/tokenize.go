package commands

import "strings"

// Tokenize splits a chat message on runs of whitespace. The first field is
// the trigger and the rest are its arguments, in order. Nothing is folded or
// stripped, so a "!" prefix is part of the trigger.
//
//	!shoutout hello  world
//	trigger   arg[0] arg[1]
func Tokenize(raw string) (trigger string, args []string, ok bool) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return "", nil, false
	}
	return fields[0], fields[1:], true
}
