package db

import "strings"

// LikeEscape is appended to LIKE clauses built with ContainsPattern so
// Postgres and SQLite agree on the escape character.
const LikeEscape = ` ESCAPE '\'`

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern wraps term for a substring LIKE match with its wildcards
// taken literally.
func ContainsPattern(term string) string {
	return "%" + likeReplacer.Replace(term) + "%"
}
