package utils

import "regexp"

// notSpaceOrAt excludes everything an ECMAScript \s matches:
// ASCII space and controls, vertical tab, Unicode space separators, line
// and paragraph separators and the BOM.
const notSpaceOrAt = `[^\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}@]`

var emailRe = regexp.MustCompile(`^` + notSpaceOrAt + `+@` + notSpaceOrAt + `+\.` + notSpaceOrAt + `+$`)

// IsValidEmail performs the loose "something@something.tld" check used
// for reservation contact addresses.
func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}
