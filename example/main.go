// Command example shows lazycell deferring work until first use: an email
// regex is compiled during the first validation, not at program start, and
// reused for every validation after that.
package main

import (
	"fmt"
	"regexp"

	"github.com/peterldowns/lazycell"
)

// emailPattern validates an email address.
const emailPattern = `[a-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+(?:\.[a-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+)*@(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?`

var emailRegex = lazycell.NewValue(func() (*regexp.Regexp, error) {
	fmt.Println("compiling the email pattern")
	return regexp.Compile(emailPattern)
})

func main() {
	// At this point the pattern has not been compiled.
	fmt.Println("program started")

	// The pattern is compiled during this call.
	email := "name@example.com"
	fmt.Printf("%q is valid: %v\n", email, emailRegex.MustLoad().MatchString(email))

	// The previously compiled pattern is reused.
	notEmail := "Hello world!"
	fmt.Printf("%q is valid: %v\n", notEmail, emailRegex.MustLoad().MatchString(notEmail))
}
