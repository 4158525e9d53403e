// This file contains all of the examples from README.md
package lazycell_test

import (
	"errors"
	"regexp"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"

	"github.com/peterldowns/lazycell"
	"github.com/peterldowns/lazycell/lazydb"
)

const emailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`

var emailRegex = lazycell.NewValue(func() (*regexp.Regexp, error) {
	return regexp.Compile(emailPattern)
})

func IsEmail(s string) (bool, error) {
	re, err := emailRegex.Load()
	if err != nil {
		return false, err
	}
	return re.MatchString(s), nil
}

func TestReadmeRegexExample(t *testing.T) {
	t.Parallel()
	// Forcing up front is allowed and idempotent.
	assert.Nil(t, emailRegex.Initialize())

	ok, err := IsEmail("name@example.com")
	check.Nil(t, err)
	check.Equal(t, true, ok)

	ok, err = IsEmail("Hello world!")
	check.Nil(t, err)
	check.Equal(t, false, ok)
}

func TestReadmeCellExample(t *testing.T) {
	t.Parallel()
	expensive := func() int { return 99 }

	cell := lazycell.New[int]()
	val, err := cell.Get(func() (int, error) { return expensive(), nil })
	check.Nil(t, err)
	check.Equal(t, 99, *val)
}

func TestReadmeInitializeAllExample(t *testing.T) {
	t.Parallel()
	db := lazydb.NewHandle(lazydb.Config{
		DriverName: "pgx",
		Host:       "localhost",
		Port:       "5433",
		User:       "postgres",
		Password:   "password",
		Database:   "appdata",
		Options:    "sslmode=disable",
	})
	pattern := lazycell.NewValue(func() (*regexp.Regexp, error) {
		return regexp.Compile(`^\d+$`)
	})

	// sql.Open does not dial, so forcing the handle succeeds without a
	// running server.
	err := lazycell.InitializeAll(pattern, db)
	check.Nil(t, err)
	check.Equal(t, true, pattern.Ready())

	broken := lazycell.NewValue(func() (int, error) {
		return 0, errors.New("missing configuration")
	})
	err = lazycell.InitializeAll(pattern, broken)
	check.Error(t, err)
	check.Equal(t, true, errors.Is(err, lazycell.ErrInitializerFailed))
}
