package application

import (
	"strconv"
	"strings"

	"golang.org/x/net/idna"

	"github.com/oksasatya/go-user-registry/pkg/validation"
)

const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
	FieldAge       = "age"
	FieldBio       = "bio"
)

const (
	alphaErr  = "must only contain letters."
	lengthErr = "must be between 1 and 10 characters."
	emailErr  = "must be a valid email address."
	ageErr    = "must be between 18 and 200."
	bioErr    = "must be less than 200 characters."

	MsgEmailInUse = "Email already in use."
)

// userRules are evaluated in order; all failures are reported.
var userRules = []validation.Rule{
	{Field: FieldFirstName, Tag: "alpha", Message: "First name " + alphaErr},
	{Field: FieldFirstName, Tag: "min=1,max=10", Message: "First name " + lengthErr},
	{Field: FieldLastName, Tag: "alpha", Message: "Last name " + alphaErr},
	{Field: FieldLastName, Tag: "min=1,max=10", Message: "Last name " + lengthErr},
	{Field: FieldEmail, Tag: "email", Message: "Email " + emailErr},
	{Field: FieldAge, Tag: "intrange=18:200", Message: "Age " + ageErr},
	{Field: FieldBio, Tag: "max=200", Message: "Bio " + bioErr},
}

// Candidate holds submitted user fields before they are trusted.
type Candidate struct {
	FirstName string `form:"firstName" json:"firstName"`
	LastName  string `form:"lastName" json:"lastName"`
	Email     string `form:"email" json:"email"`
	Age       string `form:"age" json:"age"`
	Bio       string `form:"bio" json:"bio"`
}

// Sanitize trims every field.
func (c Candidate) Sanitize() Candidate {
	return Candidate{
		FirstName: strings.TrimSpace(c.FirstName),
		LastName:  strings.TrimSpace(c.LastName),
		Email:     strings.TrimSpace(c.Email),
		Age:       strings.TrimSpace(c.Age),
		Bio:       strings.TrimSpace(c.Bio),
	}
}

func (c Candidate) values() map[string]string {
	return map[string]string{
		FieldFirstName: c.FirstName,
		FieldLastName:  c.LastName,
		FieldEmail:     c.Email,
		FieldAge:       c.Age,
		FieldBio:       c.Bio,
	}
}

// AgeValue returns the parsed age. Only meaningful after validation passed.
func (c Candidate) AgeValue() int {
	n, _ := strconv.Atoi(c.Age)
	return n
}

// NormalizeEmail canonicalizes a syntactically valid address: lowercase,
// ASCII domain, and gmail dot/subaddress folding.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return email
	}
	local, domain := email[:at], email[at+1:]

	if ascii, err := idna.Lookup.ToASCII(domain); err == nil {
		domain = ascii
	}
	if domain == "googlemail.com" {
		domain = "gmail.com"
	}
	if domain == "gmail.com" {
		if plus := strings.Index(local, "+"); plus >= 0 {
			local = local[:plus]
		}
		local = strings.ReplaceAll(local, ".", "")
	}
	return local + "@" + domain
}
