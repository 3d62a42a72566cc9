package app

import (
	"errors"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)

	user := f.mustRegister(t, aliceInput())
	if user.ID == 0 {
		t.Fatal("registered user has no id")
	}
	if user.PasswordHash == "alice-password" {
		t.Fatal("stored credential equals plaintext")
	}

	if err := f.auth.Login(LoginInput{Identifier: "alice", Password: "alice-password"}); err != nil {
		t.Fatalf("login by username: %v", err)
	}
	if err := f.auth.Login(LoginInput{Identifier: "alice@example.com", Password: "alice-password"}); err != nil {
		t.Fatalf("login by email: %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)
	f.mustRegister(t, aliceInput())

	cases := []struct {
		name  string
		input LoginInput
	}{
		{"wrong password", LoginInput{Identifier: "alice", Password: "not-her-password"}},
		{"unknown identifier", LoginInput{Identifier: "mallory", Password: "alice-password"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := f.auth.Login(tc.input); !errors.Is(err, ErrInvalidCredential) {
				t.Fatalf("err = %v, want ErrInvalidCredential", err)
			}
		})
	}
}

func TestRegisterConflicts(t *testing.T) {
	f := newFixture(t)
	f.mustRegister(t, aliceInput())

	cases := []struct {
		name  string
		input RegisterInput
	}{
		{"duplicate username", RegisterInput{
			Username: "alice", Email: "other@example.com", PhoneNumber: "555-0199",
			BirthDate: "1992-03-03", Password: "pw",
		}},
		{"duplicate email", RegisterInput{
			Username: "carol", Email: "alice@example.com", PhoneNumber: "555-0199",
			BirthDate: "1992-03-03", Password: "pw",
		}},
		{"duplicate phone", RegisterInput{
			Username: "carol", Email: "carol@example.com", PhoneNumber: "555-0100",
			BirthDate: "1992-03-03", Password: "pw",
		}},
		// Birth date participates in the conflict check even though the
		// column is not unique.
		{"duplicate birth date", RegisterInput{
			Username: "carol", Email: "carol@example.com", PhoneNumber: "555-0199",
			BirthDate: "1990-01-01", Password: "pw",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.auth.Register(tc.input); !errors.Is(err, ErrUserExists) {
				t.Fatalf("err = %v, want ErrUserExists", err)
			}
		})
	}

	if _, err := f.auth.Register(bobInput()); err != nil {
		t.Fatalf("register with all-unique fields: %v", err)
	}
}

func TestRegisterRejectsBadInput(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name  string
		input RegisterInput
	}{
		{"empty username", RegisterInput{Email: "a@b.c", PhoneNumber: "1", BirthDate: "1990-01-01", Password: "pw"}},
		{"empty password", RegisterInput{Username: "a", Email: "a@b.c", PhoneNumber: "1", BirthDate: "1990-01-01"}},
		{"bad birth date", RegisterInput{Username: "a", Email: "a@b.c", PhoneNumber: "1", BirthDate: "01/01/1990", Password: "pw"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.auth.Register(tc.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestRegisterNormalizesEmail(t *testing.T) {
	f := newFixture(t)

	input := aliceInput()
	input.Email = "  Alice@Example.COM "
	user := f.mustRegister(t, input)
	if user.Email != "alice@example.com" {
		t.Fatalf("email = %q, want normalized lowercase", user.Email)
	}
}
