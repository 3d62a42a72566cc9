package app

import (
	"errors"
	"testing"
)

func TestVerifyByUsername(t *testing.T) {
	f := newFixture(t)
	alice := f.mustRegister(t, aliceInput())
	f.mustRegister(t, bobInput())

	userID, err := f.identity.Verify(VerifyInput{
		UsernameOrEmail: "alice",
		BirthDate:       "1990-01-01",
	})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != alice.ID {
		t.Fatalf("userID = %d, want %d", userID, alice.ID)
	}
}

func TestVerifyByEmail(t *testing.T) {
	f := newFixture(t)
	alice := f.mustRegister(t, aliceInput())

	userID, err := f.identity.Verify(VerifyInput{
		UsernameOrEmail: "alice@example.com",
		BirthDate:       "1990-01-01",
	})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != alice.ID {
		t.Fatalf("userID = %d, want %d", userID, alice.ID)
	}
}

func TestVerifyByPhone(t *testing.T) {
	f := newFixture(t)
	alice := f.mustRegister(t, aliceInput())

	userID, err := f.identity.Verify(VerifyInput{
		PhoneNumber: "555-0100",
		BirthDate:   "1990-01-01",
	})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != alice.ID {
		t.Fatalf("userID = %d, want %d", userID, alice.ID)
	}
}

func TestVerifyRequiresBothGroupsWhenSupplied(t *testing.T) {
	f := newFixture(t)
	f.mustRegister(t, aliceInput())
	f.mustRegister(t, bobInput())

	// Alice's username with Bob's phone must not resolve to anyone.
	_, err := f.identity.Verify(VerifyInput{
		UsernameOrEmail: "alice",
		PhoneNumber:     "555-0101",
		BirthDate:       "1990-01-01",
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}

	// Both groups matching the same user succeeds.
	if _, err := f.identity.Verify(VerifyInput{
		UsernameOrEmail: "alice",
		PhoneNumber:     "555-0100",
		BirthDate:       "1990-01-01",
	}); err != nil {
		t.Fatalf("verify with both groups: %v", err)
	}
}

func TestVerifyWrongBirthDate(t *testing.T) {
	f := newFixture(t)
	f.mustRegister(t, aliceInput())

	_, err := f.identity.Verify(VerifyInput{
		UsernameOrEmail: "alice",
		BirthDate:       "1990-01-02",
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestVerifyWithoutIdentifier(t *testing.T) {
	f := newFixture(t)
	f.mustRegister(t, aliceInput())

	_, err := f.identity.Verify(VerifyInput{BirthDate: "1990-01-01"})
	if !errors.Is(err, ErrMissingIdentifier) {
		t.Fatalf("err = %v, want ErrMissingIdentifier", err)
	}
}

func TestFindUsername(t *testing.T) {
	f := newFixture(t)
	f.mustRegister(t, aliceInput())

	username, err := f.identity.FindUsername("555-0100", "1990-01-01")
	if err != nil {
		t.Fatalf("find username: %v", err)
	}
	if username != "alice" {
		t.Fatalf("username = %q, want alice", username)
	}

	if _, err := f.identity.FindUsername("555-0100", "1990-01-02"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
	if _, err := f.identity.FindUsername("555-9999", "1990-01-01"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}
