package validator

import (
	"errors"
	"testing"
)

func TestV10ValidatorValidate(t *testing.T) {
	var v Validator
	v10, err := NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator: %v", err)
	}
	v = v10

	type input struct {
		Email    string `validate:"required,email"`
		FullName string `validate:"required"`
	}

	if err := v.Validate(input{Email: "a@b.co", FullName: "A B"}); err != nil {
		t.Fatalf("expected valid input to pass, got %v", err)
	}

	err = v.Validate(input{Email: "not-an-email"})
	if err == nil {
		t.Fatal("expected invalid input to fail")
	}

	var verr V10ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected V10ValidationError, got %T", err)
	}
	if _, ok := verr["email"]; !ok {
		t.Fatalf("expected snake_case field key, got %v", verr)
	}
	if _, ok := verr["full_name"]; !ok {
		t.Fatalf("expected snake_case field key, got %v", verr)
	}
}
